package view

import (
	"strings"
	"testing"
	"time"

	"github.com/llovera/newsdeck/internal/news"
	"github.com/llovera/newsdeck/internal/store"
	tuitheme "github.com/llovera/newsdeck/internal/tui/theme"
)

func testTheme() tuitheme.Theme {
	return tuitheme.FromSettings(store.DefaultSettings())
}

func testArticle() news.Article {
	return news.Article{
		ID:          "https://example.com/a",
		Title:       "A headline about things",
		Description: "Short description",
		Content:     "Longer body content for the article",
		URL:         "https://example.com/a",
		PublishedAt: time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
		Source:      news.Source{Name: "Example Times", URL: "https://example.com/a"},
		Tags:        []news.Tag{{ID: "tech", Name: "Technology", Color: "#3b82f6"}},
		Highlights:  []string{"a kept quote"},
		Notes:       []string{"my thought"},
	}
}

func TestRenderArticleLine_WidthAndMarkers(t *testing.T) {
	p := ArticleLineParams{
		Article: testArticle(),
		Active:  true,
		Saved:   true,
		Liked:   true,
		Width:   72,
	}

	line := RenderArticleLine(p, testTheme())
	if !strings.Contains(line, ">") {
		t.Fatalf("expected cursor marker, got %q", line)
	}
	if !strings.Contains(line, "*") || !strings.Contains(line, "+") {
		t.Fatalf("expected saved and liked markers, got %q", line)
	}
	if !strings.Contains(line, "[2026-08-29]") {
		t.Fatalf("expected date column, got %q", line)
	}
	if !strings.Contains(line, "Technology") {
		t.Fatalf("expected tag badge, got %q", line)
	}
}

func TestRenderArticleLine_TruncatesLongTitles(t *testing.T) {
	a := testArticle()
	a.Title = strings.Repeat("verylongword ", 30)
	a.Tags = nil

	line := RenderArticleLine(ArticleLineParams{Article: a, Width: 40}, testTheme())
	if !strings.Contains(line, "…") {
		t.Fatalf("expected truncated title, got %q", line)
	}
}

func TestFooter_IncludesContext(t *testing.T) {
	got := Footer("dashboard", "best", 2, 14, "flood", testTheme())
	for _, want := range []string{"dashboard", "best", "2", "14 shown", `"flood"`} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected footer to contain %q, got %q", want, got)
		}
	}
}

func TestMessage_States(t *testing.T) {
	th := testTheme()

	if got := Message(true, "", "", th); !strings.Contains(got, "Loading") {
		t.Fatalf("expected loading message, got %q", got)
	}
	if got := Message(false, "Saved article", "", th); !strings.Contains(got, "Saved article") {
		t.Fatalf("expected status shown, got %q", got)
	}
	if got := Message(false, "", "remote down", th); !strings.Contains(got, "remote down") {
		t.Fatalf("expected warning shown, got %q", got)
	}
	if got := Message(false, "", "", th); !strings.Contains(got, "Ready") {
		t.Fatalf("expected idle message, got %q", got)
	}
}

func TestRenderDetail_Sections(t *testing.T) {
	p := DetailParams{
		Article:       testArticle(),
		Width:         72,
		ShowImages:    true,
		Saved:         true,
		Liked:         true,
		SpeechPreview: "A headline about things...",
	}

	got := RenderDetail(p, testTheme())
	for _, want := range []string{
		"A headline about things",
		"Example Times",
		"2026-08-29",
		"a kept quote",
		"my thought",
		"Speech preview",
		"saved, liked",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected detail to contain %q, got:\n%s", want, got)
		}
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four five", 9)
	lines := strings.Split(got, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapped text, got %q", got)
	}
	for _, line := range lines {
		if len(line) > 9 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
}

func TestToolbar_DeveloperKeys(t *testing.T) {
	if got := Toolbar(false, false); strings.Contains(got, "P publish") {
		t.Fatalf("publish key shown without developer mode: %q", got)
	}
	if got := Toolbar(false, true); !strings.Contains(got, "P publish") || !strings.Contains(got, "A author") {
		t.Fatalf("developer keys missing: %q", got)
	}
	if got := Toolbar(true, true); !strings.Contains(got, "x delete") {
		t.Fatalf("detail delete key missing: %q", got)
	}
}
