package view

import (
	"fmt"
	"strings"
	"time"

	tuitheme "github.com/llovera/newsdeck/internal/tui/theme"

	"github.com/llovera/newsdeck/internal/news"
)

type DetailParams struct {
	Article       news.Article
	Width         int
	ShowImages    bool
	Saved         bool
	Liked         bool
	SpeechPreview string
}

// RenderDetail builds the article detail screen: metadata, body, and the
// user's annotations. The speech preview section appears only when the
// caller supplies one.
func RenderDetail(p DetailParams, th tuitheme.Theme) string {
	width := p.Width
	if width < 20 {
		width = 80
	}

	var b strings.Builder
	a := p.Article

	b.WriteString(th.Title.Render(strings.TrimSpace(a.Title)))
	b.WriteString("\n\n")

	writeMeta := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(th.MetaLabel.Render(label+": ") + th.MetaValue.Render(value) + "\n")
	}
	writeMeta("source", a.Source.Name)
	if !a.PublishedAt.IsZero() {
		writeMeta("published", a.PublishedAt.UTC().Format(time.DateOnly))
	}
	writeMeta("url", a.URL)
	if p.ShowImages {
		writeMeta("image", a.Image)
	}
	if len(a.Tags) > 0 {
		b.WriteString(th.MetaLabel.Render("tags: ") + tagBadges(a.Tags, th) + "\n")
	}

	markers := make([]string, 0, 2)
	if p.Saved {
		markers = append(markers, "saved")
	}
	if p.Liked {
		markers = append(markers, "liked")
	}
	if len(markers) > 0 {
		writeMeta("state", strings.Join(markers, ", "))
	}
	b.WriteString("\n")

	if a.Overview != "" {
		b.WriteString(th.Section.Render("Overview") + "\n")
		b.WriteString(wrapText(a.Overview, width) + "\n\n")
	} else if a.Description != "" {
		b.WriteString(wrapText(a.Description, width) + "\n\n")
	}

	if a.Content != "" {
		b.WriteString(wrapText(a.Content, width) + "\n")
	}

	if len(a.BulletPoints) > 0 {
		b.WriteString("\n" + th.Section.Render("Key points") + "\n")
		for _, point := range a.BulletPoints {
			b.WriteString(wrapText("- "+point, width) + "\n")
		}
	}

	if len(a.Highlights) > 0 {
		b.WriteString("\n" + th.Section.Render(fmt.Sprintf("Highlights (%d)", len(a.Highlights))) + "\n")
		for _, h := range a.Highlights {
			b.WriteString(th.Highlight.Render(wrapText("> "+h, width)) + "\n")
		}
	}

	if len(a.Notes) > 0 {
		b.WriteString("\n" + th.Section.Render(fmt.Sprintf("Notes (%d)", len(a.Notes))) + "\n")
		for _, n := range a.Notes {
			b.WriteString(th.Note.Render(wrapText("- "+n, width)) + "\n")
		}
	}

	if p.SpeechPreview != "" {
		b.WriteString("\n" + th.Section.Render("Speech preview") + "\n")
		b.WriteString(wrapText(p.SpeechPreview, width) + "\n")
	}

	return b.String()
}

func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
