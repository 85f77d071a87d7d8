package view

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	tuitheme "github.com/llovera/newsdeck/internal/tui/theme"

	"github.com/llovera/newsdeck/internal/news"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type ArticleLineParams struct {
	Article  news.Article
	Active   bool
	Saved    bool
	Liked    bool
	Authored bool
	Width    int
}

func RenderArticleLine(p ArticleLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	savedMarker := " "
	if p.Saved {
		savedMarker = "*"
	}
	likedMarker := " "
	if p.Liked {
		likedMarker = "+"
	}

	prefix := fmt.Sprintf("  %s%s%s ", cursorMarker, savedMarker, likedMarker)
	dateLabel := "[" + p.Article.PublishedAt.UTC().Format(time.DateOnly) + "]"

	badges := tagBadges(p.Article.Tags, th)
	available := p.Width - visibleLen(prefix) - 1 - visibleLen(dateLabel) - visibleLen(badges)
	if available < 1 {
		available = 1
	}

	label := truncateRunes(strings.TrimSpace(p.Article.Title), available)
	styledTitle := th.StyleArticleTitle(p.Authored, p.Saved, label)

	line := prefix + styledTitle
	if badges != "" {
		line += " " + badges
	}
	gap := p.Width - visibleLen(line) - visibleLen(dateLabel)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(p.Active, line+strings.Repeat(" ", gap)+dateLabel)
}

func tagBadges(tags []news.Tag, th tuitheme.Theme) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		parts = append(parts, th.TagBadge(tag.Color, tag.Name))
	}
	return strings.Join(parts, " ")
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(reANSICodes.ReplaceAllString(s, ""))
}

func truncateRunes(s string, max int) string {
	if max < 1 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}
