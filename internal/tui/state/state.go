package state

import "github.com/llovera/newsdeck/internal/news"

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

// PageStep is how far pgup/pgdown move: one viewport of article rows.
// The list view keeps 8 lines of chrome (header, status, footer, toolbar).
func PageStep(height int) int {
	if height <= 0 {
		return 10
	}
	step := height - 8
	if step < 3 {
		step = 3
	}
	return step
}

// CenteredWindow returns the [start, end) slice of rows to draw so the
// cursor stays near the middle of the viewport.
func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

func ArticleIndexByID(articles []news.Article, id string) int {
	for i, a := range articles {
		if a.ID == id {
			return i
		}
	}
	return -1
}
