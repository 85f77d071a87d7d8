package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/llovera/newsdeck/internal/tui/theme"
)

func Toolbar(inDetail, developer bool) string {
	if inDetail {
		base := "j/k scroll | s save | l like | H highlight | N note | V speech | o open | y copy | esc back"
		if developer {
			base += " | x delete"
		}
		return base
	}
	base := "1-4 feeds | j/k move | enter open | / search | t filter | o sort | s save | l like | r refresh | D dev | q quit"
	if developer {
		base += " | P publish | A author"
	}
	return base
}

func Footer(feed string, sort string, tagCount, shown int, query string, th tuitheme.Theme) string {
	parts := []string{
		th.MetaLabel.Render("feed") + " " + th.MetaValue.Render(feed),
		th.MetaValue.Render(fmt.Sprintf("%d shown", shown)),
	}
	if sort != "" {
		parts = append(parts, th.MetaLabel.Render("sort")+" "+th.MetaValue.Render(sort))
	}
	if tagCount > 0 {
		parts = append(parts, th.MetaLabel.Render("tags")+" "+th.MetaValue.Render(fmt.Sprintf("%d", tagCount)))
	}
	if query != "" {
		parts = append(parts, th.MetaLabel.Render("query")+" "+th.MetaValue.Render(fmt.Sprintf("%q", query)))
	}
	return strings.Join(parts, " • ")
}

func Message(loading bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	if warning != "" {
		state = "warning"
	}
	if loading {
		state = "loading"
	}

	main := "Ready"
	switch {
	case loading:
		main = "Loading…"
	case status != "":
		main = status
	case warning != "":
		main = warning
	}

	stateLabel := th.StateIdle.Render(state)
	switch state {
	case "warning":
		stateLabel = th.StateWarn.Render(state)
	case "loading":
		stateLabel = th.StateLoad.Render(state)
	}
	return stateLabel + " " + main
}
