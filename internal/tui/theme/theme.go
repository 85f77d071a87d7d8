package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/llovera/newsdeck/internal/store"
)

// Theme is the set of styles derived from the user's settings. The view
// layer never reads Settings directly; it renders through these styles.
type Theme struct {
	Title      lipgloss.Style
	FeedPill   lipgloss.Style
	Section    lipgloss.Style
	ActiveLine lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style

	TitleDefault  lipgloss.Style
	TitleSaved    lipgloss.Style
	TitleAuthored lipgloss.Style
	Highlight     lipgloss.Style
	Note          lipgloss.Style
}

type palette struct {
	text    lipgloss.Color
	subtle  lipgloss.Color
	surface lipgloss.Color
	good    lipgloss.Color
	warn    lipgloss.Color
	load    lipgloss.Color
}

var darkPalette = palette{
	text:    lipgloss.Color("#cdd6f4"),
	subtle:  lipgloss.Color("#a6adc8"),
	surface: lipgloss.Color("#313244"),
	good:    lipgloss.Color("#a6e3a1"),
	warn:    lipgloss.Color("#f38ba8"),
	load:    lipgloss.Color("#fab387"),
}

var lightPalette = palette{
	text:    lipgloss.Color("#4c4f69"),
	subtle:  lipgloss.Color("#6c6f85"),
	surface: lipgloss.Color("#ccd0da"),
	good:    lipgloss.Color("#40a02b"),
	warn:    lipgloss.Color("#d20f39"),
	load:    lipgloss.Color("#fe640b"),
}

// FromSettings builds the theme for the current settings: palette from
// the light/dark choice, accent from the configured accent color.
func FromSettings(s store.Settings) Theme {
	p := lightPalette
	if s.Theme == store.ThemeDark {
		p = darkPalette
	}
	accent := lipgloss.Color(s.AccentColor)
	if s.AccentColor == "" {
		accent = lipgloss.Color(store.DefaultSettings().AccentColor)
	}

	return Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(accent),
		FeedPill:   lipgloss.NewStyle().Foreground(accent).Background(p.surface).Padding(0, 1),
		Section:    lipgloss.NewStyle().Bold(true).Foreground(p.text),
		ActiveLine: lipgloss.NewStyle().Background(p.surface).Foreground(p.text),
		MetaLabel:  lipgloss.NewStyle().Foreground(p.subtle),
		MetaValue:  lipgloss.NewStyle().Foreground(p.text),
		StateIdle:  lipgloss.NewStyle().Foreground(p.good),
		StateWarn:  lipgloss.NewStyle().Foreground(p.warn),
		StateLoad:  lipgloss.NewStyle().Foreground(p.load),

		TitleDefault:  lipgloss.NewStyle().Foreground(p.text),
		TitleSaved:    lipgloss.NewStyle().Italic(true).Foreground(p.text),
		TitleAuthored: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Highlight:     lipgloss.NewStyle().Foreground(p.load),
		Note:          lipgloss.NewStyle().Foreground(p.subtle),
	}
}

// StyleArticleTitle picks the title style for an article's state.
// Authored wins over saved.
func (t Theme) StyleArticleTitle(authored, saved bool, text string) string {
	switch {
	case authored:
		return t.TitleAuthored.Render(text)
	case saved:
		return t.TitleSaved.Render(text)
	default:
		return t.TitleDefault.Render(text)
	}
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if active {
		return t.ActiveLine.Render(line)
	}
	return line
}

// TagBadge renders a tag label in the tag's own color.
func (t Theme) TagBadge(color, name string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("[" + name + "]")
}

// DetectDefaultTheme guesses light or dark from the terminal background.
// Used only before the store has been hydrated.
func DetectDefaultTheme() store.Theme {
	if termenv.HasDarkBackground() {
		return store.ThemeDark
	}
	return store.ThemeLight
}
