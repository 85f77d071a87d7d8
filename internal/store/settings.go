package store

// Theme selects the UI color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// FontSize selects the reading font size.
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// Settings is the process-wide configuration, initialized with defaults on
// first run and mutated in place afterwards. IsDeveloper is privileged: it
// gates authoring operations and is never persisted as true.
type Settings struct {
	Theme       Theme    `json:"theme"`
	FontSize    FontSize `json:"fontSize"`
	AccentColor string   `json:"accentColor"`
	ShowImages  bool     `json:"showImages"`
	IsDeveloper bool     `json:"isDeveloper"`

	AuthorName   string `json:"authorName,omitempty"`
	AuthorBio    string `json:"authorBio,omitempty"`
	AuthorAvatar string `json:"authorAvatar,omitempty"`
	AuthorID     string `json:"authorId,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme:       ThemeLight,
		FontSize:    FontMedium,
		AccentColor: "#3b82f6",
		ShowImages:  true,
	}
}

// SettingsPatch is a partial settings update. Nil pointer fields keep the
// current value. IsDeveloper is deliberately not a pointer: a settings
// update that does not assert the privileged flag drops it, so privilege
// has to be re-asserted by the access gate on every settings write.
type SettingsPatch struct {
	Theme       *Theme
	FontSize    *FontSize
	AccentColor *string
	ShowImages  *bool
	IsDeveloper bool
}

func (s Settings) applyPatch(p SettingsPatch) Settings {
	out := s
	if p.Theme != nil && (*p.Theme == ThemeLight || *p.Theme == ThemeDark) {
		out.Theme = *p.Theme
	}
	if p.FontSize != nil && (*p.FontSize == FontSmall || *p.FontSize == FontMedium || *p.FontSize == FontLarge) {
		out.FontSize = *p.FontSize
	}
	if p.AccentColor != nil {
		out.AccentColor = *p.AccentColor
	}
	if p.ShowImages != nil {
		out.ShowImages = *p.ShowImages
	}
	out.IsDeveloper = p.IsDeveloper
	return out
}
