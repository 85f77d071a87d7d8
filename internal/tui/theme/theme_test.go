package theme

import (
	"testing"

	"github.com/llovera/newsdeck/internal/store"
)

func TestFromSettings_PalettesFollowThemeSetting(t *testing.T) {
	dark := FromSettings(store.Settings{Theme: store.ThemeDark, AccentColor: "#3b82f6"})
	light := FromSettings(store.Settings{Theme: store.ThemeLight, AccentColor: "#3b82f6"})

	if dark.TitleDefault.GetForeground() == light.TitleDefault.GetForeground() {
		t.Fatal("expected dark and light palettes to differ")
	}
}

func TestFromSettings_StyleShapes(t *testing.T) {
	th := FromSettings(store.DefaultSettings())

	if !th.Title.GetBold() {
		t.Fatal("expected bold title style")
	}
	if !th.TitleAuthored.GetBold() {
		t.Fatal("expected bold authored-title style")
	}
	if !th.TitleSaved.GetItalic() {
		t.Fatal("expected italic saved-title style")
	}
}

func TestFromSettings_EmptyAccentUsesDefault(t *testing.T) {
	th := FromSettings(store.Settings{Theme: store.ThemeLight})
	want := FromSettings(store.DefaultSettings())

	if th.Title.GetForeground() != want.Title.GetForeground() {
		t.Fatal("expected empty accent to fall back to the default accent")
	}
}

func TestRenderActiveLine_InactivePassthrough(t *testing.T) {
	th := FromSettings(store.DefaultSettings())
	if got := th.RenderActiveLine(false, "line"); got != "line" {
		t.Fatalf("expected passthrough for inactive line, got %q", got)
	}
}
