package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/llovera/newsdeck/internal/store"
)

type fakeSettings struct {
	patches []store.SettingsPatch
}

func (f *fakeSettings) UpdateSettings(_ context.Context, patch store.SettingsPatch) {
	f.patches = append(f.patches, patch)
}

func TestUnlock_CorrectPasswordEnablesDeveloper(t *testing.T) {
	settings := &fakeSettings{}
	g := New("hunter2", settings)

	if err := g.Unlock(context.Background(), "hunter2"); err != nil {
		t.Fatalf("Unlock returned error: %v", err)
	}
	if len(settings.patches) != 1 || !settings.patches[0].IsDeveloper {
		t.Fatalf("expected one patch asserting IsDeveloper, got %+v", settings.patches)
	}
}

func TestUnlock_WrongPasswordLeavesStoreUntouched(t *testing.T) {
	settings := &fakeSettings{}
	g := New("hunter2", settings)

	err := g.Unlock(context.Background(), "guess")
	if !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
	if len(settings.patches) != 0 {
		t.Fatalf("expected no settings update on rejection, got %+v", settings.patches)
	}
}

func TestUnlock_EmptySecretDisablesGate(t *testing.T) {
	settings := &fakeSettings{}
	g := New("", settings)

	err := g.Unlock(context.Background(), "")
	if !errors.Is(err, ErrGateDisabled) {
		t.Fatalf("expected ErrGateDisabled, got %v", err)
	}
	if len(settings.patches) != 0 {
		t.Fatalf("expected no settings update, got %+v", settings.patches)
	}
}
