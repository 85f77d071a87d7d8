// Package gate grants the session-only developer capability. The store
// itself never checks credentials; the gate does, and only on success
// asserts the privileged flag through a settings update.
package gate

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/llovera/newsdeck/internal/store"
)

var (
	ErrInvalidCredential = errors.New("invalid developer credential")
	ErrGateDisabled      = errors.New("developer gate is not configured")
)

type SettingsUpdater interface {
	UpdateSettings(ctx context.Context, patch store.SettingsPatch)
}

type Gate struct {
	secret   string
	settings SettingsUpdater
}

// New builds a gate around the shared secret. An empty secret disables
// unlocking entirely.
func New(secret string, settings SettingsUpdater) *Gate {
	return &Gate{secret: secret, settings: settings}
}

// Unlock enables developer mode when the password matches. On rejection
// the store is left untouched. The grant lasts until the next settings
// write that does not re-assert it, and never survives a reload.
func (g *Gate) Unlock(ctx context.Context, password string) error {
	if g.secret == "" {
		return ErrGateDisabled
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(g.secret)) != 1 {
		return ErrInvalidCredential
	}
	g.settings.UpdateSettings(ctx, store.SettingsPatch{IsDeveloper: true})
	return nil
}
