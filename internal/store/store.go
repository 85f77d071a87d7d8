// Package store holds the single authoritative session state: saved
// articles, liked article ids, the user's published articles, and
// settings. All mutations funnel through one serialized entry point and
// every successful mutation writes a redacted snapshot to the repository.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/llovera/newsdeck/internal/news"
)

// ErrDuplicateID is returned by Publish when an article with the same id
// is already published. Update is the explicit overwrite path.
var ErrDuplicateID = errors.New("article id already published")

// SnapshotRepository persists the serialized store document.
type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, payload []byte) error
	LoadSnapshot(ctx context.Context) ([]byte, error)
}

// snapshot is the durable layout: one record per installation.
type snapshot struct {
	SavedArticles     []news.Article `json:"savedArticles"`
	LikedArticles     []string       `json:"likedArticles"`
	PublishedArticles []news.Article `json:"publishedArticles"`
	Settings          Settings       `json:"settings"`
}

type Store struct {
	mu   sync.RWMutex
	repo SnapshotRepository

	saved     []news.Article
	liked     []string
	published []news.Article
	settings  Settings

	onPersistError func(error)
	newID          func() string
}

type Option func(*Store)

// WithPersistErrorHandler installs the hook called when a snapshot write
// or a corrupt snapshot read is encountered. In-memory state stays
// authoritative for the session either way.
func WithPersistErrorHandler(fn func(error)) Option {
	return func(s *Store) { s.onPersistError = fn }
}

// WithIDGenerator overrides the author-id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithDefaultTheme seeds the theme used when no snapshot exists yet,
// typically detected from the terminal background. A stored snapshot
// still wins on Hydrate.
func WithDefaultTheme(theme Theme) Option {
	return func(s *Store) {
		if theme == ThemeLight || theme == ThemeDark {
			s.settings.Theme = theme
		}
	}
}

func New(repo SnapshotRepository, opts ...Option) *Store {
	s := &Store{
		repo:      repo,
		saved:     []news.Article{},
		liked:     []string{},
		published: []news.Article{},
		settings:  DefaultSettings(),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate loads the last snapshot, or defaults if none exists or the
// payload is corrupt. The privileged flag always starts disabled, and the
// author identifier is generated exactly once on first activation.
func (s *Store) Hydrate(ctx context.Context) error {
	payload, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if payload != nil {
		var snap snapshot
		if err := json.Unmarshal(payload, &snap); err != nil {
			s.reportPersistError(fmt.Errorf("corrupt snapshot, using defaults: %w", err))
		} else {
			s.saved = ensureArticles(snap.SavedArticles)
			s.liked = ensureIDs(snap.LikedArticles)
			s.published = ensureArticles(snap.PublishedArticles)
			if snap.Settings.Theme != "" {
				s.settings = snap.Settings
			}
		}
	}

	// Privilege never survives a reload.
	s.settings.IsDeveloper = false

	if s.settings.AuthorID == "" {
		s.settings.AuthorID = s.newID()
		s.persistLocked(ctx)
	}
	return nil
}

// ToggleLiked flips membership of the id in the liked list. Applying it
// twice restores the original membership.
func (s *Store) ToggleLiked(ctx context.Context, articleID string) {
	s.mutate(ctx, func() {
		for i, id := range s.liked {
			if id == articleID {
				s.liked = append(s.liked[:i], s.liked[i+1:]...)
				return
			}
		}
		s.liked = append(s.liked, articleID)
	})
}

// ToggleSaved removes the article from saved when a copy with its id is
// present, otherwise appends the given copy. Idempotent by id: toggling
// twice with different payloads of the same id still nets to absent.
func (s *Store) ToggleSaved(ctx context.Context, article news.Article) {
	s.mutate(ctx, func() {
		for i, a := range s.saved {
			if a.ID == article.ID {
				s.saved = append(s.saved[:i], s.saved[i+1:]...)
				return
			}
		}
		s.saved = append(s.saved, article.Clone())
	})
}

// AddHighlight appends the text to the highlights of every collection
// copy holding the id. Collections without the id are untouched; repeated
// identical text produces repeated entries.
func (s *Store) AddHighlight(ctx context.Context, articleID, text string) {
	s.mutate(ctx, func() {
		fanOut(s.saved, articleID, func(a *news.Article) {
			a.Highlights = append(a.Highlights, text)
		})
		fanOut(s.published, articleID, func(a *news.Article) {
			a.Highlights = append(a.Highlights, text)
		})
	})
}

// AddNote appends the text to the notes of every collection copy holding
// the id, with the same fan-out rule as AddHighlight.
func (s *Store) AddNote(ctx context.Context, articleID, text string) {
	s.mutate(ctx, func() {
		fanOut(s.saved, articleID, func(a *news.Article) {
			a.Notes = append(a.Notes, text)
		})
		fanOut(s.published, articleID, func(a *news.Article) {
			a.Notes = append(a.Notes, text)
		})
	})
}

// Publish appends a new authored article. A duplicate id is rejected so
// the publish/update distinction stays honest.
func (s *Store) Publish(ctx context.Context, article news.Article) error {
	return s.mutateErr(ctx, func() error {
		for _, a := range s.published {
			if a.ID == article.ID {
				return fmt.Errorf("publish %q: %w", article.ID, ErrDuplicateID)
			}
		}
		s.published = append(s.published, article.Clone())
		return nil
	})
}

// UpdateArticle replaces the published entry with the same id by full
// payload substitution. Missing id is a silent no-op, and saved copies of
// the id are deliberately not touched.
func (s *Store) UpdateArticle(ctx context.Context, article news.Article) {
	s.mutate(ctx, func() {
		for i, a := range s.published {
			if a.ID == article.ID {
				s.published[i] = article.Clone()
				return
			}
		}
	})
}

// DeleteArticle removes the id from published only. A previously saved
// copy remains in saved as an orphan.
func (s *Store) DeleteArticle(ctx context.Context, articleID string) {
	s.mutate(ctx, func() {
		for i, a := range s.published {
			if a.ID == articleID {
				s.published = append(s.published[:i], s.published[i+1:]...)
				return
			}
		}
	})
}

// UpdateSettings applies a partial settings update. Invalid enum values
// are ignored per field; see SettingsPatch for the privileged-flag rule.
func (s *Store) UpdateSettings(ctx context.Context, patch SettingsPatch) {
	s.mutate(ctx, func() {
		s.settings = s.settings.applyPatch(patch)
	})
}

// UpdateAuthor sets the local author profile.
func (s *Store) UpdateAuthor(ctx context.Context, name, bio, avatar string) {
	s.mutate(ctx, func() {
		s.settings.AuthorName = name
		s.settings.AuthorBio = bio
		s.settings.AuthorAvatar = avatar
	})
}

func (s *Store) Saved() []news.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneArticles(s.saved)
}

func (s *Store) Published() []news.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneArticles(s.published)
}

func (s *Store) Liked() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.liked...)
}

func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *Store) IsSaved(articleID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.saved {
		if a.ID == articleID {
			return true
		}
	}
	return false
}

func (s *Store) IsLiked(articleID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.liked {
		if id == articleID {
			return true
		}
	}
	return false
}

// mutate is the single serialized mutation entry point: apply the
// transition, then persist the redacted snapshot while still holding the
// lock so reads only ever observe fully applied states.
func (s *Store) mutate(ctx context.Context, fn func()) {
	s.mutateErr(ctx, func() error {
		fn()
		return nil
	})
}

func (s *Store) mutateErr(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(); err != nil {
		return err
	}
	s.persistLocked(ctx)
	return nil
}

func (s *Store) persistLocked(ctx context.Context) {
	payload, err := json.Marshal(s.redacted())
	if err != nil {
		s.reportPersistError(fmt.Errorf("serialize snapshot: %w", err))
		return
	}
	if err := s.repo.SaveSnapshot(ctx, payload); err != nil {
		s.reportPersistError(fmt.Errorf("write snapshot: %w", err))
	}
}

// redacted is the projection applied before every durable write: the
// privileged flag is forced off regardless of its in-memory value.
func (s *Store) redacted() snapshot {
	settings := s.settings
	settings.IsDeveloper = false
	return snapshot{
		SavedArticles:     s.saved,
		LikedArticles:     s.liked,
		PublishedArticles: s.published,
		Settings:          settings,
	}
}

func (s *Store) reportPersistError(err error) {
	if s.onPersistError != nil {
		s.onPersistError(err)
	}
}

func fanOut(articles []news.Article, id string, apply func(*news.Article)) {
	for i := range articles {
		if articles[i].ID == id {
			apply(&articles[i])
		}
	}
}

func cloneArticles(in []news.Article) []news.Article {
	out := make([]news.Article, 0, len(in))
	for _, a := range in {
		out = append(out, a.Clone())
	}
	return out
}

func ensureArticles(in []news.Article) []news.Article {
	if in == nil {
		return []news.Article{}
	}
	for i := range in {
		if in[i].Tags == nil {
			in[i].Tags = []news.Tag{}
		}
		if in[i].Highlights == nil {
			in[i].Highlights = []string{}
		}
		if in[i].Notes == nil {
			in[i].Notes = []string{}
		}
	}
	return in
}

func ensureIDs(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
