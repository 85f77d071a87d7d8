// Package app is the facade the view layer talks to: reconciled feeds on
// the read side, store mutations and the developer gate on the write side.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/llovera/newsdeck/internal/news"
	"github.com/llovera/newsdeck/internal/reconcile"
	"github.com/llovera/newsdeck/internal/store"
)

// NewsSource is the remote article source. Calls may fail; the service
// degrades to local-only results and reports the failure distinctly.
type NewsSource interface {
	FetchTop(ctx context.Context) ([]news.Article, error)
	FetchSearch(ctx context.Context, query string) ([]news.Article, error)
	FetchPopular(ctx context.Context) ([]news.Article, error)
}

// Store is the authoritative session state consumed by the service.
type Store interface {
	Saved() []news.Article
	Published() []news.Article
	Liked() []string
	Settings() store.Settings
	IsSaved(articleID string) bool
	IsLiked(articleID string) bool

	ToggleLiked(ctx context.Context, articleID string)
	ToggleSaved(ctx context.Context, article news.Article)
	AddHighlight(ctx context.Context, articleID, text string)
	AddNote(ctx context.Context, articleID, text string)
	Publish(ctx context.Context, article news.Article) error
	UpdateArticle(ctx context.Context, article news.Article)
	DeleteArticle(ctx context.Context, articleID string)
	UpdateSettings(ctx context.Context, patch store.SettingsPatch)
	UpdateAuthor(ctx context.Context, name, bio, avatar string)
}

// Unlocker grants the developer capability after its own credential check.
type Unlocker interface {
	Unlock(ctx context.Context, password string) error
}

// RemoteFetchError marks results that were reconciled without the remote
// source. Callers still receive the local-only article list.
type RemoteFetchError struct {
	Mode string
	Err  error
}

func (e *RemoteFetchError) Error() string {
	return fmt.Sprintf("remote fetch for %s failed: %v", e.Mode, e.Err)
}

func (e *RemoteFetchError) Unwrap() error { return e.Err }

type Service struct {
	source NewsSource
	store  Store
	gate   Unlocker
}

func NewService(source NewsSource, st Store, gate Unlocker) *Service {
	return &Service{source: source, store: st, gate: gate}
}

// Dashboard merges published articles with the top-headlines feed. On
// remote failure the local-only reconciliation is returned together with
// a *RemoteFetchError.
func (s *Service) Dashboard(ctx context.Context, sort reconcile.SortMode, selectedTags []string) ([]news.Article, error) {
	local := s.store.Published()
	remote, err := s.source.FetchTop(ctx)
	if err != nil {
		return reconcile.Dashboard(local, nil, sort, selectedTags), &RemoteFetchError{Mode: "dashboard", Err: err}
	}
	return reconcile.Dashboard(local, remote, sort, selectedTags), nil
}

// Search merges matching published articles with remote search results.
// An empty query short-circuits to local results without touching the
// remote source.
func (s *Service) Search(ctx context.Context, query string) ([]news.Article, error) {
	local := s.store.Published()
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return reconcile.Search(local, nil, trimmed), nil
	}

	remote, err := s.source.FetchSearch(ctx, trimmed)
	if err != nil {
		return reconcile.Search(local, nil, trimmed), &RemoteFetchError{Mode: "search", Err: err}
	}
	return reconcile.Search(local, remote, trimmed), nil
}

// Popular leads with the newest published articles, then the remote
// popular feed.
func (s *Service) Popular(ctx context.Context) ([]news.Article, error) {
	local := s.store.Published()
	remote, err := s.source.FetchPopular(ctx)
	if err != nil {
		return reconcile.Popular(local, nil), &RemoteFetchError{Mode: "popular", Err: err}
	}
	return reconcile.Popular(local, remote), nil
}

func (s *Service) Saved() []news.Article     { return s.store.Saved() }
func (s *Service) Published() []news.Article { return s.store.Published() }
func (s *Service) Liked() []string           { return s.store.Liked() }
func (s *Service) Settings() store.Settings  { return s.store.Settings() }
func (s *Service) IsSaved(id string) bool    { return s.store.IsSaved(id) }
func (s *Service) IsLiked(id string) bool    { return s.store.IsLiked(id) }

func (s *Service) ToggleLiked(ctx context.Context, articleID string) {
	s.store.ToggleLiked(ctx, articleID)
}

func (s *Service) ToggleSaved(ctx context.Context, article news.Article) {
	s.store.ToggleSaved(ctx, article)
}

func (s *Service) AddHighlight(ctx context.Context, articleID, text string) {
	s.store.AddHighlight(ctx, articleID, text)
}

func (s *Service) AddNote(ctx context.Context, articleID, text string) {
	s.store.AddNote(ctx, articleID, text)
}

// Publish fills in the identity a freshly authored draft lacks before
// handing it to the store: a generated id, the session's author id, the
// publication time, and the author as its source.
func (s *Service) Publish(ctx context.Context, article news.Article) error {
	settings := s.store.Settings()
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	if article.AuthorID == "" {
		article.AuthorID = settings.AuthorID
	}
	if article.PublishedAt.IsZero() {
		article.PublishedAt = time.Now()
	}
	if article.Source.Name == "" {
		article.Source.Name = settings.AuthorName
		if article.Source.Name == "" {
			article.Source.Name = "Developer"
		}
	}
	return s.store.Publish(ctx, article)
}

func (s *Service) UpdateArticle(ctx context.Context, article news.Article) {
	s.store.UpdateArticle(ctx, article)
}

func (s *Service) DeleteArticle(ctx context.Context, articleID string) {
	s.store.DeleteArticle(ctx, articleID)
}

func (s *Service) UpdateSettings(ctx context.Context, patch store.SettingsPatch) {
	s.store.UpdateSettings(ctx, patch)
}

func (s *Service) UpdateAuthor(ctx context.Context, name, bio, avatar string) {
	s.store.UpdateAuthor(ctx, name, bio, avatar)
}

// Unlock asks the access gate to grant developer mode.
func (s *Service) Unlock(ctx context.Context, password string) error {
	return s.gate.Unlock(ctx, password)
}
