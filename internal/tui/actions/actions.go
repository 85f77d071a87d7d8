package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llovera/newsdeck/internal/app"
	"github.com/llovera/newsdeck/internal/news"
	"github.com/llovera/newsdeck/internal/reconcile"
)

// Feed identifies which article list the model is showing.
type Feed string

const (
	FeedDashboard Feed = "dashboard"
	FeedSearch    Feed = "search"
	FeedSaved     Feed = "saved"
	FeedPopular   Feed = "popular"
)

type Service interface {
	Dashboard(ctx context.Context, sort reconcile.SortMode, selectedTags []string) ([]news.Article, error)
	Search(ctx context.Context, query string) ([]news.Article, error)
	Popular(ctx context.Context) ([]news.Article, error)
	Saved() []news.Article
	IsSaved(articleID string) bool
	IsLiked(articleID string) bool

	ToggleLiked(ctx context.Context, articleID string)
	ToggleSaved(ctx context.Context, article news.Article)
	AddHighlight(ctx context.Context, articleID, text string)
	AddNote(ctx context.Context, articleID, text string)
	Publish(ctx context.Context, article news.Article) error
	DeleteArticle(ctx context.Context, articleID string)
	UpdateAuthor(ctx context.Context, name, bio, avatar string)
	Unlock(ctx context.Context, password string) error
}

type FeedLoadedMsg struct {
	Feed     Feed
	Articles []news.Article
	Warning  string
	Duration time.Duration
}

type FeedErrorMsg struct {
	Feed Feed
	Err  error
}

type ToggleSavedMsg struct {
	ArticleID string
	NowSaved  bool
	Status    string
}

type ToggleLikedMsg struct {
	ArticleID string
	NowLiked  bool
	Status    string
}

type AnnotationAddedMsg struct {
	ArticleID string
	Status    string
}

type ArticlePublishedMsg struct {
	ArticleID string
	Err       error
}

type ArticleDeletedMsg struct {
	ArticleID string
	Status    string
}

type AuthorUpdatedMsg struct {
	Status string
}

type UnlockResultMsg struct {
	Err error
}

type OpenURLSuccessMsg struct {
	Status string
}

type OpenURLErrorMsg struct {
	Err error
}

const fetchTimeout = 10 * time.Second

// loadFeed wraps the shared remote-degradation handling: a
// RemoteFetchError still carries usable local-only articles, so it turns
// into a loaded feed with a warning rather than an error.
func loadFeed(feed Feed, fetch func(ctx context.Context) ([]news.Article, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		start := time.Now()

		articles, err := fetch(ctx)
		if err != nil {
			var remoteErr *app.RemoteFetchError
			if errors.As(err, &remoteErr) {
				return FeedLoadedMsg{
					Feed:     feed,
					Articles: articles,
					Warning:  "remote source unavailable, showing local articles",
					Duration: time.Since(start),
				}
			}
			return FeedErrorMsg{Feed: feed, Err: err}
		}
		return FeedLoadedMsg{Feed: feed, Articles: articles, Duration: time.Since(start)}
	}
}

func LoadDashboardCmd(service Service, sort reconcile.SortMode, selectedTags []string) tea.Cmd {
	return loadFeed(FeedDashboard, func(ctx context.Context) ([]news.Article, error) {
		return service.Dashboard(ctx, sort, selectedTags)
	})
}

func LoadSearchCmd(service Service, query string) tea.Cmd {
	return loadFeed(FeedSearch, func(ctx context.Context) ([]news.Article, error) {
		return service.Search(ctx, query)
	})
}

func LoadPopularCmd(service Service) tea.Cmd {
	return loadFeed(FeedPopular, func(ctx context.Context) ([]news.Article, error) {
		return service.Popular(ctx)
	})
}

func LoadSavedCmd(service Service) tea.Cmd {
	return func() tea.Msg {
		return FeedLoadedMsg{Feed: FeedSaved, Articles: service.Saved()}
	}
}

func ToggleSavedCmd(service Service, article news.Article) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		service.ToggleSaved(ctx, article)
		nowSaved := service.IsSaved(article.ID)

		status := "Removed from saved"
		if nowSaved {
			status = "Saved article"
		}
		return ToggleSavedMsg{ArticleID: article.ID, NowSaved: nowSaved, Status: status}
	}
}

func ToggleLikedCmd(service Service, articleID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		service.ToggleLiked(ctx, articleID)
		nowLiked := service.IsLiked(articleID)

		status := "Unliked article"
		if nowLiked {
			status = "Liked article"
		}
		return ToggleLikedMsg{ArticleID: articleID, NowLiked: nowLiked, Status: status}
	}
}

func AddHighlightCmd(service Service, articleID, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		service.AddHighlight(ctx, articleID, text)
		return AnnotationAddedMsg{ArticleID: articleID, Status: "Highlight added"}
	}
}

func AddNoteCmd(service Service, articleID, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		service.AddNote(ctx, articleID, text)
		return AnnotationAddedMsg{ArticleID: articleID, Status: "Note added"}
	}
}

func PublishArticleCmd(service Service, article news.Article) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		err := service.Publish(ctx, article)
		return ArticlePublishedMsg{ArticleID: article.ID, Err: err}
	}
}

func UpdateAuthorCmd(service Service, name, bio, avatar string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		service.UpdateAuthor(ctx, name, bio, avatar)
		return AuthorUpdatedMsg{Status: "Author profile updated"}
	}
}

func DeleteArticleCmd(service Service, articleID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		service.DeleteArticle(ctx, articleID)
		return ArticleDeletedMsg{ArticleID: articleID, Status: "Deleted published article"}
	}
}

func UnlockCmd(service Service, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		return UnlockResultMsg{Err: service.Unlock(ctx, password)}
	}
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened URL in browser"}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open URL or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy URL to clipboard")}
	}
}
