package news

import (
	"strings"
	"time"
)

// Tag is an immutable label attached to articles. The id doubles as the
// identity key within any tag set offered to a selection UI.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Source describes where an article came from.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Article is the canonical article shape shared by remote and authored
// articles. ID is the sole identity key: the source URL for remote
// articles, a generated identifier for authored ones.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	Image       string    `json:"image"`
	PublishedAt time.Time `json:"publishedAt"`
	Source      Source    `json:"source"`
	Tags        []Tag     `json:"tags"`
	Liked       bool      `json:"liked"`
	Saved       bool      `json:"saved"`
	Read        bool      `json:"read"`
	Highlights  []string  `json:"highlights"`
	Notes       []string  `json:"notes"`

	Overview     string   `json:"overview,omitempty"`
	BulletPoints []string `json:"bulletPoints,omitempty"`
	AuthorID     string   `json:"authorId,omitempty"`
}

// Clone returns a deep copy. Collections in the store hold independent
// value copies, so handing out aliased slices would defeat that.
func (a Article) Clone() Article {
	out := a
	out.Tags = append([]Tag(nil), a.Tags...)
	out.Highlights = append([]string(nil), a.Highlights...)
	out.Notes = append([]string(nil), a.Notes...)
	out.BulletPoints = append([]string(nil), a.BulletPoints...)
	return out
}

// HasAnyTag reports whether the article carries at least one tag whose id
// is in the given set.
func (a Article) HasAnyTag(ids map[string]struct{}) bool {
	for _, tag := range a.Tags {
		if _, ok := ids[tag.ID]; ok {
			return true
		}
	}
	return false
}

// DefaultTags returns the built-in tag set offered to the publishing UI.
func DefaultTags() []Tag {
	return []Tag{
		{ID: "good", Name: "Good News", Color: "#22c55e"},
		{ID: "death", Name: "Death", Color: "#ef4444"},
		{ID: "alarming", Name: "Alarming", Color: "#eab308"},
		{ID: "tech", Name: "Technology", Color: "#3b82f6"},
		{ID: "politics", Name: "Politics", Color: "#8b5cf6"},
		{ID: "health", Name: "Health", Color: "#ec4899"},
	}
}

// NewCustomTag builds a user-defined tag with a slug id derived from the
// display name. Custom tags live only for the editor session unless
// published on an article.
func NewCustomTag(name, color string) Tag {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return Tag{ID: slug, Name: strings.TrimSpace(name), Color: color}
}

// TagIDSet converts a list of tag ids to a membership set.
func TagIDSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
