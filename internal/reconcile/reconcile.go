// Package reconcile merges locally authored articles with remote-sourced
// ones. Each query mode carries its own ordering and dedup policy; all
// functions are pure and never mutate their inputs.
package reconcile

import (
	"sort"
	"strings"

	"github.com/llovera/newsdeck/internal/news"
)

// SortMode selects the dashboard ordering.
type SortMode string

const (
	SortBest   SortMode = "best"
	SortRecent SortMode = "recent"
	SortOldest SortMode = "oldest"
)

// PopularLocalLimit caps how many authored articles lead the popular feed.
const PopularLocalLimit = 5

// Dashboard concatenates local and remote articles, applies the optional
// tag filter, then sorts. Best-match ranks tag-matching articles above the
// rest and newest-first within each partition; ties keep prior order.
func Dashboard(local, remote []news.Article, mode SortMode, selectedTags []string) []news.Article {
	all := concat(local, remote)
	selected := news.TagIDSet(selectedTags)

	if len(selected) > 0 {
		filtered := all[:0]
		for _, a := range all {
			if a.HasAnyTag(selected) {
				filtered = append(filtered, a)
			}
		}
		all = filtered
	}

	switch mode {
	case SortRecent:
		sort.SliceStable(all, func(i, j int) bool {
			return all[i].PublishedAt.After(all[j].PublishedAt)
		})
	case SortOldest:
		sort.SliceStable(all, func(i, j int) bool {
			return all[i].PublishedAt.Before(all[j].PublishedAt)
		})
	default: // SortBest
		sort.SliceStable(all, func(i, j int) bool {
			iMatch := all[i].HasAnyTag(selected)
			jMatch := all[j].HasAnyTag(selected)
			if iMatch != jMatch {
				return iMatch
			}
			return all[i].PublishedAt.After(all[j].PublishedAt)
		})
	}
	return all
}

// Search places local matches ahead of remote results and drops later
// duplicates by id, so a local copy shadows the remote copy of the same
// article. The remote slice is expected to already match the query.
func Search(local, remote []news.Article, query string) []news.Article {
	merged := concat(FilterLocal(local, query), remote)

	seen := make(map[string]struct{}, len(merged))
	out := merged[:0]
	for _, a := range merged {
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	return out
}

// FilterLocal keeps articles whose title, content, or overview contains
// the query, case-insensitively.
func FilterLocal(local []news.Article, query string) []news.Article {
	q := strings.ToLower(query)
	out := make([]news.Article, 0, len(local))
	for _, a := range local {
		if strings.Contains(strings.ToLower(a.Title), q) ||
			strings.Contains(strings.ToLower(a.Content), q) ||
			strings.Contains(strings.ToLower(a.Overview), q) {
			out = append(out, a)
		}
	}
	return out
}

// Popular leads with the most recently published local articles, at most
// PopularLocalLimit of them, followed by the remote popular feed. No
// dedup is applied in this mode.
func Popular(local, remote []news.Article) []news.Article {
	recent := append([]news.Article(nil), local...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].PublishedAt.After(recent[j].PublishedAt)
	})
	if len(recent) > PopularLocalLimit {
		recent = recent[:PopularLocalLimit]
	}
	return append(recent, remote...)
}

func concat(local, remote []news.Article) []news.Article {
	out := make([]news.Article, 0, len(local)+len(remote))
	out = append(out, local...)
	return append(out, remote...)
}
