// Package view derives the visible repository list from the full dataset and
// the current filter/sort controls. Everything here is pure: inputs are never
// mutated and each call fully replaces the previous result.
package view

import (
	"sort"
	"strings"

	"github.com/Nabil3962/Suhail-Repository-Hub/internal/cache"
)

type SortMode int

const (
	SortRecency SortMode = iota
	SortStars
	SortName
)

func (m SortMode) String() string {
	switch m {
	case SortStars:
		return "stars"
	case SortName:
		return "name"
	default:
		return "recency"
	}
}

// Next cycles to the following sort mode.
func (m SortMode) Next() SortMode {
	switch m {
	case SortRecency:
		return SortStars
	case SortStars:
		return SortName
	default:
		return SortRecency
	}
}

// Options is the user-controlled view state. Zero values mean "no filter".
type Options struct {
	Query    string // case-insensitive substring
	Language string // exact match; "" = all
	Tag      string // must be a member of Topics; "" = none
	Sort     SortMode
}

// Derive returns the filtered, ordered subset of repos for opts. The sort is
// stable, so ties keep the dataset's original order.
func Derive(repos []cache.Record, opts Options) []cache.Record {
	query := strings.ToLower(strings.TrimSpace(opts.Query))

	out := make([]cache.Record, 0, len(repos))
	for _, r := range repos {
		if opts.Language != "" && r.Language != opts.Language {
			continue
		}
		if opts.Tag != "" && !hasTopic(r, opts.Tag) {
			continue
		}
		if query != "" && !matchesQuery(r, query) {
			continue
		}
		out = append(out, r)
	}

	switch opts.Sort {
	case SortStars:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Stars > out[j].Stars })
	case SortName:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	}
	return out
}

func hasTopic(r cache.Record, tag string) bool {
	for _, t := range r.Topics {
		if t == tag {
			return true
		}
	}
	return false
}

func matchesQuery(r cache.Record, query string) bool {
	haystack := strings.ToLower(r.Name + " " + r.Description + " " + strings.Join(r.Topics, " "))
	return strings.Contains(haystack, query)
}

// Facets returns the distinct non-empty languages and distinct topics of the
// full dataset, both ascending. Callers recompute these only when the dataset
// changes, not on every filter pass.
func Facets(repos []cache.Record) (languages, topics []string) {
	langSet := make(map[string]bool)
	topicSet := make(map[string]bool)
	for _, r := range repos {
		if r.Language != "" {
			langSet[r.Language] = true
		}
		for _, t := range r.Topics {
			topicSet[t] = true
		}
	}

	languages = make([]string, 0, len(langSet))
	for l := range langSet {
		languages = append(languages, l)
	}
	sort.Strings(languages)

	topics = make([]string, 0, len(topicSet))
	for t := range topicSet {
		topics = append(topics, t)
	}
	sort.Strings(topics)

	return languages, topics
}
