// Package catalog filters and summarizes in-memory collections.
//
// Every call is a linear scan over items x fields with no index. Collections
// are expected to stay in the tens to low hundreds of records.
package catalog

import (
	"sort"
	"strings"
)

// All disables a facet. An empty selector does the same.
const All = "all"

// Field reads one string attribute of T.
type Field[T any] struct {
	Name  string
	Value func(T) string
}

// Schema names the fields searched by free text and the facet fields of T.
type Schema[T any] struct {
	Search []Field[T]
	Facets []Field[T]
}

// Query is a free-text needle plus facet selectors keyed by facet name.
type Query struct {
	Text   string
	Facets map[string]string
}

type Summary struct {
	Total    int
	Filtered int
	// ByFacet counts the full collection per facet name and value.
	ByFacet map[string]map[string]int
}

// Count returns how many records have facet == value.
func (s Summary) Count(facet, value string) int {
	return s.ByFacet[facet][value]
}

func active(sel string) bool { return sel != "" && sel != All }

// Matches reports whether item satisfies the text query and every active
// facet. Selectors for facets the schema does not define are ignored.
func (s Schema[T]) Matches(item T, q Query) bool {
	if !s.matchesText(item, strings.ToLower(strings.TrimSpace(q.Text))) {
		return false
	}
	for _, f := range s.Facets {
		sel := q.Facets[f.Name]
		if active(sel) && f.Value(item) != sel {
			return false
		}
	}
	return true
}

func (s Schema[T]) matchesText(item T, needle string) bool {
	if needle == "" {
		return true
	}
	for _, f := range s.Search {
		if strings.Contains(strings.ToLower(f.Value(item)), needle) {
			return true
		}
	}
	return false
}

// Filter returns the matching items in their original order. The result is
// a new slice and never nil.
func (s Schema[T]) Filter(items []T, q Query) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if s.Matches(it, q) {
			out = append(out, it)
		}
	}
	return out
}

// FacetOptions lists, per facet, All followed by the sorted distinct
// non-empty values found in items. Pass the full collection so the options
// do not shrink while filtering.
func (s Schema[T]) FacetOptions(items []T) map[string][]string {
	out := make(map[string][]string, len(s.Facets))
	for _, f := range s.Facets {
		seen := map[string]struct{}{}
		var vals []string
		for _, it := range items {
			v := f.Value(it)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			vals = append(vals, v)
		}
		sort.Strings(vals)
		out[f.Name] = append([]string{All}, vals...)
	}
	return out
}

func (s Schema[T]) Summarize(all, filtered []T) Summary {
	sum := Summary{
		Total:    len(all),
		Filtered: len(filtered),
		ByFacet:  make(map[string]map[string]int, len(s.Facets)),
	}
	for _, f := range s.Facets {
		counts := map[string]int{}
		for _, it := range all {
			if v := f.Value(it); v != "" {
				counts[v]++
			}
		}
		sum.ByFacet[f.Name] = counts
	}
	return sum
}
