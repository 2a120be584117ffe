// Package listview computes the filtered view of a committed resource list.
// Projection is pure: it never reorders, mutates or fabricates rows.
package listview

import (
	"strings"

	"github.com/debemdeboas/site-admin/internal/model"
)

type Facet string

const (
	FacetAll      Facet = "all"
	FacetActive   Facet = "active"
	FacetInactive Facet = "inactive"
)

// Project filters the committed list by search text and status facet. Both
// filters compose with AND; server ordering is preserved. The searchable
// field set comes from the resource schema.
func Project(list []model.Resource, search string, facet Facet, searchable []string) []model.Resource {
	needle := strings.ToLower(strings.TrimSpace(search))

	out := make([]model.Resource, 0, len(list))
	for _, r := range list {
		if !matchesFacet(r, facet) {
			continue
		}
		if needle != "" && !matchesSearch(r, needle, searchable) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesFacet(r model.Resource, facet Facet) bool {
	switch facet {
	case FacetActive:
		return r.IsActive
	case FacetInactive:
		return !r.IsActive
	default:
		return true
	}
}

func matchesSearch(r model.Resource, needle string, searchable []string) bool {
	for _, name := range searchable {
		if strings.Contains(strings.ToLower(r.Field(name)), needle) {
			return true
		}
	}
	return false
}

// Counters are derived over the committed list, not the projected view.
type Counters struct {
	Total    int
	Active   int
	Inactive int
}

func Count(list []model.Resource) Counters {
	c := Counters{Total: len(list)}
	for _, r := range list {
		if r.IsActive {
			c.Active++
		} else {
			c.Inactive++
		}
	}
	return c
}
