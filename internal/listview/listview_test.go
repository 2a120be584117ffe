package listview

import (
	"reflect"
	"testing"

	"github.com/debemdeboas/site-admin/internal/model"
)

var searchable = []string{"heading", "description", "button_name"}

func fixtureList() []model.Resource {
	return []model.Resource{
		{ID: "1", IsActive: true, Fields: map[string]string{
			"heading": "Our Story", "description": "How it all began"}},
		{ID: "2", IsActive: false, Fields: map[string]string{
			"heading": "Careers", "description": "Open roles", "button_name": "Apply Now"}},
		{ID: "3", IsActive: true, Fields: map[string]string{
			"heading": "Pricing", "description": "Plans and story tiers"}},
	}
}

func ids(list []model.Resource) []model.ResourceID {
	out := make([]model.ResourceID, 0, len(list))
	for _, r := range list {
		out = append(out, r.ID)
	}
	return out
}

func TestProject_Identity(t *testing.T) {
	list := fixtureList()
	got := Project(list, "", FacetAll, searchable)
	if !reflect.DeepEqual(ids(got), ids(list)) {
		t.Errorf("identity projection changed the list: %v", ids(got))
	}
}

func TestProject_Facets(t *testing.T) {
	list := fixtureList()

	cases := []struct {
		name  string
		facet Facet
		want  []model.ResourceID
	}{
		{"All", FacetAll, []model.ResourceID{"1", "2", "3"}},
		{"Active", FacetActive, []model.ResourceID{"1", "3"}},
		{"Inactive", FacetInactive, []model.ResourceID{"2"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Project(list, "", tc.facet, searchable))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestProject_Search(t *testing.T) {
	list := fixtureList()

	t.Run("Case-insensitive substring", func(t *testing.T) {
		got := ids(Project(list, "STORY", FacetAll, searchable))
		want := []model.ResourceID{"1", "3"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("Matches domain-specific field", func(t *testing.T) {
		got := ids(Project(list, "apply", FacetAll, searchable))
		want := []model.ResourceID{"2"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("Filters compose with AND", func(t *testing.T) {
		got := ids(Project(list, "story", FacetActive, searchable))
		want := []model.ResourceID{"1", "3"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
		if len(Project(list, "apply", FacetActive, searchable)) != 0 {
			t.Error("inactive row leaked through active facet")
		}
	})

	t.Run("No match yields empty view", func(t *testing.T) {
		if got := Project(list, "zzz", FacetAll, searchable); len(got) != 0 {
			t.Errorf("got %v, want empty", ids(got))
		}
	})
}

// Text filtering must never add rows: every projection with search text is a
// subsequence of the same projection without it.
func TestProject_SearchIsSubsequence(t *testing.T) {
	list := fixtureList()
	for _, facet := range []Facet{FacetAll, FacetActive, FacetInactive} {
		base := Project(list, "", facet, searchable)
		for _, needle := range []string{"story", "o", "apply", "zzz"} {
			filtered := Project(list, needle, facet, searchable)
			if !isSubsequence(ids(filtered), ids(base)) {
				t.Errorf("facet %s search %q: %v is not a subsequence of %v",
					facet, needle, ids(filtered), ids(base))
			}
		}
	}
}

func isSubsequence(sub, full []model.ResourceID) bool {
	i := 0
	for _, id := range full {
		if i < len(sub) && sub[i] == id {
			i++
		}
	}
	return i == len(sub)
}

func TestCount(t *testing.T) {
	got := Count(fixtureList())
	want := Counters{Total: 3, Active: 2, Inactive: 1}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	if got := Count(nil); got != (Counters{}) {
		t.Errorf("empty list: got %+v", got)
	}
}
