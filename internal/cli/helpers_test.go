package cli

import (
	"strings"
	"testing"

	"github.com/debemdeboas/site-admin/internal/listview"
	"github.com/debemdeboas/site-admin/internal/model"
	"github.com/debemdeboas/site-admin/internal/schema"
)

func TestParseSet(t *testing.T) {
	tests := []struct {
		in        string
		name      string
		value     string
		expectErr bool
	}{
		{in: "heading=Hello", name: "heading", value: "Hello"},
		{in: "url=https://a.com?x=1", name: "url", value: "https://a.com?x=1"},
		{in: "empty=", name: "empty", value: ""},
		{in: "novalue", expectErr: true},
		{in: "=value", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, value, err := parseSet(tt.in)
			if tt.expectErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSet(%q): %v", tt.in, err)
			}
			if name != tt.name || value != tt.value {
				t.Errorf("got %q=%q, want %q=%q", name, value, tt.name, tt.value)
			}
		})
	}
}

func TestParseFacet(t *testing.T) {
	if f, err := parseFacet(""); err != nil || f != listview.FacetAll {
		t.Errorf("empty facet: got %v, %v", f, err)
	}
	if f, err := parseFacet("active"); err != nil || f != listview.FacetActive {
		t.Errorf("active facet: got %v, %v", f, err)
	}
	if f, err := parseFacet("inactive"); err != nil || f != listview.FacetInactive {
		t.Errorf("inactive facet: got %v, %v", f, err)
	}
	if _, err := parseFacet("bogus"); err == nil {
		t.Error("expected error for bogus facet")
	}
}

func TestConfirm(t *testing.T) {
	var out strings.Builder
	if !confirm(&out, strings.NewReader("y\n"), "sure?") {
		t.Error("expected y to confirm")
	}
	if confirm(&out, strings.NewReader("n\n"), "sure?") {
		t.Error("expected n to decline")
	}
	if confirm(&out, strings.NewReader(""), "sure?") {
		t.Error("expected EOF to decline")
	}
}

func TestRenderListSkipsRichFields(t *testing.T) {
	s := &schema.Schema{
		Name: "job",
		Fields: []schema.Field{
			{Name: "title", Kind: schema.KindText},
			{Name: "body", Kind: schema.KindRich},
		},
	}
	list := []model.Resource{
		{ID: "1", IsActive: true, Fields: map[string]string{"title": "Engineer"}, RichText: "<p>secret</p>"},
	}

	got := renderList(s, list, listview.Count(list))
	if !strings.Contains(got, "title=Engineer") {
		t.Errorf("scalar field missing: %q", got)
	}
	if strings.Contains(got, "secret") {
		t.Errorf("rich text leaked into the list: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 40); got != "short" {
		t.Errorf("got %q", got)
	}
	long := strings.Repeat("x", 50)
	got := truncate(long, 40)
	if len(got) != 40 || !strings.HasSuffix(got, "...") {
		t.Errorf("got %q (len %d)", got, len(got))
	}
}
