package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/debemdeboas/site-admin/internal/listview"
	"github.com/debemdeboas/site-admin/internal/model"
	"github.com/debemdeboas/site-admin/internal/schema"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	idStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

func statusBadge(active bool) string {
	if active {
		return activeStyle.Render("active")
	}
	return inactiveStyle.Render("inactive")
}

// renderList formats a projected list for the terminal, one row per resource.
func renderList(s *schema.Schema, list []model.Resource, counters listview.Counters) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(s.Name))
	fmt.Fprintf(&b, "  %d shown (%d total, %d active, %d inactive)\n",
		len(list), counters.Total, counters.Active, counters.Inactive)

	for _, r := range list {
		b.WriteString(idStyle.Render(string(r.ID)))
		b.WriteString("  ")
		b.WriteString(statusBadge(r.IsActive))
		for _, f := range s.Fields {
			if f.Kind == schema.KindRich {
				continue
			}
			if v := r.Field(f.Name); v != "" {
				fmt.Fprintf(&b, "  %s=%s", f.Name, truncate(v, 40))
			}
		}
		if r.Image != "" {
			fmt.Fprintf(&b, "  image=%s", r.Image)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderFieldErrors formats a draft's validation map, heading fields first is
// not guaranteed; output is sorted by the schema's field order.
func renderFieldErrors(s *schema.Schema, errs model.ValidationErrorMap) string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("validation errors:"))
	b.WriteString("\n")

	seen := make(map[string]bool, len(errs))
	for _, f := range s.Fields {
		if msg, ok := errs[f.Name]; ok {
			fmt.Fprintf(&b, "  %s: %s\n", labelStyle.Render(f.Name), msg)
			seen[f.Name] = true
		}
	}
	for field, msg := range errs {
		if !seen[field] {
			fmt.Fprintf(&b, "  %s: %s\n", labelStyle.Render(field), msg)
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
