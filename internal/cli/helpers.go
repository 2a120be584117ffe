package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/debemdeboas/site-admin/internal/attachment"
	"github.com/debemdeboas/site-admin/internal/controller"
	"github.com/debemdeboas/site-admin/internal/listview"
)

func envValue(name string) string {
	return os.Getenv(name)
}

// parseSet splits a repeated --set flag value into field name and value.
func parseSet(arg string) (name, value string, err error) {
	name, value, ok := strings.Cut(arg, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return "", "", fmt.Errorf("--set expects field=value, got %q", arg)
	}
	return strings.TrimSpace(name), value, nil
}

func parseFacet(arg string) (listview.Facet, error) {
	switch arg {
	case "", "all":
		return listview.FacetAll, nil
	case "active":
		return listview.FacetActive, nil
	case "inactive":
		return listview.FacetInactive, nil
	default:
		return listview.FacetAll, fmt.Errorf("unknown facet %q, want all, active or inactive", arg)
	}
}

// applySets pushes every --set value into the open draft.
func applySets(ctrl *controller.Controller, sets []string) error {
	for _, arg := range sets {
		name, value, err := parseSet(arg)
		if err != nil {
			return err
		}
		ctrl.SetField(name, value)
	}
	return nil
}

// stageImage loads a local file into the open draft's attachment slot.
// Rejections surface as a field error on the draft, like any other
// validation failure, so staging itself only fails on filesystem errors.
func stageImage(ctrl *controller.Controller, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image %s: %w", path, err)
	}
	ctrl.SelectImage(attachment.File{Name: filepath.Base(path), Data: data})
	return nil
}

// confirm reads a y/N answer from the reader.
func confirm(out io.Writer, in io.Reader, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
