package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/debemdeboas/site-admin/internal/render"
)

// editorCommand picks the external editor: explicit config first, then the
// usual environment chain.
func editorCommand(configured string) string {
	if v := strings.TrimSpace(configured); v != "" && v != "vi" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("VISUAL")); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv("EDITOR")); v != "" {
		return v
	}
	return "vi"
}

// editRichText opens the external editor on a markdown scratch buffer seeded
// with the current value and returns the edited content rendered to HTML.
// Markdown is the authoring format; the stored value is always HTML.
func editRichText(configured, initial string) (string, error) {
	editor := editorCommand(configured)
	words := strings.Fields(editor)
	if len(words) == 0 {
		words = []string{"vi"}
	}

	f, err := os.CreateTemp("", "site-admin-*.md")
	if err != nil {
		return "", err
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(initial); err != nil {
		f.Close()
		return "", err
	}
	f.Close()

	cmd := exec.Command(words[0], append(words[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor %s: %w", words[0], err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(render.MarkdownToHTML(edited)), nil
}
