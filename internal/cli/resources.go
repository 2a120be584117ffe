package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/debemdeboas/site-admin/internal/schema"
)

func newResourcesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List the manageable resource types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range schema.Registry() {
				describeSchema(cmd, s, "")
			}
			return nil
		},
	}
}

func describeSchema(cmd *cobra.Command, s *schema.Schema, indent string) {
	var traits []string
	if s.Attachment.Allowed {
		traits = append(traits, fmt.Sprintf("image up to %dMB", s.Attachment.MaxBytes/schema.MB))
	}
	if s.TogglePath != "" {
		traits = append(traits, "dedicated toggle")
	}
	if len(s.Children) > 0 {
		traits = append(traits, fmt.Sprintf("%d nested", len(s.Children)))
	}

	line := fmt.Sprintf("%s%s  /%s  %d fields", indent, headerStyle.Render(s.Name), s.Path, len(s.Fields))
	if len(traits) > 0 {
		line += "  (" + strings.Join(traits, ", ") + ")"
	}
	cmd.Println(line)

	for _, child := range s.Children {
		describeSchema(cmd, child, indent+"  ")
	}
}
