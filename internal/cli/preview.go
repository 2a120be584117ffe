package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/debemdeboas/site-admin/internal/model"
	"github.com/debemdeboas/site-admin/internal/render"
	"github.com/debemdeboas/site-admin/internal/schema"
)

func newPreviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <resource> <id>",
		Short: "Show a single entry with its rendered rich text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := lookupSchema(args[0])
			if err != nil {
				return err
			}

			ctrl := app.newController(s)
			if err := ctrl.Refresh(cmd.Context()); err != nil {
				return err
			}

			id := model.ResourceID(args[1])
			var target *model.Resource
			for _, r := range ctrl.Committed() {
				if r.ID == id {
					target = &r
					break
				}
			}
			if target == nil {
				return fmt.Errorf("no %s with id %s", s.Name, args[1])
			}

			cmd.Printf("%s %s  %s\n", headerStyle.Render(s.Name), args[1], statusBadge(target.IsActive))
			for _, f := range s.Fields {
				if f.Kind == schema.KindRich {
					continue
				}
				cmd.Printf("%s: %s\n", labelStyle.Render(f.Label), target.Field(f.Name))
			}

			if target.Image != "" {
				url, err := app.resolver.Resolve(cmd.Context(), target.Image)
				if err != nil {
					return err
				}
				cmd.Printf("%s: %s\n", labelStyle.Render("Image"), url)
			}

			if rich, ok := s.RichTextField(); ok && target.RichText != "" {
				safe := render.SanitizeHTML(target.RichText)
				cmd.Printf("%s:\n%s\n", labelStyle.Render(rich.Label),
					render.HighlightTerminal(safe, "html", app.cfg.Editor.HighlightTheme))
			}
			return nil
		},
	}
}
