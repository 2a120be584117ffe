package cli

import (
	"github.com/spf13/cobra"

	"github.com/debemdeboas/site-admin/internal/model"
)

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <resource> <id>",
		Short: "Flip a resource's active status",
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
			if err := ctrl.Toggle(cmd.Context(), id); err != nil {
				return err
			}

			for _, r := range ctrl.Committed() {
				if r.ID == id {
					cmd.Printf("%s %s is now %s\n", s.Name, args[1], statusBadge(r.IsActive))
					break
				}
			}
			return nil
		},
	}
}
