package cli

import (
	"github.com/spf13/cobra"

	"github.com/debemdeboas/site-admin/internal/model"
)

func newRmCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <resource> <id>",
		Short: "Delete a resource entry after confirmation",
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
			ctrl.RequestDelete(id)

			if !yes && !confirm(cmd.OutOrStdout(), cmd.InOrStdin(), "delete "+s.Name+" "+args[1]+"?") {
				ctrl.CancelDelete()
				cmd.Println("aborted")
				return nil
			}

			if err := ctrl.ConfirmDelete(cmd.Context()); err != nil {
				return err
			}
			cmd.Printf("%s %s deleted\n", s.Name, args[1])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
