package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newDraftsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Inspect autosaved draft snapshots",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <resource>",
		Short: "List autosaved drafts for a resource type, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.drafts == nil {
				return errors.New("draft autosave is disabled in the configuration")
			}
			s, err := lookupSchema(args[0])
			if err != nil {
				return err
			}

			snaps, err := app.drafts.List(s.Name)
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				cmd.Println("no autosaved drafts")
				return nil
			}
			for _, snap := range snaps {
				line := idStyle.Render(snap.ID) + "  " + snap.SavedAt.Local().Format("2006-01-02 15:04")
				if snap.TargetID != "" {
					line += "  editing " + snap.TargetID
				}
				cmd.Println(line)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <snapshot-id>",
		Short: "Discard an autosaved draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.drafts == nil {
				return errors.New("draft autosave is disabled in the configuration")
			}
			if err := app.drafts.Delete(args[0]); err != nil {
				return err
			}
			cmd.Println("draft discarded")
			return nil
		},
	})

	return cmd
}
