package cli

import (
	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var (
		sets       []string
		imagePath  string
		openEditor bool
		fromDraft  string
	)

	cmd := &cobra.Command{
		Use:   "add <resource>",
		Short: "Create a new resource entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := lookupSchema(args[0])
			if err != nil {
				return err
			}

			ctrl := app.newController(s)
			ctrl.OpenAdd()
			defer ctrl.Cancel()

			if fromDraft != "" {
				if err := app.restoreDraft(ctrl, s, fromDraft); err != nil {
					return err
				}
			}
			if err := app.fillDraft(ctrl, s, sets, imagePath, openEditor); err != nil {
				return err
			}

			if err := app.submitDraft(cmd, ctrl, s, ""); err != nil {
				return err
			}
			if fromDraft != "" && app.drafts != nil {
				if err := app.drafts.Delete(fromDraft); err != nil {
					app.log.Warn().Err(err).Str("id", fromDraft).Msg("Removing consumed draft failed")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a field, repeatable: --set name=value")
	cmd.Flags().StringVar(&imagePath, "image", "", "Attach a local image file")
	cmd.Flags().BoolVar(&openEditor, "body", false, "Open the external editor for the rich text field")
	cmd.Flags().StringVar(&fromDraft, "from-draft", "", "Start from an autosaved draft snapshot")
	return cmd
}
