package cli

import (
	"github.com/spf13/cobra"

	"github.com/debemdeboas/site-admin/internal/model"
)

func newEditCmd(app *App) *cobra.Command {
	var (
		sets        []string
		imagePath   string
		removeImage bool
		openEditor  bool
	)

	cmd := &cobra.Command{
		Use:   "edit <resource> <id>",
		Short: "Update an existing resource entry",
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
			if err := ctrl.OpenEdit(model.ResourceID(args[1])); err != nil {
				return err
			}
			defer ctrl.Cancel()

			if err := app.fillDraft(ctrl, s, sets, imagePath, openEditor); err != nil {
				return err
			}
			if removeImage {
				ctrl.RemoveImage()
			}

			return app.submitDraft(cmd, ctrl, s, "")
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a field, repeatable: --set name=value")
	cmd.Flags().StringVar(&imagePath, "image", "", "Replace the attachment with a local image file")
	cmd.Flags().BoolVar(&removeImage, "remove-image", false, "Remove the committed attachment")
	cmd.Flags().BoolVar(&openEditor, "body", false, "Open the external editor for the rich text field")
	return cmd
}
