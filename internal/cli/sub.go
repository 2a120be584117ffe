package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/debemdeboas/site-admin/internal/controller"
	"github.com/debemdeboas/site-admin/internal/model"
)

// newSubCmd manages nested collections under one parent entry. A session is
// opened per invocation and closed before exit, so nothing about the nested
// collection outlives the command.
func newSubCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sub <resource> <id> <child>",
		Short: "Work with a nested collection under one parent entry",
	}

	cmd.AddCommand(newSubListCmd(app))
	cmd.AddCommand(newSubAddCmd(app))
	cmd.AddCommand(newSubRmCmd(app))
	return cmd
}

// openSession resolves parent and child schemas and opens the nested session.
func (app *App) openSession(cmd *cobra.Command, parentName, parentID, childName string) (*controller.NestedSession, error) {
	parent, err := lookupSchema(parentName)
	if err != nil {
		return nil, err
	}
	child, ok := parent.Child(childName)
	if !ok {
		return nil, fmt.Errorf("%s has no nested collection %q", parent.Name, childName)
	}

	session := controller.NewNestedSession(parent, child, app.client, app.previews, app.log)
	if err := session.Open(cmd.Context(), model.ResourceID(parentID)); err != nil {
		return nil, err
	}
	return session, nil
}

func newSubListCmd(app *App) *cobra.Command {
	var (
		search   string
		facetArg string
	)

	cmd := &cobra.Command{
		Use:   "list <resource> <id> <child>",
		Short: "List a nested collection",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			facet, err := parseFacet(facetArg)
			if err != nil {
				return err
			}

			session, err := app.openSession(cmd, args[0], args[1], args[2])
			if err != nil {
				return err
			}
			defer session.Close()

			ctrl := session.Controller()
			cmd.Print(renderList(ctrl.Schema(), ctrl.View(search, facet), ctrl.Counters()))
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter rows by substring match on searchable fields")
	cmd.Flags().StringVar(&facetArg, "facet", "all", "Status facet: all, active or inactive")
	return cmd
}

func newSubAddCmd(app *App) *cobra.Command {
	var (
		sets      []string
		imagePath string
	)

	cmd := &cobra.Command{
		Use:   "add <resource> <id> <child>",
		Short: "Add an entry to a nested collection",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.openSession(cmd, args[0], args[1], args[2])
			if err != nil {
				return err
			}
			defer session.Close()

			ctrl := session.Controller()
			ctrl.OpenAdd()
			if err := app.fillDraft(ctrl, ctrl.Schema(), sets, imagePath, false); err != nil {
				return err
			}
			return app.submitDraft(cmd, ctrl, ctrl.Schema(), args[1])
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "Set a field, repeatable: --set name=value")
	cmd.Flags().StringVar(&imagePath, "image", "", "Attach a local image file")
	return cmd
}

func newSubRmCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <resource> <id> <child> <child-id>",
		Short: "Delete an entry from a nested collection",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.openSession(cmd, args[0], args[1], args[2])
			if err != nil {
				return err
			}
			defer session.Close()

			ctrl := session.Controller()
			childID := model.ResourceID(args[3])
			ctrl.RequestDelete(childID)

			if !yes && !confirm(cmd.OutOrStdout(), cmd.InOrStdin(), "delete "+args[2]+" "+args[3]+"?") {
				ctrl.CancelDelete()
				cmd.Println("aborted")
				return nil
			}

			if err := ctrl.ConfirmDelete(cmd.Context()); err != nil {
				return err
			}
			cmd.Printf("%s %s deleted\n", args[2], args[3])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
