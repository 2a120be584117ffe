package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/debemdeboas/site-admin/internal/controller"
	"github.com/debemdeboas/site-admin/internal/draftstore"
	"github.com/debemdeboas/site-admin/internal/schema"
)

// fillDraft applies the shared form flags to an open draft.
func (app *App) fillDraft(ctrl *controller.Controller, s *schema.Schema, sets []string, imagePath string, openEditor bool) error {
	if err := applySets(ctrl, sets); err != nil {
		return err
	}
	if imagePath != "" {
		if err := stageImage(ctrl, imagePath); err != nil {
			return err
		}
	}
	if openEditor {
		rich, ok := s.RichTextField()
		if !ok {
			return errors.New("this resource has no rich text field")
		}
		html, err := editRichText(app.cfg.Editor.Command, ctrl.Draft().RichText)
		if err != nil {
			return err
		}
		ctrl.SetField(rich.Name, html)
	}
	return nil
}

// submitDraft runs the submission and reports the outcome. On any failure the
// draft is autosaved so the typed work survives the process exit.
func (app *App) submitDraft(cmd *cobra.Command, ctrl *controller.Controller, s *schema.Schema, parentID string) error {
	err := ctrl.Submit(cmd.Context())
	if err == nil {
		cmd.Printf("%s saved\n", s.Name)
		return nil
	}

	if errors.Is(err, controller.ErrBlocked) {
		cmd.Print(renderFieldErrors(s, ctrl.Draft().Errors))
	}
	if id := app.autosave(s.Name, parentID, ctrl); id != "" {
		cmd.Printf("draft autosaved as %s, resume with --from-draft\n", id)
	}
	return err
}

// autosave snapshots the open draft, returning the snapshot id.
func (app *App) autosave(resource, parentID string, ctrl *controller.Controller) string {
	if app.drafts == nil {
		return ""
	}
	d := ctrl.Draft()
	if d == nil {
		return ""
	}
	snap := draftstore.NewSnapshot(resource, d)
	snap.ParentID = parentID
	if err := app.drafts.Save(snap); err != nil {
		app.log.Warn().Err(err).Msg("Draft autosave failed")
		return ""
	}
	return snap.ID
}

// restoreDraft replays a snapshot's values into the open draft.
func (app *App) restoreDraft(ctrl *controller.Controller, s *schema.Schema, snapshotID string) error {
	if app.drafts == nil {
		return errors.New("draft autosave is disabled in the configuration")
	}
	snap, err := app.drafts.Get(snapshotID)
	if err != nil {
		return err
	}
	for name, value := range snap.Fields {
		ctrl.SetField(name, value)
	}
	if snap.RichText != "" {
		if rich, ok := s.RichTextField(); ok {
			ctrl.SetField(rich.Name, snap.RichText)
		}
	}
	return nil
}
