// Package controller implements the state machine behind every admin screen:
// committed list, draft lifecycle, guarded deletion and the submit protocol.
// One Controller is instantiated per resource schema instead of hand-writing
// the same logic per page.
package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/site-admin/internal/attachment"
	"github.com/debemdeboas/site-admin/internal/listview"
	"github.com/debemdeboas/site-admin/internal/model"
	"github.com/debemdeboas/site-admin/internal/schema"
	"github.com/debemdeboas/site-admin/internal/validate"
)

// API is the mutation surface the controller drives. *api.Client satisfies it.
type API interface {
	List(ctx context.Context, collection string, s *schema.Schema) ([]model.Resource, error)
	Create(ctx context.Context, collection string, s *schema.Schema, d *model.Draft, enc attachment.Encoding) (*model.Resource, error)
	Update(ctx context.Context, collection string, id model.ResourceID, s *schema.Schema, d *model.Draft, enc attachment.Encoding) (*model.Resource, error)
	Delete(ctx context.Context, collection string, id model.ResourceID) error
	ToggleActive(ctx context.Context, collection string, s *schema.Schema, id model.ResourceID, next bool) error
}

type Mode int

const (
	ModeClosed Mode = iota
	ModeAdd
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeEdit:
		return "edit"
	default:
		return "closed"
	}
}

// ErrBlocked is returned by Submit when validation stopped the submission.
// The field detail lives in Draft().Errors.
var ErrBlocked = errors.New("submission blocked by validation errors")

// ErrBusy is returned when an operation arrives while the controller's own
// mutation is still outstanding.
var ErrBusy = errors.New("a mutation is already in flight")

type Controller struct {
	schema     *schema.Schema
	collection string
	api        API
	previews   attachment.Allocator
	log        zerolog.Logger

	mu           sync.Mutex
	committed    []model.Resource
	mode         Mode
	editTarget   model.ResourceID
	draft        *model.Draft
	slot         *attachment.Slot
	deleteTarget model.ResourceID
	submitting   bool
	fetchGen     uint64
}

// New builds a controller for one resource collection. The collection path is
// usually schema.Path; nested sessions pass a parent-scoped path instead.
func New(s *schema.Schema, collection string, apiClient API, previews attachment.Allocator, log zerolog.Logger) *Controller {
	return &Controller{
		schema:     s,
		collection: collection,
		api:        apiClient,
		previews:   previews,
		log:        log.With().Str("resource", s.Name).Logger(),
	}
}

func (c *Controller) Schema() *schema.Schema { return c.schema }

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Draft returns the active draft, present iff the form is open.
func (c *Controller) Draft() *model.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Attachment returns the active draft's attachment slot.
func (c *Controller) Attachment() *attachment.Slot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slot
}

// Committed returns the last server-confirmed list.
func (c *Controller) Committed() []model.Resource {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.committed
}

// View projects the committed list through search text and status facet.
func (c *Controller) View(search string, facet listview.Facet) []model.Resource {
	return listview.Project(c.Committed(), search, facet, c.schema.Searchable)
}

func (c *Controller) Counters() listview.Counters {
	return listview.Count(c.Committed())
}

// Refresh replaces the committed list wholesale. Responses that lose the race
// against a newer fetch are discarded; a failed fetch keeps the last-known
// list intact and reports a retryable error.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.fetchGen++
	gen := c.fetchGen
	c.mu.Unlock()

	list, err := c.api.List(ctx, c.collection, c.schema)
	if err != nil {
		c.log.Warn().Err(err).Msg("List fetch failed, keeping last-known list")
		return fmt.Errorf("refresh %s: %w", c.schema.Name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.fetchGen {
		c.log.Debug().Uint64("generation", gen).Msg("Discarding stale list response")
		return nil
	}
	c.committed = list
	return nil
}

// OpenAdd starts an empty draft. Any pending delete confirmation is cleared.
func (c *Controller) OpenAdd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return
	}
	c.deleteTarget = ""
	c.discardDraftLocked()
	c.mode = ModeAdd
	c.draft = model.NewDraft()
	c.slot = attachment.NewSlot(c.schema.Attachment, c.previews)
	c.slot.Reset("")
}

// OpenEdit copies the matching committed entry into a draft. The attachment
// slot starts Committed when the entry carries an image ref.
func (c *Controller) OpenEdit(id model.ResourceID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return ErrBusy
	}
	c.deleteTarget = ""

	var target *model.Resource
	for i := range c.committed {
		if c.committed[i].ID == id {
			target = &c.committed[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no %s with id %s in the current list", c.schema.Name, id)
	}

	c.discardDraftLocked()
	c.mode = ModeEdit
	c.editTarget = id
	c.draft = model.NewDraftFromResource(target)
	c.slot = attachment.NewSlot(c.schema.Attachment, c.previews)
	c.slot.Reset(target.Image)
	return nil
}

// Cancel discards the draft and closes the form, releasing any preview
// handle. Unreachable while a submission is outstanding.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return
	}
	c.deleteTarget = ""
	c.discardDraftLocked()
}

func (c *Controller) discardDraftLocked() {
	if c.slot != nil {
		c.slot.Discard()
	}
	c.slot = nil
	c.draft = nil
	c.mode = ModeClosed
	c.editTarget = ""
}

func (c *Controller) SetField(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil {
		return
	}
	c.deleteTarget = ""
	f, ok := c.schema.Field(name)
	if ok && f.Kind == schema.KindRich {
		c.draft.SetRichText(name, value)
		return
	}
	c.draft.SetField(name, value)
}

// SelectImage stages a local file as the draft's attachment; a rejected file
// lands as a validation error on the image field and changes nothing else.
func (c *Controller) SelectImage(f attachment.File) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft == nil || c.slot == nil {
		return
	}
	c.deleteTarget = ""
	if err := c.slot.SelectFile(f); err != nil {
		c.draft.Errors["image"] = err.Error()
		return
	}
	delete(c.draft.Errors, "image")
}

func (c *Controller) RemoveImage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.slot == nil {
		return
	}
	c.deleteTarget = ""
	c.slot.Remove()
	if c.draft != nil {
		delete(c.draft.Errors, "image")
	}
}

// Submit validates the draft and runs the create-or-update protocol. On
// success the form closes and the list is refetched. On a validation block
// (local or backend) the draft stays open with its error map populated and
// ErrBlocked is returned. Transport failures preserve the draft untouched.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.draft == nil || c.mode == ModeClosed {
		c.mu.Unlock()
		return errors.New("no open draft to submit")
	}
	c.deleteTarget = ""

	if errs := validate.Draft(c.draft, c.schema); !errs.Empty() {
		c.draft.Errors = errs
		c.mu.Unlock()
		return ErrBlocked
	}

	c.submitting = true
	mode := c.mode
	target := c.editTarget
	draft := c.draft
	enc := c.slot.Encode()
	c.mu.Unlock()

	var err error
	if mode == ModeAdd {
		_, err = c.api.Create(ctx, c.collection, c.schema, draft, enc)
	} else {
		_, err = c.api.Update(ctx, c.collection, target, c.schema, draft, enc)
	}

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		if fields, ok := backendFields(err); ok {
			// The backend is authoritative once a submission was
			// attempted: its map replaces the local one.
			c.draft.Errors = fields
			c.mu.Unlock()
			c.log.Info().Int("fields", len(fields)).Msg("Submission rejected by backend validation")
			return ErrBlocked
		}
		c.mu.Unlock()
		c.log.Error().Err(err).Str("mode", mode.String()).Msg("Submission failed")
		return err
	}

	c.discardDraftLocked()
	c.mu.Unlock()

	c.log.Info().Str("mode", mode.String()).Msg("Submission succeeded")
	return c.Refresh(ctx)
}

// RequestDelete arms the two-step delete. A single action never deletes.
func (c *Controller) RequestDelete(id model.ResourceID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return
	}
	c.deleteTarget = id
}

func (c *Controller) PendingDelete() model.ResourceID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleteTarget
}

func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteTarget = ""
}

// ConfirmDelete issues the armed delete and refetches on success.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrBusy
	}
	id := c.deleteTarget
	if id == "" {
		c.mu.Unlock()
		return errors.New("no delete pending confirmation")
	}
	c.deleteTarget = ""
	c.submitting = true
	c.mu.Unlock()

	err := c.api.Delete(ctx, c.collection, id)

	c.mu.Lock()
	c.submitting = false
	c.mu.Unlock()

	if err != nil {
		c.log.Error().Err(err).Str("id", string(id)).Msg("Delete failed")
		return err
	}
	c.log.Info().Str("id", string(id)).Msg("Deleted")
	return c.Refresh(ctx)
}

// Toggle flips a row's active flag straight from the list view, independent
// of any open form. The displayed value only changes after the backend
// confirms and the list is refetched; there is no optimistic flip.
func (c *Controller) Toggle(ctx context.Context, id model.ResourceID) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrBusy
	}
	c.deleteTarget = ""

	var current *model.Resource
	for i := range c.committed {
		if c.committed[i].ID == id {
			current = &c.committed[i]
			break
		}
	}
	if current == nil {
		c.mu.Unlock()
		return fmt.Errorf("no %s with id %s in the current list", c.schema.Name, id)
	}
	next := !current.IsActive
	c.submitting = true
	c.mu.Unlock()

	err := c.api.ToggleActive(ctx, c.collection, c.schema, id, next)

	c.mu.Lock()
	c.submitting = false
	c.mu.Unlock()

	if err != nil {
		c.log.Error().Err(err).Str("id", string(id)).Msg("Toggle failed")
		return err
	}
	return c.Refresh(ctx)
}

// backendFields extracts a backend validation rejection's field map.
func backendFields(err error) (model.ValidationErrorMap, bool) {
	var fe interface{ FieldErrors() model.ValidationErrorMap }
	if errors.As(err, &fe) {
		return fe.FieldErrors(), true
	}
	return nil, false
}
