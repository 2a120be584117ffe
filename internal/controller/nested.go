package controller

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/site-admin/internal/attachment"
	"github.com/debemdeboas/site-admin/internal/model"
	"github.com/debemdeboas/site-admin/internal/schema"
)

// NestedSession manages a dependent collection under one parent resource.
// Nothing is fetched until Open is invoked from a parent row, which keeps a
// paginated parent list from fanning out into per-row child fetches. Closing
// the session discards the nested controller entirely, open draft included.
type NestedSession struct {
	parent   *schema.Schema
	child    *schema.Schema
	api      API
	previews attachment.Allocator
	log      zerolog.Logger

	parentID model.ResourceID
	ctrl     *Controller
}

func NewNestedSession(parent, child *schema.Schema, apiClient API, previews attachment.Allocator, log zerolog.Logger) *NestedSession {
	return &NestedSession{
		parent:   parent,
		child:    child,
		api:      apiClient,
		previews: previews,
		log:      log,
	}
}

// Open starts a session scoped to one parent id and performs the initial
// fetch. Opening over a live session for a different parent discards the old
// state first.
func (n *NestedSession) Open(ctx context.Context, parentID model.ResourceID) error {
	if parentID == "" {
		return fmt.Errorf("nested %s session needs a parent id", n.child.Name)
	}
	if n.ctrl != nil {
		n.Close()
	}

	collection := fmt.Sprintf("%s/%s/%s", n.parent.Path, parentID, n.child.Path)
	n.parentID = parentID
	n.ctrl = New(n.child, collection, n.api, n.previews, n.log)

	if err := n.ctrl.Refresh(ctx); err != nil {
		// The session stays open with an empty last-known list; the
		// caller may retry the fetch.
		return err
	}
	return nil
}

func (n *NestedSession) IsOpen() bool { return n.ctrl != nil }

func (n *NestedSession) ParentID() model.ResourceID { return n.parentID }

// Controller exposes the nested resource controller; nil while closed.
func (n *NestedSession) Controller() *Controller { return n.ctrl }

// Close tears the session down, revoking any preview held by an open nested
// draft. In-flight requests are not chased; their responses land in a
// controller nothing references anymore.
func (n *NestedSession) Close() {
	if n.ctrl == nil {
		return
	}
	n.ctrl.Cancel()
	n.ctrl = nil
	n.parentID = ""
}
