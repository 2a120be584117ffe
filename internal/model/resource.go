// Package model defines core data structures and types for the admin client.
package model

import (
	"maps"
	"time"
)

type ResourceID string

// Resource is a single content item as last confirmed by the backend.
// Scalar fields are kept in a map keyed by their schema field name so that
// one type serves every resource screen.
type Resource struct {
	ID ResourceID

	Fields   map[string]string
	RichText string

	// Committed attachment ref, a relative path owned by the backend.
	// Preserved verbatim; display URL resolution happens elsewhere.
	Image string

	IsActive bool

	// Set only for resources living under a parent collection.
	ParentID ResourceID

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Resource) Field(name string) string {
	return r.Fields[name]
}

// Draft is the client-only working copy of a resource while a form is open.
// It never appears in a committed list; it is discarded on cancel and on
// submit success.
type Draft struct {
	ID ResourceID // empty until the backend has assigned one

	Fields   map[string]string
	RichText string

	Errors ValidationErrorMap
}

func NewDraft() *Draft {
	return &Draft{
		Fields: make(map[string]string),
		Errors: make(ValidationErrorMap),
	}
}

// NewDraftFromResource copies a committed resource into a fresh draft.
func NewDraftFromResource(r *Resource) *Draft {
	d := NewDraft()
	d.ID = r.ID
	d.RichText = r.RichText
	maps.Copy(d.Fields, r.Fields)
	return d
}

// SetField updates one scalar field and clears its pending validation error,
// matching the rule that an error disappears the instant the field is edited.
func (d *Draft) SetField(name, value string) {
	d.Fields[name] = value
	delete(d.Errors, name)
}

func (d *Draft) SetRichText(name, value string) {
	d.RichText = value
	delete(d.Errors, name)
}

func (d *Draft) Field(name string) string {
	return d.Fields[name]
}

// ValidationErrorMap maps a field name to a human-readable message, from
// either local validation or a reconciled backend rejection.
type ValidationErrorMap map[string]string

func (m ValidationErrorMap) Empty() bool { return len(m) == 0 }

func (m ValidationErrorMap) Has(field string) bool {
	_, ok := m[field]
	return ok
}
