// Package draftstore persists snapshots of open drafts locally so an
// interrupted editing session can be recovered. Snapshots are client-side
// only; they never stand in for the backend's committed state.
package draftstore

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/debemdeboas/site-admin/internal/model"
	"github.com/debemdeboas/site-admin/internal/util/compression"
)

// Snapshot is one autosaved working copy of a draft.
type Snapshot struct {
	ID       string `yaml:"id"`
	Resource string `yaml:"resource"`
	// TargetID is the committed resource being edited; empty for add drafts.
	TargetID string `yaml:"target_id,omitempty"`
	// ParentID scopes snapshots of nested-collection drafts.
	ParentID string `yaml:"parent_id,omitempty"`

	Fields   map[string]string `yaml:"fields"`
	RichText string            `yaml:"rich_text,omitempty"`

	SavedAt time.Time `yaml:"saved_at"`
}

type Store interface {
	Save(snap *Snapshot) error
	Get(id string) (*Snapshot, error)
	// List returns snapshots for one resource type, newest first.
	List(resource string) ([]Snapshot, error)
	Delete(id string) error
	Close() error
}

// NewSnapshot captures a draft for a given resource type. A fresh uuid keys
// the snapshot; the same id should be reused for subsequent saves of the same
// open form so recovery sees one entry, not a trail.
func NewSnapshot(resource string, d *model.Draft) *Snapshot {
	snap := &Snapshot{
		ID:       uuid.New().String(),
		Resource: resource,
		TargetID: string(d.ID),
		Fields:   make(map[string]string, len(d.Fields)),
		RichText: d.RichText,
		SavedAt:  time.Now().UTC(),
	}
	for k, v := range d.Fields {
		snap.Fields[k] = v
	}
	return snap
}

// Restore rebuilds a draft from a snapshot.
func (s *Snapshot) Restore() *model.Draft {
	d := model.NewDraft()
	d.ID = model.ResourceID(s.TargetID)
	d.RichText = s.RichText
	for k, v := range s.Fields {
		d.Fields[k] = v
	}
	return d
}

var codec compression.Compressor = compression.ZstdCompressor{}

func encodeSnapshot(snap *Snapshot) ([]byte, error) {
	raw, err := yaml.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	packed, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}
	return packed, nil
}

func decodeSnapshot(packed []byte) (*Snapshot, error) {
	raw, err := codec.Decompress(packed)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}
