package draftstore

import (
	"fmt"
	"sort"
	"sync"
)

// MemoryStore keeps snapshots for the lifetime of the process. Used in tests
// and when no autosave path is configured.
type MemoryStore struct {
	snaps sync.Map
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(snap *Snapshot) error {
	// Round-trip through the codec so both backends store the same shape.
	packed, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	m.snaps.Store(snap.ID, packed)
	return nil
}

func (m *MemoryStore) Get(id string) (*Snapshot, error) {
	packed, ok := m.snaps.Load(id)
	if !ok {
		return nil, fmt.Errorf("snapshot not found: %s", id)
	}
	return decodeSnapshot(packed.([]byte))
}

func (m *MemoryStore) List(resource string) ([]Snapshot, error) {
	var out []Snapshot
	var iterErr error
	m.snaps.Range(func(_, v any) bool {
		snap, err := decodeSnapshot(v.([]byte))
		if err != nil {
			iterErr = err
			return false
		}
		if snap.Resource == resource {
			out = append(out, *snap)
		}
		return true
	})
	if iterErr != nil {
		return nil, iterErr
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out, nil
}

func (m *MemoryStore) Delete(id string) error {
	m.snaps.Delete(id)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
