// Package attachment owns the lifecycle of one optional binary image slot on
// an open draft. The four states form a tagged union so that illegal
// combinations (a pending file and a pending delete at once) cannot be
// represented.
package attachment

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/debemdeboas/site-admin/internal/schema"
)

type State int

const (
	// Absent: no attachment exists and none is pending.
	Absent State = iota
	// Committed: an attachment persisted server-side, untouched by the user.
	Committed
	// PendingReplace: a new local binary chosen by the user, not yet submitted.
	PendingReplace
	// PendingDelete: the user removed a committed attachment; submit must
	// carry an explicit delete, not a mere absence.
	PendingDelete
)

func (s State) String() string {
	switch s {
	case Committed:
		return "committed"
	case PendingReplace:
		return "pending-replace"
	case PendingDelete:
		return "pending-delete"
	default:
		return "absent"
	}
}

// File is a locally selected binary.
type File struct {
	Name string
	Data []byte
}

// Allocator hands out revocable local preview handles for selected files.
// Every allocated handle must be revoked exactly once; the Slot enforces
// release on every state transition and on teardown.
type Allocator interface {
	Allocate(name string, data []byte) (string, error)
	Revoke(handle string)
}

// Slot tracks the attachment state of a single draft.
type Slot struct {
	policy schema.AttachmentPolicy
	alloc  Allocator

	state   State
	ref     string // committed ref, preserved verbatim
	file    *File
	preview string
}

func NewSlot(policy schema.AttachmentPolicy, alloc Allocator) *Slot {
	if alloc == nil {
		alloc = NopAllocator{}
	}
	return &Slot{policy: policy, alloc: alloc}
}

func (s *Slot) State() State    { return s.state }
func (s *Slot) Ref() string     { return s.ref }
func (s *Slot) Preview() string { return s.preview }

// File returns the pending replacement binary, if any.
func (s *Slot) File() *File { return s.file }

// Reset is called when a draft is (re)opened. A non-empty ref seeds the
// Committed state, otherwise the slot is Absent. Any outstanding preview
// handle is revoked first.
func (s *Slot) Reset(ref string) {
	s.revokePreview()
	s.file = nil
	if ref != "" {
		s.state = Committed
		s.ref = ref
		return
	}
	s.state = Absent
	s.ref = ""
}

// SelectFile validates and stages a local replacement. On failure the slot is
// left unchanged and the returned error carries the message for the image
// field.
func (s *Slot) SelectFile(f File) error {
	if !s.policy.Allowed {
		return fmt.Errorf("this resource does not take an image")
	}
	if int64(len(f.Data)) > s.policy.MaxBytes {
		return fmt.Errorf("image must be %dMB or smaller", s.policy.MaxBytes/schema.MB)
	}
	if !isImage(f.Data) {
		return fmt.Errorf("file must be an image")
	}

	s.revokePreview()
	handle, err := s.alloc.Allocate(f.Name, f.Data)
	if err != nil {
		// The staged file is still usable without a preview.
		handle = ""
	}
	s.preview = handle
	s.file = &File{Name: f.Name, Data: f.Data}
	s.state = PendingReplace
	return nil
}

// Remove drops the attachment from the draft. A committed attachment becomes
// a pending delete; a staged replacement is discarded outright.
func (s *Slot) Remove() {
	switch s.state {
	case Committed:
		s.state = PendingDelete
	case PendingReplace:
		s.revokePreview()
		s.file = nil
		s.state = Absent
	}
}

// Discard releases the slot's scoped resources on draft teardown.
func (s *Slot) Discard() {
	s.revokePreview()
	s.file = nil
	s.state = Absent
	s.ref = ""
}

func (s *Slot) revokePreview() {
	if s.preview != "" {
		s.alloc.Revoke(s.preview)
		s.preview = ""
	}
}

func isImage(data []byte) bool {
	return strings.HasPrefix(http.DetectContentType(data), "image/")
}

// EncodingKind is the submission instruction derived from the slot state.
type EncodingKind int

const (
	// EncodeOmit: leave the image field out of the envelope entirely,
	// meaning "no change" on update and "none" on create.
	EncodeOmit EncodingKind = iota
	// EncodeBinary: transmit the staged file.
	EncodeBinary
	// EncodeDelete: transmit the schema's delete sentinel.
	EncodeDelete
)

type Encoding struct {
	Kind     EncodingKind
	File     *File
	Sentinel string
}

func (s *Slot) Encode() Encoding {
	switch s.state {
	case PendingReplace:
		return Encoding{Kind: EncodeBinary, File: s.file}
	case PendingDelete:
		return Encoding{Kind: EncodeDelete, Sentinel: s.policy.DeleteSentinel}
	default:
		return Encoding{Kind: EncodeOmit}
	}
}

// NopAllocator is used where no preview surface exists.
type NopAllocator struct{}

func (NopAllocator) Allocate(string, []byte) (string, error) { return "", nil }
func (NopAllocator) Revoke(string)                           {}
