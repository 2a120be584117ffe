package attachment

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/debemdeboas/site-admin/internal/schema"
)

// fakeAllocator tracks allocations and revocations so tests can assert the
// release-exactly-once discipline.
type fakeAllocator struct {
	next    int
	revoked map[string]int
	active  map[string]bool
}

func newFakeAllocator() *fakeAllocator {
	return &fakeAllocator{
		revoked: make(map[string]int),
		active:  make(map[string]bool),
	}
}

func (a *fakeAllocator) Allocate(name string, data []byte) (string, error) {
	a.next++
	handle := fmt.Sprintf("handle-%d", a.next)
	a.active[handle] = true
	return handle, nil
}

func (a *fakeAllocator) Revoke(handle string) {
	a.revoked[handle]++
	delete(a.active, handle)
}

func (a *fakeAllocator) leaked() []string {
	var out []string
	for h := range a.active {
		out = append(out, h)
	}
	return out
}

func (a *fakeAllocator) doubleRevoked() []string {
	var out []string
	for h, n := range a.revoked {
		if n > 1 {
			out = append(out, h)
		}
	}
	return out
}

func pngFile() File {
	return File{Name: "a.png", Data: []byte("\x89PNG\r\n\x1a\nrest-of-image")}
}

func policy() schema.AttachmentPolicy {
	return schema.AttachmentPolicy{Allowed: true, MaxBytes: 2 * schema.MB}
}

func TestSlot_ResetStates(t *testing.T) {
	t.Run("Reset with ref is committed", func(t *testing.T) {
		s := NewSlot(policy(), nil)
		s.Reset("/img/a.png")
		if s.State() != Committed {
			t.Errorf("got state %v, want committed", s.State())
		}
		if s.Ref() != "/img/a.png" {
			t.Errorf("ref not preserved verbatim: %q", s.Ref())
		}
	})

	t.Run("Reset without ref is absent", func(t *testing.T) {
		s := NewSlot(policy(), nil)
		s.Reset("")
		if s.State() != Absent {
			t.Errorf("got state %v, want absent", s.State())
		}
	})
}

func TestSlot_Encode(t *testing.T) {
	t.Run("Untouched committed omits the field", func(t *testing.T) {
		s := NewSlot(policy(), nil)
		s.Reset("/img/a.png")
		if enc := s.Encode(); enc.Kind != EncodeOmit {
			t.Errorf("got %v, want omit", enc.Kind)
		}
	})

	t.Run("Absent omits the field", func(t *testing.T) {
		s := NewSlot(policy(), nil)
		s.Reset("")
		if enc := s.Encode(); enc.Kind != EncodeOmit {
			t.Errorf("got %v, want omit", enc.Kind)
		}
	})

	t.Run("Removed committed encodes delete sentinel", func(t *testing.T) {
		s := NewSlot(policy(), nil)
		s.Reset("/img/a.png")
		s.Remove()
		enc := s.Encode()
		if enc.Kind != EncodeDelete {
			t.Fatalf("got %v, want delete", enc.Kind)
		}
		if enc.Sentinel != "" {
			t.Errorf("sentinel: got %q, want empty string", enc.Sentinel)
		}
	})

	t.Run("Selected file encodes binary", func(t *testing.T) {
		s := NewSlot(policy(), newFakeAllocator())
		s.Reset("")
		f := pngFile()
		if err := s.SelectFile(f); err != nil {
			t.Fatalf("SelectFile: %v", err)
		}
		enc := s.Encode()
		if enc.Kind != EncodeBinary {
			t.Fatalf("got %v, want binary", enc.Kind)
		}
		if enc.File == nil || enc.File.Name != f.Name || !bytes.Equal(enc.File.Data, f.Data) {
			t.Errorf("staged file does not match selection")
		}
	})
}

func TestSlot_SelectFileValidation(t *testing.T) {
	t.Run("Rejects oversized file", func(t *testing.T) {
		p := schema.AttachmentPolicy{Allowed: true, MaxBytes: 8}
		s := NewSlot(p, newFakeAllocator())
		s.Reset("/img/a.png")
		if err := s.SelectFile(pngFile()); err == nil {
			t.Fatal("expected size error")
		}
		if s.State() != Committed {
			t.Errorf("state changed on rejected select: %v", s.State())
		}
	})

	t.Run("Rejects non-image data", func(t *testing.T) {
		s := NewSlot(policy(), newFakeAllocator())
		s.Reset("")
		err := s.SelectFile(File{Name: "a.txt", Data: []byte("plain text, not an image")})
		if err == nil {
			t.Fatal("expected MIME error")
		}
		if s.State() != Absent {
			t.Errorf("state changed on rejected select: %v", s.State())
		}
	})

	t.Run("Rejects when attachments disallowed", func(t *testing.T) {
		s := NewSlot(schema.AttachmentPolicy{}, newFakeAllocator())
		s.Reset("")
		if err := s.SelectFile(pngFile()); err == nil {
			t.Fatal("expected policy error")
		}
	})
}

func TestSlot_RemoveTransitions(t *testing.T) {
	t.Run("Remove on absent is a no-op", func(t *testing.T) {
		s := NewSlot(policy(), nil)
		s.Reset("")
		s.Remove()
		if s.State() != Absent {
			t.Errorf("got %v, want absent", s.State())
		}
	})

	t.Run("Remove on pending replace returns to absent", func(t *testing.T) {
		alloc := newFakeAllocator()
		s := NewSlot(policy(), alloc)
		s.Reset("")
		if err := s.SelectFile(pngFile()); err != nil {
			t.Fatalf("SelectFile: %v", err)
		}
		s.Remove()
		if s.State() != Absent {
			t.Errorf("got %v, want absent", s.State())
		}
		if leaked := alloc.leaked(); len(leaked) != 0 {
			t.Errorf("leaked previews: %v", leaked)
		}
	})
}

func TestSlot_PreviewDiscipline(t *testing.T) {
	alloc := newFakeAllocator()
	s := NewSlot(policy(), alloc)
	s.Reset("")

	// Replace repeatedly, then reset, then discard. Every handle must be
	// revoked exactly once with none left active.
	for i := 0; i < 3; i++ {
		if err := s.SelectFile(pngFile()); err != nil {
			t.Fatalf("SelectFile %d: %v", i, err)
		}
	}
	s.Reset("/img/b.png")
	if err := s.SelectFile(pngFile()); err != nil {
		t.Fatalf("SelectFile after reset: %v", err)
	}
	s.Discard()

	if leaked := alloc.leaked(); len(leaked) != 0 {
		t.Errorf("leaked previews: %v", leaked)
	}
	if doubled := alloc.doubleRevoked(); len(doubled) != 0 {
		t.Errorf("double-revoked previews: %v", doubled)
	}
	if alloc.next != 4 {
		t.Errorf("expected 4 allocations, got %d", alloc.next)
	}
}
