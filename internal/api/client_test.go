package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/debemdeboas/site-admin/internal/attachment"
	"github.com/debemdeboas/site-admin/internal/model"
	"github.com/debemdeboas/site-admin/internal/schema"
)

func testSchema() *schema.Schema {
	return &schema.Schema{
		Name:       "offering",
		Path:       "offerings",
		TogglePath: "status",
		Fields: []schema.Field{
			{Name: "heading", Label: "Heading", Kind: schema.KindText, Required: true},
			{Name: "description", Label: "Description", Kind: schema.KindLongText, Required: true},
		},
		Attachment: schema.AttachmentPolicy{Allowed: true, MaxBytes: 2 * schema.MB},
	}
}

func testDraft() *model.Draft {
	d := model.NewDraft()
	d.SetField("heading", "X")
	d.SetField("description", "Y")
	return d
}

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, "test-token", 5*time.Second), srv
}

func TestClient_List(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/offerings" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("missing bearer token, got %q", got)
		}
		fmt.Fprint(w, `{"status":true,"data":[
			{"id":1,"heading":"A","description":"a","is_active":true,"image":"/img/a.png","created_at":"2026-01-02T10:00:00Z"},
			{"id":"2","heading":"B","description":"b","is_active":0}
		]}`)
	})
	defer srv.Close()

	list, err := c.List(context.Background(), "offerings", testSchema())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d rows, want 2", len(list))
	}
	if list[0].ID != "1" || list[0].Field("heading") != "A" || !list[0].IsActive {
		t.Errorf("row 0 decoded wrong: %+v", list[0])
	}
	if list[0].Image != "/img/a.png" {
		t.Errorf("image ref not preserved: %q", list[0].Image)
	}
	if list[0].CreatedAt.IsZero() {
		t.Error("created_at not decoded")
	}
	if list[1].ID != "2" || list[1].IsActive {
		t.Errorf("row 1 decoded wrong: %+v", list[1])
	}
}

func TestClient_CreatePlainJSON(t *testing.T) {
	var gotBody string
	var gotCType string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: got %s, want POST", r.Method)
		}
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		gotCType = r.Header.Get("Content-Type")
		fmt.Fprint(w, `{"status":true,"data":{"id":9,"heading":"X","description":"Y"}}`)
	})
	defer srv.Close()

	res, err := c.Create(context.Background(), "offerings", testSchema(), testDraft(), attachment.Encoding{Kind: attachment.EncodeOmit})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res == nil || res.ID != "9" {
		t.Errorf("created resource: %+v", res)
	}
	if gotCType != "application/json" {
		t.Errorf("content type: got %q", gotCType)
	}
	if strings.Contains(gotBody, "image") {
		t.Errorf("untouched attachment must omit the image field, body: %s", gotBody)
	}
}

func TestClient_CreateWithBinary(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(4 * schema.MB); err != nil {
			t.Fatalf("expected multipart body: %v", err)
		}
		if got := r.FormValue("heading"); got != "X" {
			t.Errorf("heading: got %q", got)
		}
		f, hdr, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("image part: %v", err)
		}
		defer f.Close()
		if hdr.Filename != "a.png" {
			t.Errorf("filename: got %q", hdr.Filename)
		}
		fmt.Fprint(w, `{"status":true,"data":{"id":9}}`)
	})
	defer srv.Close()

	enc := attachment.Encoding{
		Kind: attachment.EncodeBinary,
		File: &attachment.File{Name: "a.png", Data: []byte("\x89PNG\r\n\x1a\n")},
	}
	if _, err := c.Create(context.Background(), "offerings", testSchema(), testDraft(), enc); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestClient_UpdateMethodOverride(t *testing.T) {
	t.Run("Multipart update posts with override", func(t *testing.T) {
		c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method: got %s, want POST", r.Method)
			}
			if r.URL.Path != "/offerings/7" {
				t.Errorf("path: got %s", r.URL.Path)
			}
			if err := r.ParseMultipartForm(4 * schema.MB); err != nil {
				t.Fatalf("expected multipart body: %v", err)
			}
			if got := r.FormValue("_method"); got != http.MethodPut {
				t.Errorf("override marker: got %q, want PUT", got)
			}
			// Removing a committed image travels as the explicit sentinel.
			if vals, ok := r.MultipartForm.Value["image"]; !ok || vals[0] != "" {
				t.Errorf("delete sentinel missing, values: %v", r.MultipartForm.Value)
			}
			fmt.Fprint(w, `{"status":true,"data":{"id":7}}`)
		})
		defer srv.Close()

		enc := attachment.Encoding{Kind: attachment.EncodeDelete, Sentinel: ""}
		if _, err := c.Update(context.Background(), "offerings", "7", testSchema(), testDraft(), enc); err != nil {
			t.Fatalf("Update: %v", err)
		}
	})

	t.Run("Plain update keeps the PUT verb", func(t *testing.T) {
		c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("method: got %s, want PUT", r.Method)
			}
			fmt.Fprint(w, `{"status":true,"data":{"id":7}}`)
		})
		defer srv.Close()

		if _, err := c.Update(context.Background(), "offerings", "7", testSchema(), testDraft(), attachment.Encoding{}); err != nil {
			t.Fatalf("Update: %v", err)
		}
	})
}

func TestClient_ValidationRejection(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"status":false,"errors":{"title":["Title already exists","Too long"]}}`)
	})
	defer srv.Close()

	_, err := c.Create(context.Background(), "offerings", testSchema(), testDraft(), attachment.Encoding{})
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := ve.Fields["title"]; got != "Title already exists" {
		t.Errorf("first message wins: got %q", got)
	}
}

func TestClient_TransportFailures(t *testing.T) {
	t.Run("5xx without errors object", func(t *testing.T) {
		c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"status":false,"message":"boom"}`)
		})
		defer srv.Close()

		_, err := c.List(context.Background(), "offerings", testSchema())
		if !errors.Is(err, ErrTransport) {
			t.Errorf("expected ErrTransport, got %v", err)
		}
	})

	t.Run("Malformed body", func(t *testing.T) {
		c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html>gateway error</html>`)
		})
		defer srv.Close()

		_, err := c.List(context.Background(), "offerings", testSchema())
		if !errors.Is(err, ErrTransport) {
			t.Errorf("expected ErrTransport, got %v", err)
		}
	})

	t.Run("Stale target", func(t *testing.T) {
		c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"status":false}`)
		})
		defer srv.Close()

		err := c.Delete(context.Background(), "offerings", "gone")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestClient_ToggleActive(t *testing.T) {
	t.Run("Dedicated status endpoint", func(t *testing.T) {
		c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPatch || r.URL.Path != "/offerings/3/status" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			fmt.Fprint(w, `{"status":true}`)
		})
		defer srv.Close()

		if err := c.ToggleActive(context.Background(), "offerings", testSchema(), "3", false); err != nil {
			t.Fatalf("ToggleActive: %v", err)
		}
	})

	t.Run("Fallback partial update", func(t *testing.T) {
		s := testSchema()
		s.TogglePath = ""
		c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut || r.URL.Path != "/offerings/3" {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			fmt.Fprint(w, `{"status":true}`)
		})
		defer srv.Close()

		if err := c.ToggleActive(context.Background(), "offerings", s, "3", true); err != nil {
			t.Fatalf("ToggleActive: %v", err)
		}
	})
}
