// Package api speaks the backend's content API: the mutation protocol for
// resource collections, the response envelope, and the error taxonomy that
// separates validation rejections from transport failures.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/debemdeboas/site-admin/internal/attachment"
	"github.com/debemdeboas/site-admin/internal/model"
	"github.com/debemdeboas/site-admin/internal/schema"
	"github.com/debemdeboas/site-admin/internal/validate"
)

var apiLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	apiLogger = l
}

// fieldImage is the envelope key of the binary attachment; fieldMethod is the
// override marker used when a multipart update must travel as a POST.
const (
	fieldImage  = "image"
	fieldMethod = "_method"
	fieldActive = "is_active"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// List fetches the full committed collection. The caller replaces its list
// wholesale; no client-side merging happens anywhere.
func (c *Client) List(ctx context.Context, collection string, s *schema.Schema) ([]model.Resource, error) {
	env, err := c.do(ctx, http.MethodGet, c.collectionURL(collection), nil, "")
	if err != nil {
		return nil, err
	}
	return decodeList(s, env.Data)
}

// Create submits a new draft. A staged binary or a pending delete forces the
// multipart envelope; otherwise a plain JSON body is used.
func (c *Client) Create(ctx context.Context, collection string, s *schema.Schema, d *model.Draft, enc attachment.Encoding) (*model.Resource, error) {
	body, ctype, err := encodeBody(s, d, enc, "")
	if err != nil {
		return nil, err
	}
	env, err := c.do(ctx, http.MethodPost, c.collectionURL(collection), body, ctype)
	if err != nil {
		return nil, err
	}
	return decodeOne(s, env.Data)
}

// Update submits changes to an existing resource. When the envelope has to
// be multipart the semantically-correct verb cannot carry it, so the call is
// POSTed with an explicit method-override field instead; callers never see
// that substitution.
func (c *Client) Update(ctx context.Context, collection string, id model.ResourceID, s *schema.Schema, d *model.Draft, enc attachment.Encoding) (*model.Resource, error) {
	url := c.itemURL(collection, id)
	method := http.MethodPut
	override := ""
	if enc.Kind != attachment.EncodeOmit {
		method = http.MethodPost
		override = http.MethodPut
	}

	body, ctype, err := encodeBody(s, d, enc, override)
	if err != nil {
		return nil, err
	}
	env, err := c.do(ctx, method, url, body, ctype)
	if err != nil {
		return nil, err
	}
	return decodeOne(s, env.Data)
}

func (c *Client) Delete(ctx context.Context, collection string, id model.ResourceID) error {
	_, err := c.do(ctx, http.MethodDelete, c.itemURL(collection, id), nil, "")
	return err
}

// ToggleActive flips the status flag without touching any draft. Schemas
// with a dedicated toggle endpoint use it; the rest get a partial update.
func (c *Client) ToggleActive(ctx context.Context, collection string, s *schema.Schema, id model.ResourceID, next bool) error {
	url := c.itemURL(collection, id)
	method := http.MethodPut
	if s.TogglePath != "" {
		url += "/" + s.TogglePath
		method = http.MethodPatch
	}

	payload, err := json.Marshal(map[string]bool{fieldActive: next})
	if err != nil {
		return fmt.Errorf("marshal toggle payload: %w", err)
	}
	_, err = c.do(ctx, method, url, bytes.NewReader(payload), "application/json")
	return err
}

func (c *Client) collectionURL(collection string) string {
	return c.baseURL + "/" + collection
}

func (c *Client) itemURL(collection string, id model.ResourceID) string {
	return c.collectionURL(collection) + "/" + string(id)
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader, contentType string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrTransport, err)
	}

	apiLogger.Debug().
		Str("method", method).
		Str("url", url).
		Int("status", resp.StatusCode).
		Msg("API call")

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode == http.StatusNotFound {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
			}
			return nil, fmt.Errorf("%w: malformed response (%d)", ErrTransport, resp.StatusCode)
		}
	}

	// A false status or a non-2xx with field errors is a validation
	// rejection; everything else non-2xx is a transport failure.
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if (!env.Status || !ok) && len(env.Errors) > 0 {
		return nil, &ValidationError{Fields: validate.Reconcile(env.Errors)}
	}
	if !ok {
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
		}
		return nil, fmt.Errorf("%w: %s %s returned %d", ErrTransport, method, url, resp.StatusCode)
	}
	if !env.Status && len(raw) > 0 {
		return nil, fmt.Errorf("%w: backend reported failure: %s", ErrTransport, env.Message)
	}

	return &env, nil
}

// encodeBody builds the transport envelope for a draft. Binary and delete
// instructions require multipart; everything else rides as JSON.
func encodeBody(s *schema.Schema, d *model.Draft, enc attachment.Encoding, methodOverride string) (io.Reader, string, error) {
	if enc.Kind == attachment.EncodeOmit && methodOverride == "" {
		payload := make(map[string]string, len(s.Fields))
		for _, f := range s.Fields {
			if f.Kind == schema.KindRich {
				payload[f.Name] = d.RichText
				continue
			}
			payload[f.Name] = d.Field(f.Name)
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, "", fmt.Errorf("marshal draft: %w", err)
		}
		return bytes.NewReader(raw), "application/json", nil
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range s.Fields {
		value := d.Field(f.Name)
		if f.Kind == schema.KindRich {
			value = d.RichText
		}
		if err := w.WriteField(f.Name, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}

	switch enc.Kind {
	case attachment.EncodeBinary:
		part, err := w.CreateFormFile(fieldImage, enc.File.Name)
		if err != nil {
			return nil, "", fmt.Errorf("create image part: %w", err)
		}
		if _, err := part.Write(enc.File.Data); err != nil {
			return nil, "", fmt.Errorf("write image part: %w", err)
		}
	case attachment.EncodeDelete:
		if err := w.WriteField(fieldImage, enc.Sentinel); err != nil {
			return nil, "", fmt.Errorf("write delete sentinel: %w", err)
		}
	}

	if methodOverride != "" {
		if err := w.WriteField(fieldMethod, methodOverride); err != nil {
			return nil, "", fmt.Errorf("write method override: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
