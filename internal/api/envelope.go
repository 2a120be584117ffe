package api

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/debemdeboas/site-admin/internal/model"
	"github.com/debemdeboas/site-admin/internal/schema"
)

// envelope is the backend's response convention:
// { status: bool, data: T | T[], errors?: { field: string | string[] } }.
type envelope struct {
	Status  bool            `json:"status"`
	Data    json.RawMessage `json:"data"`
	Errors  map[string]any  `json:"errors"`
	Message string          `json:"message"`
}

func decodeList(s *schema.Schema, data json.RawMessage) ([]model.Resource, error) {
	var rows []map[string]any
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode list payload: %w", err)
	}
	out := make([]model.Resource, 0, len(rows))
	for _, row := range rows {
		out = append(out, decodeResource(s, row))
	}
	return out, nil
}

func decodeOne(s *schema.Schema, data json.RawMessage) (*model.Resource, error) {
	if len(data) == 0 || string(data) == "null" {
		// Some endpoints return no body on success; the caller refetches
		// the list anyway.
		return nil, nil
	}
	var row map[string]any
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, fmt.Errorf("decode item payload: %w", err)
	}
	r := decodeResource(s, row)
	return &r, nil
}

// decodeResource maps a wire row onto the generic resource shape. Only
// schema-declared fields are lifted into the field map; backend-computed
// extras (slugs, counts) stay server-side and come back on the next fetch.
func decodeResource(s *schema.Schema, row map[string]any) model.Resource {
	r := model.Resource{
		ID:       model.ResourceID(stringValue(row["id"])),
		Fields:   make(map[string]string, len(s.Fields)),
		Image:    stringValue(row["image"]),
		IsActive: boolValue(row["is_active"]),
		ParentID: model.ResourceID(stringValue(row["parent_id"])),
	}
	for _, f := range s.Fields {
		if f.Kind == schema.KindRich {
			r.RichText = stringValue(row[f.Name])
			continue
		}
		r.Fields[f.Name] = stringValue(row[f.Name])
	}
	r.CreatedAt = timeValue(row["created_at"])
	r.UpdatedAt = timeValue(row["updated_at"])
	return r
}

// stringValue tolerates the backend's loose typing: ids arrive as numbers or
// strings depending on the resource type.
func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

func boolValue(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t == "1" || t == "true"
	default:
		return false
	}
}

func timeValue(v any) time.Time {
	s, ok := v.(string)
	if !ok || s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}
