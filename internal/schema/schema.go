// Package schema describes the editable resource types of the site: their
// fields, validation rules, searchable set and attachment policy. One admin
// controller is instantiated per schema instead of hand-writing a screen per
// resource type.
package schema

type FieldKind int

const (
	KindText FieldKind = iota
	KindLongText
	KindInt   // must parse as a non-negative integer
	KindFloat // must parse as a float, optionally range-checked
	KindRich  // opaque HTML produced by the external text editor
)

type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool

	// Inclusive numeric range for KindFloat fields.
	Min, Max *float64
}

// RequiredWith declares a conditional requirement: when the If field is
// non-empty after trimming, the Then field must be non-empty too.
type RequiredWith struct {
	If      string
	Then    string
	Message string
}

// AttachmentPolicy governs the optional binary image slot of a resource type.
type AttachmentPolicy struct {
	Allowed  bool
	MaxBytes int64

	// Value transmitted for the image field when the user removed a
	// committed attachment. The backend interprets it as "clear".
	DeleteSentinel string
}

type Schema struct {
	// Singular resource name, used for logging and CLI commands.
	Name string

	// API collection path relative to the base URL, e.g. "offerings".
	// For nested schemas this is relative to the parent item path,
	// e.g. "images" under "products/{id}".
	Path string

	// Optional dedicated status-toggle path segment appended to the item
	// path. Empty means the protocol falls back to a partial update.
	TogglePath string

	Fields     []Field
	CrossRules []RequiredWith

	// Scalar fields matched against the search text, lowercased substring.
	Searchable []string

	Attachment AttachmentPolicy

	// Dependent collections managed under a single parent item.
	Children []*Schema
}

func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RichTextField returns the schema's rich-text field, if it declares one.
func (s *Schema) RichTextField() (Field, bool) {
	for _, f := range s.Fields {
		if f.Kind == KindRich {
			return f, true
		}
	}
	return Field{}, false
}

func (s *Schema) Child(name string) (*Schema, bool) {
	for _, c := range s.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
