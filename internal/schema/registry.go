package schema

const (
	MB = 1 << 20

	// Observed upload ceilings differ per resource type.
	defaultImageLimit = 2 * MB
	productImageLimit = 5 * MB
)

func floatPtr(v float64) *float64 { return &v }

// imageSlot is the common attachment policy; the empty-string sentinel is
// what the backend interprets as an explicit clear.
func imageSlot(maxBytes int64) AttachmentPolicy {
	return AttachmentPolicy{Allowed: true, MaxBytes: maxBytes, DeleteSentinel: ""}
}

var registry = []*Schema{
	{
		Name:       "about",
		Path:       "abouts",
		TogglePath: "status",
		Fields: []Field{
			{Name: "heading", Label: "Heading", Kind: KindText, Required: true},
			{Name: "description", Label: "Description", Kind: KindLongText, Required: true},
			{Name: "button_name", Label: "Button label", Kind: KindText},
			{Name: "button_url", Label: "Button URL", Kind: KindText},
		},
		CrossRules: []RequiredWith{
			{If: "button_name", Then: "button_url", Message: "Button URL is required when a button label is set"},
		},
		Searchable: []string{"heading", "description", "button_name"},
		Attachment: imageSlot(defaultImageLimit),
	},
	{
		Name:       "offering",
		Path:       "offerings",
		TogglePath: "status",
		Fields: []Field{
			{Name: "heading", Label: "Heading", Kind: KindText, Required: true},
			{Name: "description", Label: "Description", Kind: KindLongText, Required: true},
			{Name: "button_name", Label: "Button label", Kind: KindText},
			{Name: "button_url", Label: "Button URL", Kind: KindText},
		},
		CrossRules: []RequiredWith{
			{If: "button_name", Then: "button_url", Message: "Button URL is required when a button label is set"},
		},
		Searchable: []string{"heading", "description", "button_name"},
		Attachment: imageSlot(defaultImageLimit),
	},
	{
		Name:       "service",
		Path:       "services",
		TogglePath: "status",
		Fields: []Field{
			{Name: "heading", Label: "Heading", Kind: KindText, Required: true},
			{Name: "description", Label: "Description", Kind: KindLongText, Required: true},
			{Name: "meta_title", Label: "Meta title", Kind: KindText},
			{Name: "meta_description", Label: "Meta description", Kind: KindLongText},
		},
		Searchable: []string{"heading", "description"},
		Attachment: imageSlot(defaultImageLimit),
	},
	{
		Name:       "job",
		Path:       "jobs",
		TogglePath: "status",
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: KindText, Required: true},
			{Name: "location", Label: "Location", Kind: KindText, Required: true},
			{Name: "openings", Label: "Open positions", Kind: KindInt},
			{Name: "body", Label: "Posting body", Kind: KindRich, Required: true},
			{Name: "meta_title", Label: "Meta title", Kind: KindText},
			{Name: "meta_description", Label: "Meta description", Kind: KindLongText},
		},
		Searchable: []string{"title", "location"},
	},
	{
		Name: "policy",
		Path: "policies",
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: KindText, Required: true},
			{Name: "body", Label: "Policy body", Kind: KindRich, Required: true},
		},
		Searchable: []string{"title"},
	},
	{
		Name:       "testimonial",
		Path:       "testimonials",
		TogglePath: "status",
		Fields: []Field{
			{Name: "author", Label: "Author", Kind: KindText, Required: true},
			{Name: "quote", Label: "Quote", Kind: KindLongText, Required: true},
			{Name: "rating", Label: "Rating", Kind: KindFloat, Min: floatPtr(0), Max: floatPtr(5)},
		},
		Searchable: []string{"author", "quote"},
		Attachment: imageSlot(defaultImageLimit),
	},
	{
		Name:       "product",
		Path:       "products",
		TogglePath: "status",
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: KindText, Required: true},
			{Name: "summary", Label: "Summary", Kind: KindLongText, Required: true},
			{Name: "description", Label: "Description", Kind: KindRich},
			{Name: "meta_title", Label: "Meta title", Kind: KindText},
			{Name: "meta_description", Label: "Meta description", Kind: KindLongText},
		},
		Searchable: []string{"title", "summary"},
		Attachment: imageSlot(productImageLimit),
		Children: []*Schema{
			{
				Name: "image",
				Path: "images",
				Fields: []Field{
					{Name: "caption", Label: "Caption", Kind: KindText},
				},
				Searchable: []string{"caption"},
				Attachment: imageSlot(productImageLimit),
			},
			{
				Name:       "review",
				Path:       "reviews",
				TogglePath: "status",
				Fields: []Field{
					{Name: "reviewer", Label: "Reviewer", Kind: KindText, Required: true},
					{Name: "comment", Label: "Comment", Kind: KindLongText, Required: true},
					{Name: "rating", Label: "Rating", Kind: KindFloat, Required: true, Min: floatPtr(0), Max: floatPtr(5)},
				},
				Searchable: []string{"reviewer", "comment"},
			},
		},
	},
}

// Registry returns every top-level resource schema the admin manages.
func Registry() []*Schema {
	return registry
}

func Lookup(name string) (*Schema, bool) {
	for _, s := range registry {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}
