package entity

// Selection is the per-card choice a shopper makes before a mockup.
type Selection struct {
	Style    string `json:"style"`
	Size     string `json:"size"`
	Position string `json:"position,omitempty"`
}

type Resolution struct {
	ProductID   int      `json:"product_id"`
	Variant     *Variant `json:"variant"`
	Position    string   `json:"position"`
	VariantSize int      `json:"variant_size"` // height of the chosen placeholder
}

type OptionChoice struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type ProductDetail struct {
	Product      *Product       `json:"product"`
	StyleLabel   string         `json:"style_label"`
	StyleOptions []OptionChoice `json:"style_options"`
	SizeOptions  []OptionChoice `json:"size_options"`
	Positions    []string       `json:"positions"`
}
