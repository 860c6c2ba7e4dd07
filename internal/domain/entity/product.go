package entity

import (
	"encoding/json"
)

// RawOptions keeps the vendor's option values exactly as bundled: each value
// may be a string, an array of strings, or null.
type RawOptions map[string]json.RawMessage

type Placeholder struct {
	Position string `json:"position"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

type PrintProviderLocation struct {
	Address1 string `json:"address1,omitempty"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
	Region   string `json:"region,omitempty"`
	Zip      string `json:"zip,omitempty"`
}

type PrintProvider struct {
	ID       int                   `json:"id"`
	Title    string                `json:"title"`
	Location PrintProviderLocation `json:"location"`
}

// BlueprintVariant is a variant record as it appears in the bundled catalog.
type BlueprintVariant struct {
	ID              string        `json:"id"`
	VariantID       int           `json:"variantId"`
	Title           string        `json:"title"`
	Options         RawOptions    `json:"options"`
	Placeholders    []Placeholder `json:"placeholders"`
	PrintProviderID int           `json:"printProviderId"`
}

type Blueprint struct {
	ID            int                `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Brand         string             `json:"brand"`
	Variants      []BlueprintVariant `json:"variants"`
	Images        []string           `json:"images"`
	PrintProvider PrintProvider      `json:"print_provider"`
}

type ProductCategory string

const (
	CategoryApparel ProductCategory = "apparel" // size + color
	CategoryCandle  ProductCategory = "candle"  // size + scent
	CategoryDepth   ProductCategory = "depth"   // size + depth (canvas, frames)
	CategoryGeneric ProductCategory = "generic"
)

// VariantOptions is the normalised option set. A nil slice means the option
// was absent on the bundled record.
type VariantOptions struct {
	Size  []string `json:"size,omitempty"`
	Color []string `json:"color,omitempty"`
	Scent []string `json:"scent,omitempty"`
	Depth []string `json:"depth,omitempty"`
	Paper []string `json:"paper,omitempty"`
}

type Variant struct {
	ID              string         `json:"id"`
	VariantID       int            `json:"variantId"`
	Title           string         `json:"title"`
	Price           float64        `json:"price"`
	Options         VariantOptions `json:"options"`
	Placeholders    []Placeholder  `json:"placeholders"`
	PrintProviderID int            `json:"printProviderId"`
}

// Product is a supported blueprint ready for display and ordering.
type Product struct {
	ID            int             `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Brand         string          `json:"brand"`
	Price         float64         `json:"price"`
	Category      ProductCategory `json:"category"`
	Variants      []Variant       `json:"variants"`
	Images        []string        `json:"images"`
	PrintProvider PrintProvider   `json:"print_provider"`
}

// StyleAttribute returns the option the resolver matches the style token
// against. Candles use scent; everything else uses color, else depth when
// size is also defined.
func (v *Variant) StyleAttribute(category ProductCategory) []string {
	if category == CategoryCandle {
		return v.Options.Scent
	}
	if len(v.Options.Color) > 0 {
		return v.Options.Color
	}
	if len(v.Options.Size) > 0 && len(v.Options.Depth) > 0 {
		return v.Options.Depth
	}
	return nil
}

func (v *Variant) Placeholder(position string) (Placeholder, bool) {
	for _, p := range v.Placeholders {
		if p.Position == position {
			return p, true
		}
	}
	return Placeholder{}, false
}

func (p *Product) VariantByID(id string) (*Variant, bool) {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i], true
		}
	}
	return nil, false
}
