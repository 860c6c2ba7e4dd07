package usecase

import (
	"fairshoppe/internal/domain/entity"
	"fairshoppe/pkg/errors"
)

const noVariantMatchMessage = "No product variant matches your selection. Please try a different combination."

type VariantResolver struct{}

func NewVariantResolver() *VariantResolver {
	return &VariantResolver{}
}

// Resolve picks the first variant in catalog order whose style attribute
// contains sel.Style and whose size contains sel.Size. It never returns a nil
// resolution without an error.
func (r *VariantResolver) Resolve(product *entity.Product, sel entity.Selection) (*entity.Resolution, error) {
	if product == nil {
		return nil, errors.PreconditionFailed("Please choose a product")
	}
	if sel.Style == "" || sel.Size == "" {
		return nil, errors.PreconditionFailed("Please choose a style and a size")
	}

	var match *entity.Variant
	for i := range product.Variants {
		v := &product.Variants[i]
		if contains(v.StyleAttribute(product.Category), sel.Style) && contains(v.Options.Size, sel.Size) {
			match = v
			break
		}
	}
	if match == nil {
		return nil, errors.PreconditionFailed(noVariantMatchMessage)
	}

	if len(match.Placeholders) == 0 {
		return nil, errors.PreconditionFailed("The selected variant has no printable area")
	}

	placeholder := match.Placeholders[0]
	if sel.Position != "" {
		p, ok := match.Placeholder(sel.Position)
		if !ok {
			return nil, errors.PreconditionFailed("The selected variant cannot be printed at position " + sel.Position)
		}
		placeholder = p
	}

	return &entity.Resolution{
		ProductID:   product.ID,
		Variant:     match,
		Position:    placeholder.Position,
		VariantSize: placeholder.Height,
	}, nil
}

func contains(values []string, token string) bool {
	for _, v := range values {
		if v == token {
			return true
		}
	}
	return false
}
