package usecase

import (
	"encoding/json"
	"strconv"

	"github.com/tidwall/gjson"

	"fairshoppe/internal/domain/entity"
	"fairshoppe/internal/infrastructure/catalog"
	"fairshoppe/pkg/errors"
	"fairshoppe/pkg/logger"
)

// SupportedCatalog is the storefront's fixed product list. Prices is
// parallel to IDs.
type SupportedCatalog struct {
	IDs       []int
	Prices    []float64
	CandleIDs []int
}

var optionKeys = []string{"size", "color", "scent", "depth", "paper"}

// LoadCatalog keeps the supported blueprints in bundled order and normalises
// their variant options.
func LoadCatalog(blueprints []entity.Blueprint, supported SupportedCatalog) []entity.Product {
	position := make(map[int]int, len(supported.IDs))
	for i, id := range supported.IDs {
		if _, seen := position[id]; !seen {
			position[id] = i
		}
	}

	candles := make(map[int]bool, len(supported.CandleIDs))
	for _, id := range supported.CandleIDs {
		candles[id] = true
	}

	products := make([]entity.Product, 0, len(supported.IDs))
	for _, bp := range blueprints {
		idx, ok := position[bp.ID]
		if !ok {
			continue
		}

		price := 0.0
		if idx < len(supported.Prices) {
			price = supported.Prices[idx]
		}

		variants := make([]entity.Variant, 0, len(bp.Variants))
		for _, v := range bp.Variants {
			variants = append(variants, entity.Variant{
				ID:              v.ID,
				VariantID:       v.VariantID,
				Title:           v.Title,
				Price:           price,
				Options:         normalizeOptions(v.Options),
				Placeholders:    v.Placeholders,
				PrintProviderID: v.PrintProviderID,
			})
		}

		products = append(products, entity.Product{
			ID:            bp.ID,
			Title:         bp.Title,
			Description:   bp.Description,
			Brand:         bp.Brand,
			Price:         price,
			Category:      categorize(variants, candles[bp.ID]),
			Variants:      variants,
			Images:        bp.Images,
			PrintProvider: bp.PrintProvider,
		})
	}

	return products
}

func normalizeOptions(raw entity.RawOptions) entity.VariantOptions {
	values := make(map[string][]string, len(optionKeys))
	for _, key := range optionKeys {
		values[key] = normalizeOption(raw[key])
	}

	return entity.VariantOptions{
		Size:  values["size"],
		Color: values["color"],
		Scent: values["scent"],
		Depth: values["depth"],
		Paper: values["paper"],
	}
}

// normalizeOption turns a scalar or an array into a list of strings. Null,
// empty strings and empty arrays all count as absent.
func normalizeOption(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	result := gjson.ParseBytes(raw)
	var items []gjson.Result
	switch {
	case result.IsArray():
		items = result.Array()
	case result.Type == gjson.Null:
		return nil
	default:
		items = []gjson.Result{result}
	}

	var out []string
	for _, item := range items {
		if s := optionString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func optionString(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		if r.Raw != "" {
			return r.Raw
		}
		return strconv.FormatFloat(r.Num, 'f', -1, 64)
	case gjson.True, gjson.False:
		return r.String()
	default:
		return ""
	}
}

func categorize(variants []entity.Variant, isCandle bool) entity.ProductCategory {
	if isCandle {
		return entity.CategoryCandle
	}

	depth := false
	for _, v := range variants {
		if len(v.Options.Color) > 0 {
			return entity.CategoryApparel
		}
		if len(v.Options.Size) > 0 && len(v.Options.Depth) > 0 {
			depth = true
		}
	}
	if depth {
		return entity.CategoryDepth
	}
	return entity.CategoryGeneric
}

type CatalogUseCase struct {
	products []entity.Product
	loadErr  error
}

// NewCatalogUseCase parses raw once. A malformed catalog is served as empty
// and the cause stays available through LoadErr.
func NewCatalogUseCase(raw []byte, supported SupportedCatalog) *CatalogUseCase {
	blueprints, err := catalog.Parse(raw)
	if err != nil {
		logger.Warn("Catalog could not be loaded, serving an empty catalog: %v", err)
		return &CatalogUseCase{products: []entity.Product{}, loadErr: err}
	}

	products := LoadCatalog(blueprints, supported)
	logger.Info("Catalog loaded: %d of %d bundled blueprints are supported", len(products), len(blueprints))
	return &CatalogUseCase{products: products}
}

func (uc *CatalogUseCase) LoadErr() error {
	return uc.loadErr
}

func (uc *CatalogUseCase) List() []entity.Product {
	return uc.products
}

func (uc *CatalogUseCase) Get(id int) (*entity.Product, error) {
	for i := range uc.products {
		if uc.products[i].ID == id {
			return &uc.products[i], nil
		}
	}
	return nil, errors.NotFound("Product", nil)
}

func (uc *CatalogUseCase) Detail(id int) (*entity.ProductDetail, error) {
	product, err := uc.Get(id)
	if err != nil {
		return nil, err
	}

	return &entity.ProductDetail{
		Product:      product,
		StyleLabel:   StyleLabel(product),
		StyleOptions: StyleOptions(product),
		SizeOptions:  SizeOptions(product),
		Positions:    Positions(product),
	}, nil
}

func StyleLabel(product *entity.Product) string {
	switch product.Category {
	case entity.CategoryCandle:
		return "Scent"
	case entity.CategoryApparel:
		return "Color"
	case entity.CategoryDepth:
		return "Depth"
	default:
		return ""
	}
}

// StyleOptions lists the distinct style values in catalog order.
func StyleOptions(product *entity.Product) []entity.OptionChoice {
	var values [][]string
	for i := range product.Variants {
		values = append(values, product.Variants[i].StyleAttribute(product.Category))
	}
	return uniqueChoices(values)
}

func SizeOptions(product *entity.Product) []entity.OptionChoice {
	var values [][]string
	for _, v := range product.Variants {
		values = append(values, v.Options.Size)
	}
	return uniqueChoices(values)
}

func Positions(product *entity.Product) []string {
	seen := make(map[string]bool)
	positions := []string{}
	for _, v := range product.Variants {
		for _, p := range v.Placeholders {
			if !seen[p.Position] {
				seen[p.Position] = true
				positions = append(positions, p.Position)
			}
		}
	}
	return positions
}

func uniqueChoices(groups [][]string) []entity.OptionChoice {
	seen := make(map[string]bool)
	choices := []entity.OptionChoice{}
	for _, group := range groups {
		for _, value := range group {
			if seen[value] {
				continue
			}
			seen[value] = true
			choices = append(choices, entity.OptionChoice{ID: value, DisplayName: value})
		}
	}
	return choices
}
