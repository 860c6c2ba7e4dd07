package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"fairshoppe/internal/domain/entity"
)

//go:embed blueprints.json
var bundled []byte

var ErrMalformedCatalog = errors.New("malformed catalog: blueprints must be an array")

// Bundled returns the raw catalog shipped with the binary.
func Bundled() []byte {
	return bundled
}

// Parse decodes a catalog document of the form {"blueprints": [...]}.
// Option values are kept raw; normalisation happens when products are built.
func Parse(raw []byte) ([]entity.Blueprint, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrMalformedCatalog
	}

	list := gjson.GetBytes(raw, "blueprints")
	if !list.IsArray() {
		return nil, ErrMalformedCatalog
	}

	var blueprints []entity.Blueprint
	if err := json.Unmarshal([]byte(list.Raw), &blueprints); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
	}
	return blueprints, nil
}
