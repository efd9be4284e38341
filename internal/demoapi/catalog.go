package demoapi

import (
	"bytes"
	_ "embed"
	"io"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/jask/storefront/internal/model"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Products []struct {
		ID          string  `yaml:"id"`
		Title       string  `yaml:"title"`
		Category    string  `yaml:"category"`
		Description string  `yaml:"description"`
		Image       string  `yaml:"image"`
		Price       *string `yaml:"price"`
	} `yaml:"products"`
}

// LoadCatalog reads a YAML product fixture. A null price marks a priceless
// product.
func LoadCatalog(r io.Reader) ([]model.Product, error) {
	var f catalogFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	out := make([]model.Product, 0, len(f.Products))
	seen := map[string]struct{}{}
	for _, p := range f.Products {
		if p.ID == "" {
			return nil, errors.Errorf("catalog: product %q has no id", p.Title)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, errors.Errorf("catalog: duplicate id %s", p.ID)
		}
		seen[p.ID] = struct{}{}
		prod := model.Product{
			ID:          p.ID,
			Title:       p.Title,
			Category:    p.Category,
			Description: p.Description,
			Image:       p.Image,
		}
		if p.Price != nil {
			d, err := decimal.NewFromString(*p.Price)
			if err != nil {
				return nil, errors.Wrapf(err, "catalog: product %s price", p.ID)
			}
			prod.Price = decimal.NewNullDecimal(d)
		}
		out = append(out, prod)
	}
	return out, nil
}

// DefaultCatalog returns the built-in demo products.
func DefaultCatalog() ([]model.Product, error) {
	return LoadCatalog(bytes.NewReader(defaultCatalog))
}
