package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Product is a catalog entry as authored in catalog.yaml
type Product struct {
	ID       int     `yaml:"id"`
	Name     string  `yaml:"name"`
	Price    string  `yaml:"price"` // display form, e.g. "$299.99"
	Rating   float64 `yaml:"rating"`
	Category string  `yaml:"category"`
	Brand    string  `yaml:"brand"`
	Image    string  `yaml:"image"`
}

// PriceValue returns the price without its currency symbol
func (p Product) PriceValue() (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(p.Price), "$"))
}

type document struct {
	Products []Product `yaml:"products"`
}

var (
	loadOnce sync.Once
	products []Product
	loadErr  error
)

// Parse decodes a catalog document
func Parse(data []byte) ([]Product, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	for i, p := range doc.Products {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("catalog entry %d has no name", i)
		}
		if _, err := p.PriceValue(); err != nil {
			return nil, fmt.Errorf("catalog entry %q has invalid price %q: %w", p.Name, p.Price, err)
		}
	}
	return doc.Products, nil
}

// Products returns a copy of the embedded catalog in authored order
func Products() ([]Product, error) {
	loadOnce.Do(func() {
		products, loadErr = Parse(catalogYAML)
	})
	if loadErr != nil {
		return nil, loadErr
	}
	out := make([]Product, len(products))
	copy(out, products)
	return out, nil
}

// MustProducts is Products for callers that treat a broken embed as a build defect
func MustProducts() []Product {
	p, err := Products()
	if err != nil {
		panic(err)
	}
	return p
}
