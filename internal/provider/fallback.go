package provider

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"findanything/internal/catalog"
	"findanything/internal/domain"
)

// FallbackBrand is the brand stamped on every fallback record
const FallbackBrand = "Mock Brand"

// Fallback is the offline substitute used when the Results Provider fails
type Fallback struct {
	results []domain.Result
}

// NewFallback derives the substitute result list from catalog products
func NewFallback(products []catalog.Product) *Fallback {
	results := make([]domain.Result, 0, len(products))
	for _, p := range products {
		r := domain.Result{
			Name:   p.Name,
			Image:  p.Image,
			Price:  strings.Replace(p.Price, "$", "", 1),
			Brand:  FallbackBrand,
			Rating: strconv.FormatFloat(p.Rating, 'f', -1, 64),
		}
		if raw, err := json.Marshal(r); err == nil {
			r.Raw = raw
		}
		results = append(results, r)
	}
	return &Fallback{results: results}
}

// DefaultFallback builds the fallback from the embedded catalog
func DefaultFallback() *Fallback {
	return NewFallback(catalog.MustProducts())
}

// Results returns a fresh copy on every call
func (f *Fallback) Results() []domain.Result {
	out := make([]domain.Result, len(f.results))
	copy(out, f.results)
	return out
}
