package domain

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Prompt is a stored search phrase with its own selection state
type Prompt struct {
	ID       string
	Text     string
	Selected bool
}

// Result is one item returned by the Results Provider or the Fallback Catalog.
// The orchestrator never interprets it; the fields are the contract with the UI.
type Result struct {
	Name   string `json:"name"`
	Image  string `json:"img"`
	Price  string `json:"price"`
	Brand  string `json:"brand"`
	Rating string `json:"avg_rating"`

	// Raw keeps the provider's original element, unknown fields included
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON accepts strings, numbers or null for every known field.
// Elements that are not objects are kept in Raw with empty fields.
func (r *Result) UnmarshalJSON(data []byte) error {
	*r = Result{}
	if trimmed := strings.TrimSpace(string(data)); !strings.HasPrefix(trimmed, "{") {
		if trimmed != "null" {
			r.Raw = append(json.RawMessage(nil), data...)
		}
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	r.Name = looseString(fields["name"])
	r.Image = looseString(fields["img"])
	r.Price = looseString(fields["price"])
	r.Brand = looseString(fields["brand"])
	r.Rating = looseString(fields["avg_rating"])
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// looseString renders a JSON scalar as text; strings are unquoted, null is empty
func looseString(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return ""
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return trimmed
}

// PriceValue parses the price, tolerating a leading currency symbol
func (r Result) PriceValue() (decimal.Decimal, bool) {
	p := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(r.Price), "$"))
	if p == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(p)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// RatingValue parses the average rating
func (r Result) RatingValue() (decimal.Decimal, bool) {
	s := strings.TrimSpace(r.Rating)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// SearchState is a read-only snapshot of the dispatcher's published state
type SearchState struct {
	IsLoading              bool
	Results                []Result
	HasSearchedAtLeastOnce bool

	// Degraded is true when the current results came from the Fallback Catalog
	Degraded       bool
	DegradedReason string

	Query      string // query of the last applied completion
	Generation uint64 // sequence number of the last applied completion
}

// Clone returns a copy whose Results slice is not shared
func (s SearchState) Clone() SearchState {
	out := s
	if s.Results != nil {
		out.Results = make([]Result, len(s.Results))
		copy(out.Results, s.Results)
	}
	return out
}
