package views

import (
	"strings"

	"findanything/internal/domain"
)

// FormatPrice renders a price as "$12.50", or the raw text when it is not numeric
func FormatPrice(r domain.Result) string {
	if d, ok := r.PriceValue(); ok {
		return "$" + d.StringFixed(2)
	}
	return strings.TrimSpace(r.Price)
}

// FormatRating renders the average rating with one decimal place
func FormatRating(r domain.Result) string {
	if d, ok := r.RatingValue(); ok {
		return "★ " + d.StringFixed(1)
	}
	return ""
}

// Truncate shortens s to width cells, marking the cut with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
