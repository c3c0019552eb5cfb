package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"findanything/internal/domain"
)

// GridRenderer draws result cards in columns
type GridRenderer struct {
	styles *Styles
}

// NewGridRenderer creates a new grid renderer
func NewGridRenderer(styles *Styles) *GridRenderer {
	return &GridRenderer{styles: styles}
}

// Render lays results out in rows of columns cards, at most maxRows rows.
// maxRows <= 0 means no limit.
func (gr *GridRenderer) Render(results []domain.Result, columns, width, maxRows int) string {
	if columns < 1 {
		columns = 1
	}
	if width <= 0 {
		width = 80
	}
	cardWidth := width/columns - 2
	if cardWidth < 16 {
		cardWidth = 16
	}

	var rows []string
	for start := 0; start < len(results); start += columns {
		if maxRows > 0 && len(rows) == maxRows {
			hidden := len(results) - start
			rows = append(rows, gr.styles.Dim.Render(pluralize(hidden, "more result")+" (v to view all)"))
			break
		}
		end := start + columns
		if end > len(results) {
			end = len(results)
		}
		cards := make([]string, 0, end-start)
		for _, r := range results[start:end] {
			cards = append(cards, gr.renderCard(r, cardWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (gr *GridRenderer) renderCard(r domain.Result, width int) string {
	inner := width - 4 // border and padding
	name := r.Name
	if strings.TrimSpace(name) == "" {
		name = "Untitled"
	}

	lines := []string{gr.styles.CardName.Render(Truncate(name, inner))}

	var meta []string
	if price := FormatPrice(r); price != "" {
		meta = append(meta, gr.styles.CardPrice.Render(price))
	}
	if rating := FormatRating(r); rating != "" {
		meta = append(meta, gr.styles.CardRating.Render(rating))
	}
	lines = append(lines, strings.Join(meta, "  "))

	brand := strings.TrimSpace(r.Brand)
	lines = append(lines, gr.styles.CardBrand.Render(Truncate(brand, inner)))

	return gr.styles.Card.Width(width - 2).Render(strings.Join(lines, "\n"))
}
