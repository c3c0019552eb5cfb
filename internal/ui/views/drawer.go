package views

import (
	"fmt"
	"strings"

	"findanything/internal/ui/state"
)

// DrawerRenderer draws the filter drawer
type DrawerRenderer struct {
	styles *Styles
}

// NewDrawerRenderer creates a new drawer renderer
func NewDrawerRenderer(styles *Styles) *DrawerRenderer {
	return &DrawerRenderer{styles: styles}
}

// Render draws the drawer's uncommitted filter set with the cursor row highlighted
func (dr *DrawerRenderer) Render(d state.Drawer, height int) string {
	var b strings.Builder
	cursor := 0
	row := func(text string) {
		if cursor == d.Cursor {
			text = dr.styles.DrawerCursor.Render("> " + text)
		} else {
			text = "  " + text
		}
		b.WriteString(text + "\n")
		cursor++
	}

	b.WriteString(dr.styles.Title.Render("Filters"))
	b.WriteString("\n")

	b.WriteString(dr.styles.DrawerSection.Render("Category"))
	b.WriteString("\n")
	for _, c := range state.Categories {
		row(checkbox(d.Temp.Categories[c]) + " " + c)
	}

	b.WriteString(dr.styles.DrawerSection.Render("Price Range"))
	b.WriteString("\n")
	row(fmt.Sprintf("Min  ‹ $%d ›", d.Temp.PriceMin))
	row(fmt.Sprintf("Max  ‹ $%d ›", d.Temp.PriceMax))

	b.WriteString(dr.styles.DrawerSection.Render("Minimum Rating"))
	b.WriteString("\n")
	for _, r := range state.RatingOptions {
		stars := strings.Repeat("★", r) + strings.Repeat("☆", 5-r)
		row(fmt.Sprintf("%s %s & up", radio(d.Temp.MinRating == r), stars))
	}

	b.WriteString("\n")
	row("Apply Filters")
	row("Clear All")

	b.WriteString("\n")
	b.WriteString(dr.styles.Dim.Render("Filters stay on this screen and\nare not sent with the search."))

	style := dr.styles.Drawer
	if height > 0 {
		style = style.Height(height)
	}
	return style.Render(b.String())
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func radio(on bool) string {
	if on {
		return "(•)"
	}
	return "( )"
}
