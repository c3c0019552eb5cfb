package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"findanything/internal/domain"
)

// ChipRenderer draws the prompt chips row
type ChipRenderer struct {
	styles *Styles
}

// NewChipRenderer creates a new chip renderer
func NewChipRenderer(styles *Styles) *ChipRenderer {
	return &ChipRenderer{styles: styles}
}

// Render lays chips out left to right, wrapping at width.
// editView replaces the chip being edited.
func (cr *ChipRenderer) Render(prompts []domain.Prompt, cursor int, focused bool, editingID, editView string, width int) string {
	if len(prompts) == 0 {
		return ""
	}

	var lines []string
	var line []string
	lineWidth := 0
	for i, p := range prompts {
		var chip string
		if p.ID == editingID {
			chip = editView
		} else {
			chip = cr.renderChip(p, focused && i == cursor)
		}

		w := lipgloss.Width(chip) + 1
		if lineWidth > 0 && width > 0 && lineWidth+w > width {
			lines = append(lines, strings.Join(line, " "))
			line = nil
			lineWidth = 0
		}
		line = append(line, chip)
		lineWidth += w
	}
	if len(line) > 0 {
		lines = append(lines, strings.Join(line, " "))
	}
	return strings.Join(lines, "\n")
}

func (cr *ChipRenderer) renderChip(p domain.Prompt, atCursor bool) string {
	mark := "✓ "
	style := cr.styles.ChipOn
	if !p.Selected {
		mark = "  "
		style = cr.styles.ChipOff
	}
	chip := style.Render(mark + p.Text)
	if atCursor {
		chip = cr.styles.ChipCursor.Render(chip)
	}
	return chip
}
