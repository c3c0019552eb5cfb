package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"findanything/internal/domain"
	"findanything/internal/ui/state"
)

func TestFormatters(t *testing.T) {
	assert.Equal(t, "$12.50", FormatPrice(domain.Result{Price: "12.5"}))
	assert.Equal(t, "$7.00", FormatPrice(domain.Result{Price: "$7"}))
	assert.Equal(t, "call us", FormatPrice(domain.Result{Price: " call us "}))
	assert.Equal(t, "★ 4.5", FormatRating(domain.Result{Rating: "4.5"}))
	assert.Empty(t, FormatRating(domain.Result{Rating: "n/a"}))

	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab…", Truncate("abcd", 3))
	assert.Equal(t, "…", Truncate("abcd", 1))
	assert.Empty(t, Truncate("abcd", 0))
}

func TestChipsMarkSelection(t *testing.T) {
	r := NewChipRenderer(NewStyles())
	out := r.Render([]domain.Prompt{
		{ID: "1", Text: "lamp", Selected: true},
		{ID: "2", Text: "desk", Selected: false},
	}, 0, true, "", "", 80)

	assert.Contains(t, out, "✓ lamp")
	assert.Contains(t, out, "desk")
	assert.NotContains(t, out, "✓ desk")
	assert.Empty(t, r.Render(nil, 0, false, "", "", 80))
}

func TestChipsEditingReplacesChip(t *testing.T) {
	r := NewChipRenderer(NewStyles())
	out := r.Render([]domain.Prompt{{ID: "1", Text: "lamp", Selected: true}}, 0, true, "1", "EDITOR", 80)
	assert.Contains(t, out, "EDITOR")
	assert.NotContains(t, out, "lamp")
}

func TestGridLimitsRows(t *testing.T) {
	g := NewGridRenderer(NewStyles())
	results := make([]domain.Result, 7)
	for i := range results {
		results[i] = domain.Result{Name: "Item", Price: "1"}
	}

	out := g.Render(results, 3, 120, 1)
	assert.Contains(t, out, "4 more results")

	out = g.Render(results[:1], 3, 120, 0)
	assert.NotContains(t, out, "more result")
	assert.Contains(t, out, "$1.00")
}

func TestGridUntitled(t *testing.T) {
	g := NewGridRenderer(NewStyles())
	assert.Contains(t, g.Render([]domain.Result{{}}, 1, 60, 0), "Untitled")
}

func TestDrawerShowsTempFilters(t *testing.T) {
	d := state.Drawer{Open: true, Temp: state.DefaultFilters()}
	d.Temp.Categories[state.Categories[1]] = true
	d.Temp.MinRating = 3

	out := NewDrawerRenderer(NewStyles()).Render(d, 0)
	assert.Contains(t, out, "[x] "+state.Categories[1])
	assert.Contains(t, out, "(•) ★★★☆☆ & up")
	assert.Contains(t, out, "Apply Filters")
	assert.True(t, strings.Contains(out, "> [ ] "+state.Categories[0]))
}

func TestRendererIndicators(t *testing.T) {
	r := NewRenderer()
	vs := ViewState{
		Width:        100,
		Search:       domain.SearchState{HasSearchedAtLeastOnce: true, Degraded: true},
		ShowDegraded: true,
		Filters:      state.DefaultFilters(),
		Columns:      3,
	}
	vs.Filters.MinRating = 4

	out := r.Render(vs)
	assert.Contains(t, out, "[offline results]")
	assert.Contains(t, out, "[filters]")
	assert.Contains(t, out, "No results")

	vs.ShowDegraded = false
	assert.NotContains(t, r.Render(vs), "[offline results]")
}
