package state

import (
	"findanything/internal/domain"
)

// Focus identifies which part of the screen receives keys
type Focus int

const (
	FocusInput Focus = iota
	FocusChips
	FocusDrawer
)

// Categories offered by the filter drawer
var Categories = []string{
	"Electronics",
	"Fashion",
	"Home & Garden",
	"Sports",
	"Books",
	"Beauty",
	"Automotive",
	"Health",
}

// RatingOptions are the minimum-rating choices, best first
var RatingOptions = []int{4, 3, 2, 1}

const (
	PriceCeiling = 1000
	PriceStep    = 50
)

// Filters is the drawer's filter set. It stays local to the UI and is never
// attached to a provider request.
type Filters struct {
	Categories map[string]bool
	PriceMin   int
	PriceMax   int
	MinRating  int
}

// DefaultFilters returns the cleared filter set
func DefaultFilters() Filters {
	return Filters{
		Categories: make(map[string]bool),
		PriceMax:   PriceCeiling,
	}
}

// Active reports whether any filter differs from the cleared set
func (f Filters) Active() bool {
	for _, on := range f.Categories {
		if on {
			return true
		}
	}
	return f.PriceMin > 0 || f.PriceMax < PriceCeiling || f.MinRating > 0
}

// SelectedCategories returns the chosen categories in drawer order
func (f Filters) SelectedCategories() []string {
	var out []string
	for _, c := range Categories {
		if f.Categories[c] {
			out = append(out, c)
		}
	}
	return out
}

func (f Filters) clone() Filters {
	out := f
	out.Categories = make(map[string]bool, len(f.Categories))
	for k, v := range f.Categories {
		out.Categories[k] = v
	}
	return out
}

// DrawerRow identifies a row in the filter drawer
type DrawerRow int

const (
	RowCategory DrawerRow = iota
	RowPriceMin
	RowPriceMax
	RowRating
	RowApply
	RowClear
)

// Drawer holds the open drawer's cursor and its uncommitted edits
type Drawer struct {
	Open   bool
	Cursor int
	Temp   Filters
}

// AppState contains all the application state
type AppState struct {
	// Snapshots from the search service
	Prompts []domain.Prompt
	Search  domain.SearchState

	// Chip interaction
	Focus      Focus
	ChipCursor int
	EditingID  string // prompt being edited, empty when not editing

	// Filter drawer
	Filters Filters
	Drawer  Drawer

	// UI state
	ShowHelp      bool
	ShowDegraded  bool
	Columns       int
	StatusMessage string
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Search:       domain.SearchState{Results: []domain.Result{}},
		Focus:        FocusInput,
		Filters:      DefaultFilters(),
		Drawer:       Drawer{Temp: DefaultFilters()},
		ShowDegraded: true,
		Columns:      3,
	}
}

// SetPrompts replaces the prompt snapshot and keeps the chip cursor in range
func (s *AppState) SetPrompts(prompts []domain.Prompt) {
	s.Prompts = prompts
	if s.ChipCursor >= len(prompts) {
		s.ChipCursor = len(prompts) - 1
	}
	if s.ChipCursor < 0 {
		s.ChipCursor = 0
	}
	if s.EditingID != "" && s.promptIndex(s.EditingID) < 0 {
		s.EditingID = ""
	}
}

// SetSearch replaces the search snapshot
func (s *AppState) SetSearch(st domain.SearchState) {
	s.Search = st
}

// CurrentPrompt returns the prompt under the chip cursor
func (s *AppState) CurrentPrompt() (domain.Prompt, bool) {
	if s.ChipCursor < 0 || s.ChipCursor >= len(s.Prompts) {
		return domain.Prompt{}, false
	}
	return s.Prompts[s.ChipCursor], true
}

// MoveChipCursor moves the cursor by delta, wrapping around
func (s *AppState) MoveChipCursor(delta int) {
	n := len(s.Prompts)
	if n == 0 {
		s.ChipCursor = 0
		return
	}
	s.ChipCursor = ((s.ChipCursor+delta)%n + n) % n
}

// Landing reports whether the hero screen is shown
func (s *AppState) Landing() bool {
	return !s.Search.HasSearchedAtLeastOnce
}

func (s *AppState) promptIndex(id string) int {
	for i, p := range s.Prompts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Drawer operations

// OpenDrawer starts editing a copy of the applied filters
func (s *AppState) OpenDrawer() {
	s.Drawer = Drawer{Open: true, Temp: s.Filters.clone()}
}

// CloseDrawer discards uncommitted edits
func (s *AppState) CloseDrawer() {
	s.Drawer.Open = false
}

// DrawerRows is the number of selectable drawer rows
func DrawerRows() int {
	return len(Categories) + 2 + len(RatingOptions) + 2
}

// DrawerRowAt maps a cursor position to its row kind and index within the kind
func DrawerRowAt(cursor int) (DrawerRow, int) {
	switch {
	case cursor < len(Categories):
		return RowCategory, cursor
	case cursor == len(Categories):
		return RowPriceMin, 0
	case cursor == len(Categories)+1:
		return RowPriceMax, 0
	case cursor < len(Categories)+2+len(RatingOptions):
		return RowRating, cursor - len(Categories) - 2
	case cursor == len(Categories)+2+len(RatingOptions):
		return RowApply, 0
	default:
		return RowClear, 0
	}
}

// MoveDrawerCursor moves between drawer rows without wrapping
func (s *AppState) MoveDrawerCursor(delta int) {
	c := s.Drawer.Cursor + delta
	if c < 0 {
		c = 0
	}
	if c >= DrawerRows() {
		c = DrawerRows() - 1
	}
	s.Drawer.Cursor = c
}

// AdjustPrice nudges the price bound under the cursor, keeping min <= max
func (s *AppState) AdjustPrice(steps int) {
	row, _ := DrawerRowAt(s.Drawer.Cursor)
	t := &s.Drawer.Temp
	switch row {
	case RowPriceMin:
		t.PriceMin = clamp(t.PriceMin+steps*PriceStep, 0, t.PriceMax)
	case RowPriceMax:
		t.PriceMax = clamp(t.PriceMax+steps*PriceStep, t.PriceMin, PriceCeiling)
	}
}

// ActivateDrawerRow toggles a category or rating, or applies or clears the filters.
// It returns true when the drawer closed.
func (s *AppState) ActivateDrawerRow() bool {
	row, idx := DrawerRowAt(s.Drawer.Cursor)
	t := &s.Drawer.Temp
	switch row {
	case RowCategory:
		c := Categories[idx]
		t.Categories[c] = !t.Categories[c]
	case RowRating:
		r := RatingOptions[idx]
		if t.MinRating == r {
			t.MinRating = 0
		} else {
			t.MinRating = r
		}
	case RowApply:
		s.Filters = t.clone()
		s.CloseDrawer()
		return true
	case RowClear:
		s.Filters = DefaultFilters()
		s.Drawer.Temp = DefaultFilters()
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
