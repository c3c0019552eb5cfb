package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"findanything/internal/domain"
	"findanything/internal/ui/state"
)

// HeroTitle is shown before the first search
const HeroTitle = "Find Anything"

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Prompts    []domain.Prompt
	Search     domain.SearchState
	Focus      state.Focus
	ChipCursor int
	EditingID  string

	InputView string // rendered search box
	EditView  string // rendered chip editor
	Spinner   string

	Drawer  state.Drawer
	Filters state.Filters

	ShowDegraded  bool
	Columns       int
	StatusMessage string
	HelpView      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles       *Styles
	chipRender   *ChipRenderer
	gridRender   *GridRenderer
	drawerRender *DrawerRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:       styles,
		chipRender:   NewChipRenderer(styles),
		gridRender:   NewGridRenderer(styles),
		drawerRender: NewDrawerRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(vs ViewState) string {
	width := vs.Width
	if width <= 0 {
		width = 80 // Default terminal width
	}
	mainWidth := width - 4 // main container padding
	if vs.Drawer.Open {
		mainWidth -= lipgloss.Width(r.drawerRender.Render(vs.Drawer, 0))
	}

	var body string
	if !vs.Search.HasSearchedAtLeastOnce {
		body = r.renderLanding(vs, mainWidth)
	} else {
		body = r.renderResults(vs, mainWidth)
	}

	if vs.Drawer.Open {
		drawer := r.drawerRender.Render(vs.Drawer, lipgloss.Height(body))
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, drawer)
	}
	return r.styles.Main.Render(body)
}

func (r *Renderer) renderLanding(vs ViewState, width int) string {
	var b strings.Builder
	b.WriteString(r.titleLine(vs, width))
	b.WriteString("\n")

	hero := lipgloss.JoinVertical(lipgloss.Center,
		r.styles.Hero.Render(HeroTitle),
		r.styles.HeroSub.Render("Describe what you are looking for, one phrase at a time."),
		r.renderInput(vs),
	)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, hero))
	b.WriteString("\n")
	b.WriteString(r.renderFooter(vs))
	return b.String()
}

func (r *Renderer) renderResults(vs ViewState, width int) string {
	var b strings.Builder
	b.WriteString(r.titleLine(vs, width))
	b.WriteString("\n")
	b.WriteString(r.renderInput(vs))
	b.WriteString("\n")

	if chips := r.chipRender.Render(vs.Prompts, vs.ChipCursor, vs.Focus == state.FocusChips, vs.EditingID, vs.EditView, width); chips != "" {
		b.WriteString(chips)
		b.WriteString("\n\n")
	}

	switch {
	case len(vs.Search.Results) > 0:
		b.WriteString(r.gridRender.Render(vs.Search.Results, vs.Columns, width, r.maxGridRows(vs)))
	case vs.Search.IsLoading:
		b.WriteString(r.styles.StatusLoading.Render(vs.Spinner + " Searching..."))
	default:
		b.WriteString(r.styles.Dim.Render("No results. Try selecting different prompts."))
	}
	b.WriteString("\n")
	b.WriteString(r.renderFooter(vs))
	return b.String()
}

// titleLine renders the logo with right-aligned indicators
func (r *Renderer) titleLine(vs ViewState, width int) string {
	logo := r.styles.Title.Render("findanything")

	var indicators []string
	if vs.Search.IsLoading {
		indicators = append(indicators, r.styles.StatusLoading.Render(vs.Spinner+" Searching"))
	}
	if vs.ShowDegraded && vs.Search.Degraded {
		indicators = append(indicators, r.styles.Degraded.Render("[offline results]"))
	}
	if vs.Filters.Active() {
		indicators = append(indicators, r.styles.Filter.Render("[filters]"))
	}
	if len(indicators) == 0 {
		return logo
	}

	right := strings.Join(indicators, "  ")
	padding := width - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, logo, strings.Repeat(" ", padding), right)
}

func (r *Renderer) renderInput(vs ViewState) string {
	style := r.styles.Input
	if vs.Focus == state.FocusInput {
		style = r.styles.InputFocused
	}
	return style.Render(vs.InputView)
}

func (r *Renderer) renderFooter(vs ViewState) string {
	var b strings.Builder
	if vs.StatusMessage != "" {
		b.WriteString(r.styles.Status.Render(vs.StatusMessage))
		b.WriteString("\n")
	}
	if vs.HelpView != "" {
		b.WriteString(r.styles.Help.Render(vs.HelpView))
	}
	return b.String()
}

// maxGridRows fits the grid into the space left under the header
func (r *Renderer) maxGridRows(vs ViewState) int {
	if vs.Height <= 0 {
		return 0
	}
	const cardHeight = 5
	rows := (vs.Height - 14) / cardHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
