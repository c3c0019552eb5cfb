package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Hero          lipgloss.Style
	HeroSub       lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Filter        lipgloss.Style
	Degraded      lipgloss.Style
	Input         lipgloss.Style
	InputFocused  lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	ChipOn        lipgloss.Style
	ChipOff       lipgloss.Style
	ChipCursor    lipgloss.Style
	Card          lipgloss.Style
	CardName      lipgloss.Style
	CardPrice     lipgloss.Style
	CardBrand     lipgloss.Style
	CardRating    lipgloss.Style
	Drawer        lipgloss.Style
	DrawerSection lipgloss.Style
	DrawerCursor  lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Hero: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			MarginTop(2),
		HeroSub: lipgloss.NewStyle().Foreground(lipgloss.Color("245")).MarginBottom(1),
		Dim:     lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Filter:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Degraded: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Faint(true).MarginTop(1),
		Main: lipgloss.NewStyle().Padding(1, 2),
		ChipOn: lipgloss.NewStyle().
			Foreground(lipgloss.Color("232")).
			Background(lipgloss.Color("252")).
			Padding(0, 1),
		ChipOff: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Strikethrough(true).
			Padding(0, 1),
		ChipCursor: lipgloss.NewStyle().Underline(true).Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
		CardName:   lipgloss.NewStyle().Bold(true),
		CardPrice:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		CardBrand:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		CardRating: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Drawer: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 2).
			Width(36),
		DrawerSection: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		DrawerCursor:  lipgloss.NewStyle().Background(lipgloss.Color("238")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
