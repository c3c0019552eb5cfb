package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"findanything/internal/domain"
	"findanything/internal/ui/views"
)

// HelpRenderer builds the text shown in the external pager
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
	dim     lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1),
		section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		dim:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
	}
}

func (r *HelpRenderer) line(b *strings.Builder, keys, desc string) {
	fmt.Fprintf(b, "  %-14s %s\n", r.key.Render(keys), r.desc.Render(desc))
}

// RenderHelpContent generates the full key reference
func (r *HelpRenderer) RenderHelpContent() string {
	var help strings.Builder

	help.WriteString(r.title.Render("Find Anything Help"))
	help.WriteString("\n")

	help.WriteString(r.section.Render("Search box"))
	help.WriteString("\n")
	r.line(&help, "Enter", "Add the phrase as a prompt and search")
	r.line(&help, "Esc", "Clear the box, or jump to the prompts when empty")
	r.line(&help, "Tab", "Jump to the prompts")
	r.line(&help, "Ctrl+F", "Open filters")
	r.line(&help, "Ctrl+V", "Show all results in the pager")
	help.WriteString("\n")

	help.WriteString(r.section.Render("Prompts"))
	help.WriteString("\n")
	r.line(&help, "←/→, h/l", "Move between prompts")
	r.line(&help, "Space", "Select or deselect the prompt")
	r.line(&help, "e, Enter", "Edit the prompt")
	r.line(&help, "d, x, Del", "Delete the prompt")
	r.line(&help, "/, i, Tab", "Back to the search box")
	r.line(&help, "f", "Open filters")
	r.line(&help, "v", "Show all results in the pager")
	help.WriteString("\n")

	help.WriteString(r.section.Render("Filters"))
	help.WriteString("\n")
	r.line(&help, "↑/↓, j/k", "Move between rows")
	r.line(&help, "←/→, h/l", "Adjust a price bound")
	r.line(&help, "Space", "Toggle a category or rating")
	r.line(&help, "Esc, f", "Close without applying")
	help.WriteString(r.dim.Render("  Filters only change what you see here. They are not sent with the search."))
	help.WriteString("\n")

	help.WriteString(r.section.Render("Other"))
	help.WriteString("\n")
	r.line(&help, "?", "Show this help")
	fmt.Fprintf(&help, "  %-14s %s", r.key.Render("q, Ctrl+C"), r.desc.Render("Quit"))

	return help.String()
}

// RenderResultsTable lists every result, one per line, for the pager
func (r *HelpRenderer) RenderResultsTable(prompt string, st domain.SearchState) string {
	var b strings.Builder

	b.WriteString(r.title.Render("Results"))
	b.WriteString("\n")
	if prompt != "" {
		fmt.Fprintf(&b, "%s %s\n", r.dim.Render("query:"), prompt)
	}
	if st.Degraded {
		b.WriteString(r.dim.Render("Provider unavailable, these are sample items."))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, res := range st.Results {
		fmt.Fprintf(&b, "%3d  %-40s %-12s %10s  %s\n",
			i+1,
			views.Truncate(res.Name, 40),
			views.Truncate(res.Brand, 12),
			views.FormatPrice(res),
			views.FormatRating(res),
		)
		if res.Image != "" {
			fmt.Fprintf(&b, "     %s\n", r.dim.Render(res.Image))
		}
	}
	return b.String()
}

// PagerOps runs content through ov, handing it the terminal for the duration
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{
		program: program,
	}
}

// SetProgram sets the program reference
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// Show displays content in the ov pager
func (p *PagerOps) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
