package handlers

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"findanything/internal/domain"
	"findanything/internal/eventbus"
	"findanything/internal/ui/state"
)

// Snapshotter exposes read-only views of the search service
type Snapshotter interface {
	Prompts() []domain.Prompt
	State() domain.SearchState
}

// EventHandler handles domain events and updates state
type EventHandler struct {
	state    *state.AppState
	search   Snapshotter
	onLoader func() tea.Cmd
}

// NewEventHandler creates a new event handler. startLoader is called when a
// search starts and returns the spinner's tick command.
func NewEventHandler(appState *state.AppState, search Snapshotter, startLoader func() tea.Cmd) *EventHandler {
	return &EventHandler{
		state:    appState,
		search:   search,
		onLoader: startLoader,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	// every event re-reads the snapshots; the event only decides the status line
	h.state.SetPrompts(h.search.Prompts())
	h.state.SetSearch(h.search.State())

	switch e := event.(type) {
	case eventbus.SearchStartedEvent:
		h.state.StatusMessage = fmt.Sprintf("Searching for %q...", e.Query)
		if h.onLoader != nil {
			return h.onLoader()
		}

	case eventbus.SearchCompletedEvent:
		switch {
		case e.Degraded:
			h.state.StatusMessage = fmt.Sprintf("Provider unavailable, showing %d sample items", e.Count)
		case e.Count == 1:
			h.state.StatusMessage = "1 result"
		default:
			h.state.StatusMessage = fmt.Sprintf("%d results", e.Count)
		}

	case eventbus.SearchSkippedEvent:
		h.state.StatusMessage = "No prompts selected"

	case eventbus.SearchDiscardedEvent:
		// a newer search already owns the results

	case eventbus.ErrorEvent:
		h.state.StatusMessage = fmt.Sprintf("Error: %s", e.Message)
	}

	return nil
}
