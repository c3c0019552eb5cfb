package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"findanything/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(state *state.AppState, search Orchestrator) *Executor {
	return &Executor{
		ctx: &CommandContext{
			State:  state,
			Search: search,
		},
	}
}

// ExecuteSubmit creates and executes a submit command
func (e *Executor) ExecuteSubmit(text string) tea.Cmd {
	return NewSubmitCommand(e.ctx, text).Execute()
}

// ExecuteEdit creates and executes an edit command
func (e *Executor) ExecuteEdit(id, text string) tea.Cmd {
	return NewEditCommand(e.ctx, id, text).Execute()
}

// ExecuteDelete creates and executes a delete command
func (e *Executor) ExecuteDelete(id string) tea.Cmd {
	return NewDeleteCommand(e.ctx, id).Execute()
}

// ExecuteToggle creates and executes a toggle command
func (e *Executor) ExecuteToggle(id string) tea.Cmd {
	return NewToggleCommand(e.ctx, id).Execute()
}

// Refresh re-reads the search service snapshots
func (e *Executor) Refresh() {
	e.ctx.refresh()
}
