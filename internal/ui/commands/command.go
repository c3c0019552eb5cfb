package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"findanything/internal/domain"
	"findanything/internal/errs"
	"findanything/internal/ui/state"
)

// Orchestrator is the mutation and snapshot surface of the search service
type Orchestrator interface {
	Submit(text string) (domain.Prompt, bool, error)
	Edit(id string, text string) error
	Delete(id string)
	Toggle(id string) error
	Prompts() []domain.Prompt
	State() domain.SearchState
}

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// CommandContext provides context for command execution
type CommandContext struct {
	State  *state.AppState
	Search Orchestrator
}

// refresh copies the latest snapshots into the UI state
func (c *CommandContext) refresh() {
	c.State.SetPrompts(c.Search.Prompts())
	c.State.SetSearch(c.Search.State())
}

func (c *CommandContext) fail(action string, err error) {
	switch {
	case errs.IsCode(err, errs.CodeInvalidInput):
		c.State.StatusMessage = "Prompt text cannot be empty"
	case errs.IsCode(err, errs.CodeNotFound):
		c.State.StatusMessage = "That prompt no longer exists"
	default:
		c.State.StatusMessage = fmt.Sprintf("Failed to %s: %v", action, err)
	}
}

// SubmitCommand adds a phrase and searches right away
type SubmitCommand struct {
	ctx  *CommandContext
	text string
}

// NewSubmitCommand creates a new submit command
func NewSubmitCommand(ctx *CommandContext, text string) *SubmitCommand {
	return &SubmitCommand{ctx: ctx, text: text}
}

// Execute submits the phrase
func (c *SubmitCommand) Execute() tea.Cmd {
	p, existed, err := c.ctx.Search.Submit(c.text)
	if err != nil {
		c.ctx.fail("search", err)
		return nil
	}
	c.ctx.refresh()
	if existed {
		c.ctx.State.StatusMessage = fmt.Sprintf("%q is already a prompt, searching again", p.Text)
	} else {
		c.ctx.State.StatusMessage = ""
	}
	return nil
}

// EditCommand replaces a prompt's text
type EditCommand struct {
	ctx  *CommandContext
	id   string
	text string
}

// NewEditCommand creates a new edit command
func NewEditCommand(ctx *CommandContext, id, text string) *EditCommand {
	return &EditCommand{ctx: ctx, id: id, text: text}
}

// Execute edits the prompt
func (c *EditCommand) Execute() tea.Cmd {
	if err := c.ctx.Search.Edit(c.id, c.text); err != nil {
		c.ctx.fail("edit prompt", err)
		return nil
	}
	c.ctx.refresh()
	return nil
}

// DeleteCommand removes a prompt
type DeleteCommand struct {
	ctx *CommandContext
	id  string
}

// NewDeleteCommand creates a new delete command
func NewDeleteCommand(ctx *CommandContext, id string) *DeleteCommand {
	return &DeleteCommand{ctx: ctx, id: id}
}

// Execute deletes the prompt
func (c *DeleteCommand) Execute() tea.Cmd {
	c.ctx.Search.Delete(c.id)
	c.ctx.refresh()
	return nil
}

// ToggleCommand flips whether a prompt contributes to the query
type ToggleCommand struct {
	ctx *CommandContext
	id  string
}

// NewToggleCommand creates a new toggle command
func NewToggleCommand(ctx *CommandContext, id string) *ToggleCommand {
	return &ToggleCommand{ctx: ctx, id: id}
}

// Execute toggles the prompt
func (c *ToggleCommand) Execute() tea.Cmd {
	if err := c.ctx.Search.Toggle(c.id); err != nil {
		c.ctx.fail("toggle prompt", err)
		return nil
	}
	c.ctx.refresh()
	return nil
}
