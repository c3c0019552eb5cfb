package input

import "findanything/internal/ui/state"

// ModelContext implements types.Context over the application state
type ModelContext struct {
	state *state.AppState
}

func NewModelContext(s *state.AppState) *ModelContext {
	return &ModelContext{state: s}
}

func (c *ModelContext) HasPrompts() bool {
	return len(c.state.Prompts) > 0
}

func (c *ModelContext) CurrentPromptID() string {
	if p, ok := c.state.CurrentPrompt(); ok {
		return p.ID
	}
	return ""
}

func (c *ModelContext) CurrentPromptText() string {
	if p, ok := c.state.CurrentPrompt(); ok {
		return p.Text
	}
	return ""
}

func (c *ModelContext) HasResults() bool {
	return len(c.state.Search.Results) > 0
}
