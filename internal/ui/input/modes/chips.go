package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"findanything/internal/ui/input/types"
)

// ChipsMode moves between prompt chips and mutates the one under the cursor
type ChipsMode struct{}

func NewChipsMode() *ChipsMode {
	return &ChipsMode{}
}

func (m *ChipsMode) Name() string {
	return "chips"
}

func (m *ChipsMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ChipsMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ChipsMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyLeft:
		return []types.Action{types.NavigateAction{Direction: "left"}}, true

	case tea.KeyRight:
		return []types.Action{types.NavigateAction{Direction: "right"}}, true

	case tea.KeyEsc, tea.KeyTab, tea.KeyUp:
		return []types.Action{types.ChangeModeAction{Mode: types.ModeInput}}, true

	case tea.KeySpace:
		return m.onCurrent(ctx, func(id string) types.Action { return types.ToggleAction{ID: id} })

	case tea.KeyEnter:
		return m.startEdit(ctx)

	case tea.KeyDelete, tea.KeyBackspace:
		return m.onCurrent(ctx, func(id string) types.Action { return types.DeleteAction{ID: id} })
	}

	// Handle string keys
	switch msg.String() {
	case "h":
		return []types.Action{types.NavigateAction{Direction: "left"}}, true
	case "l":
		return []types.Action{types.NavigateAction{Direction: "right"}}, true
	case "/", "i":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeInput}}, true
	case "e":
		return m.startEdit(ctx)
	case "x", "d":
		return m.onCurrent(ctx, func(id string) types.Action { return types.DeleteAction{ID: id} })
	case "f":
		return []types.Action{
			types.OpenDrawerAction{},
			types.ChangeModeAction{Mode: types.ModeDrawer},
		}, true
	case "v":
		if ctx.HasResults() {
			return []types.Action{types.ViewResultsAction{}}, true
		}
		return nil, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	case "q":
		return []types.Action{types.QuitAction{}}, true
	}

	return nil, false
}

func (m *ChipsMode) startEdit(ctx types.Context) ([]types.Action, bool) {
	id := ctx.CurrentPromptID()
	if id == "" {
		return nil, true
	}
	return []types.Action{
		types.StartEditAction{ID: id},
		types.ChangeModeAction{Mode: types.ModeEdit, Data: ctx.CurrentPromptText()},
	}, true
}

func (m *ChipsMode) onCurrent(ctx types.Context, build func(id string) types.Action) ([]types.Action, bool) {
	id := ctx.CurrentPromptID()
	if id == "" {
		return nil, true
	}
	return []types.Action{build(id)}, true
}
