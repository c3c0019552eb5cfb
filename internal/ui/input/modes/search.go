package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"findanything/internal/ui/input/types"
)

// InputMode types a new phrase into the search box
type InputMode struct {
	TextInputMode
}

func NewInputMode(ti *textinput.Model) *InputMode {
	return &InputMode{TextInputMode: NewTextInputMode(types.ModeInput, "search", ti)}
}

func (m *InputMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "enter":
		// re-entering the mode clears the box for the next phrase
		return []types.Action{
			types.SubmitTextAction{Text: m.value(), Mode: types.ModeInput},
			types.ChangeModeAction{Mode: types.ModeInput},
		}, true
	case "esc":
		if m.value() != "" {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeInput}}, true
		}
		if ctx.HasPrompts() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeChips}}, true
		}
		return nil, true
	case "tab", "down":
		if ctx.HasPrompts() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeChips}}, true
		}
		return nil, true
	case "ctrl+f":
		return []types.Action{
			types.OpenDrawerAction{},
			types.ChangeModeAction{Mode: types.ModeDrawer},
		}, true
	case "ctrl+v":
		if ctx.HasResults() {
			return []types.Action{types.ViewResultsAction{}}, true
		}
		return nil, true
	default:
		// Let the main handler update the text input
		return nil, false
	}
}
