package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"findanything/internal/ui/input/types"
)

// EditMode rewrites the text of the chip under the cursor
type EditMode struct {
	TextInputMode
}

func NewEditMode(ti *textinput.Model) *EditMode {
	return &EditMode{TextInputMode: NewTextInputMode(types.ModeEdit, "edit", ti)}
}

func (m *EditMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc":
		return []types.Action{
			types.CancelTextAction{},
			types.ChangeModeAction{Mode: types.ModeChips},
		}, true
	case "enter":
		return []types.Action{
			types.SubmitTextAction{Text: m.value(), Mode: types.ModeEdit},
			types.ChangeModeAction{Mode: types.ModeChips},
		}, true
	default:
		return nil, false
	}
}
