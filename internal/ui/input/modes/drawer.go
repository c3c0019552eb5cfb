package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"findanything/internal/ui/input/types"
)

// DrawerMode edits the filter drawer
type DrawerMode struct{}

func NewDrawerMode() *DrawerMode {
	return &DrawerMode{}
}

func (m *DrawerMode) Name() string {
	return "filters"
}

func (m *DrawerMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *DrawerMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *DrawerMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "up", "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case "down", "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case "left", "h":
		return []types.Action{types.AdjustPriceAction{Steps: -1}}, true
	case "right", "l":
		return []types.Action{types.AdjustPriceAction{Steps: 1}}, true
	case " ", "enter":
		return []types.Action{types.ActivateDrawerRowAction{}}, true
	case "esc", "f", "ctrl+f", "q":
		return []types.Action{types.CloseDrawerAction{}}, true
	}
	return nil, true
}
