package ui

import (
	"github.com/charmbracelet/bubbles/key"

	inputtypes "findanything/internal/ui/input/types"
)

// keyMap describes the bindings shown in the footer. Dispatch itself lives in
// the input modes; these only feed the help view.
type keyMap struct {
	mode inputtypes.Mode

	Submit     key.Binding
	Chips      key.Binding
	Filters    key.Binding
	Move       key.Binding
	Toggle     key.Binding
	Edit       key.Binding
	Delete     key.Binding
	View       key.Binding
	Back       key.Binding
	Save       key.Binding
	Cancel     key.Binding
	DrawerMove key.Binding
	Price      key.Binding
	Activate   key.Binding
	Close      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Chips:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "prompts")),
		Filters:    key.NewBinding(key.WithKeys("ctrl+f", "f"), key.WithHelp("ctrl+f", "filters")),
		Move:       key.NewBinding(key.WithKeys("left", "right", "h", "l"), key.WithHelp("←/→", "move")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d", "x", "delete", "backspace"), key.WithHelp("d", "delete")),
		View:       key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view all")),
		Back:       key.NewBinding(key.WithKeys("esc", "tab", "/", "i"), key.WithHelp("/", "new phrase")),
		Save:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		DrawerMove: key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("↑/↓", "move")),
		Price:      key.NewBinding(key.WithKeys("left", "right", "h", "l"), key.WithHelp("←/→", "price")),
		Activate:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "choose")),
		Close:      key.NewBinding(key.WithKeys("esc", "f"), key.WithHelp("esc", "close")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap for the current mode
func (k keyMap) ShortHelp() []key.Binding {
	switch k.mode {
	case inputtypes.ModeChips:
		return []key.Binding{k.Move, k.Toggle, k.Edit, k.Delete, k.View, k.Back, k.Help, k.Quit}
	case inputtypes.ModeEdit:
		return []key.Binding{k.Save, k.Cancel}
	case inputtypes.ModeDrawer:
		return []key.Binding{k.DrawerMove, k.Price, k.Activate, k.Close}
	default:
		return []key.Binding{k.Submit, k.Chips, k.Filters}
	}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Chips, k.Filters},
		{k.Move, k.Toggle, k.Edit, k.Delete, k.View},
		{k.DrawerMove, k.Price, k.Activate, k.Close},
		{k.Help, k.Quit},
	}
}
