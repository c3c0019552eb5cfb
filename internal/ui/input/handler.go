package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"findanything/internal/ui/input/modes"
	"findanything/internal/ui/input/types"
)

// Placeholder is shown in the empty search box
const Placeholder = "What are you looking for?"

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // Shared text input for text modes
}

func New() *Handler {
	ti := textinput.New()
	ti.Prompt = "🔍 "
	ti.Placeholder = Placeholder
	ti.CharLimit = 200

	h := &Handler{
		currentMode: types.ModeInput,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	// Register all mode handlers
	h.modes[types.ModeInput] = modes.NewInputMode(h.textInput)
	h.modes[types.ModeChips] = modes.NewChipsMode()
	h.modes[types.ModeEdit] = modes.NewEditMode(h.textInput)
	h.modes[types.ModeDrawer] = modes.NewDrawerMode()

	h.textInput.Focus()
	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	var cmd tea.Cmd
	var allActions []types.Action

	// If not consumed and we're in text mode, we'll handle it below
	if !consumed && !h.isTextMode(h.currentMode) {
		return nil, nil
	}

	// Handle mode changes
	for _, action := range actions {
		if changeMode, ok := action.(types.ChangeModeAction); ok {
			cmd = h.switchMode(changeMode.Mode, changeMode.Data, ctx, &allActions)
		} else {
			allActions = append(allActions, action)
		}
	}

	// If we're in a text mode and didn't handle the key, pass it to text input
	if h.isTextMode(h.currentMode) && !consumed {
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		// Always append an update action when in text mode to keep view in sync
		allActions = append(allActions, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return allActions, cmd
}

func (h *Handler) switchMode(mode types.Mode, data string, ctx types.Context, actions *[]types.Action) tea.Cmd {
	if old := h.modes[h.currentMode]; old != nil {
		*actions = append(*actions, old.Exit(ctx)...)
	}
	h.currentMode = mode
	if next := h.modes[h.currentMode]; next != nil {
		*actions = append(*actions, next.Enter(ctx)...)
	}

	if h.isTextMode(mode) {
		h.textInput.Reset()
		if data != "" {
			h.textInput.SetValue(data)
			h.textInput.CursorEnd()
		}
		h.textInput.Focus()
		return textinput.Blink
	}
	h.textInput.Blur()
	return nil
}

func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// ChangeMode changes the current input mode outside of a key press
func (h *Handler) ChangeMode(mode types.Mode, data string, ctx types.Context) []types.Action {
	var actions []types.Action
	h.switchMode(mode, data, ctx, &actions)
	return actions
}

// TextInput returns the shared text input
func (h *Handler) TextInput() *textinput.Model {
	return h.textInput
}

func (h *Handler) isTextMode(mode types.Mode) bool {
	switch mode {
	case types.ModeInput, types.ModeEdit:
		return true
	default:
		return false
	}
}

// Update handles non-keyboard messages for text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.isTextMode(h.currentMode) {
		var cmd tea.Cmd
		*h.textInput, cmd = h.textInput.Update(msg)
		return cmd
	}
	return nil
}
