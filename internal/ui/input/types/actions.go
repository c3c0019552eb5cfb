package types

// Navigation actions
type NavigateAction struct {
	Direction string // "left", "right", "up", "down"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data string // initial text for text modes
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Prompt actions
type StartEditAction struct {
	ID string
}

func (a StartEditAction) Type() string { return "start_edit" }

type ToggleAction struct {
	ID string
}

func (a ToggleAction) Type() string { return "toggle" }

type DeleteAction struct {
	ID string
}

func (a DeleteAction) Type() string { return "delete" }

// Drawer actions
type OpenDrawerAction struct{}

func (a OpenDrawerAction) Type() string { return "open_drawer" }

type CloseDrawerAction struct{}

func (a CloseDrawerAction) Type() string { return "close_drawer" }

type ActivateDrawerRowAction struct{}

func (a ActivateDrawerRowAction) Type() string { return "activate_drawer_row" }

type AdjustPriceAction struct {
	Steps int
}

func (a AdjustPriceAction) Type() string { return "adjust_price" }

// View actions
type ViewResultsAction struct{}

func (a ViewResultsAction) Type() string { return "view_results" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// Quit action
type QuitAction struct {
	Force bool
}

func (a QuitAction) Type() string { return "quit" }
