package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"findanything/internal/config"
	"findanything/internal/ui/commands"
	"findanything/internal/ui/handlers"
	"findanything/internal/ui/input"
	inputtypes "findanything/internal/ui/input/types"
	"findanything/internal/ui/state"
	"findanything/internal/ui/views"
)

// Model represents the UI state
type Model struct {
	config *config.Config
	state  *state.AppState // centralized state
	search commands.Orchestrator
	logger *zap.Logger

	// UI-specific state not in AppState
	width       int
	height      int
	help        help.Model
	keys        keyMap
	spinner     spinner.Model
	inPagerMode bool // tracks if we're currently in pager mode

	// Handlers
	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	eventHandler *handlers.EventHandler
	cmdExecutor  *commands.Executor
	inputHandler *input.Handler
	inputCtx     *input.ModelContext
	pager        *PagerOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(search commands.Orchestrator, cfg *config.Config, logger *zap.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	appState := state.NewAppState()
	appState.ShowDegraded = cfg.UI.ShowDegraded
	if cfg.UI.Columns > 0 {
		appState.Columns = cfg.UI.Columns
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

	m := &Model{
		config:       cfg,
		state:        appState,
		search:       search,
		logger:       logger,
		help:         help.New(),
		keys:         newKeyMap(),
		spinner:      sp,
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		inputHandler: input.New(),
		inputCtx:     input.NewModelContext(appState),
		pager:        NewPagerOps(nil),
	}

	m.eventHandler = handlers.NewEventHandler(appState, search, func() tea.Cmd { return m.spinner.Tick })
	m.cmdExecutor = commands.NewExecutor(appState, search)
	m.cmdExecutor.Refresh()

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// State exposes the application state, mostly for tests
func (m *Model) State() *state.AppState {
	return m.state
}

// Mode returns the current input mode
func (m *Model) Mode() inputtypes.Mode {
	return m.inputHandler.CurrentMode()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		actions, cmd := m.inputHandler.HandleKey(msg, m.inputCtx)
		var cmds []tea.Cmd
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if c := m.processAction(action); c != nil {
				cmds = append(cmds, c)
			}
		}
		m.syncMode()
		return m, tea.Batch(cmds...)
	}

	return m.handleNonKeyboardMsg(msg)
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		// Process domain events
		cmd := m.eventHandler.HandleEvent(msg.Event)
		m.syncMode()
		return m, cmd

	case spinner.TickMsg:
		// stop ticking once nothing is in flight
		if !m.state.Search.IsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pagerMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed", zap.String("what", msg.what), zap.Error(msg.err))
			if msg.what == "help" {
				m.state.ShowHelp = true
			}
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.state.StatusMessage = ""
		return m, nil

	default:
		// cursor blink and other text input messages
		return m, m.inputHandler.Update(msg)
	}
}

func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.SubmitTextAction:
		switch a.Mode {
		case inputtypes.ModeInput:
			if strings.TrimSpace(a.Text) == "" {
				return nil
			}
			return m.cmdExecutor.ExecuteSubmit(a.Text)
		case inputtypes.ModeEdit:
			id := m.state.EditingID
			m.state.EditingID = ""
			if id == "" {
				return nil
			}
			return m.cmdExecutor.ExecuteEdit(id, a.Text)
		}

	case inputtypes.CancelTextAction:
		m.state.EditingID = ""

	case inputtypes.StartEditAction:
		m.state.EditingID = a.ID

	case inputtypes.NavigateAction:
		switch a.Direction {
		case "left":
			m.state.MoveChipCursor(-1)
		case "right":
			m.state.MoveChipCursor(1)
		case "up":
			m.state.MoveDrawerCursor(-1)
		case "down":
			m.state.MoveDrawerCursor(1)
		}

	case inputtypes.ToggleAction:
		return m.cmdExecutor.ExecuteToggle(a.ID)

	case inputtypes.DeleteAction:
		return m.cmdExecutor.ExecuteDelete(a.ID)

	case inputtypes.OpenDrawerAction:
		m.state.OpenDrawer()

	case inputtypes.CloseDrawerAction:
		m.state.CloseDrawer()
		m.leaveDrawer()

	case inputtypes.ActivateDrawerRowAction:
		if m.state.ActivateDrawerRow() {
			m.leaveDrawer()
			m.state.StatusMessage = "Filters applied"
			return clearStatusAfter(2 * time.Second)
		}

	case inputtypes.AdjustPriceAction:
		m.state.AdjustPrice(a.Steps)

	case inputtypes.ViewResultsAction:
		content := m.helpRenderer.RenderResultsTable(m.state.Search.Query, m.state.Search)
		return m.showInPager("results", content)

	case inputtypes.ToggleHelpAction:
		if m.program == nil {
			m.state.ShowHelp = !m.state.ShowHelp
			return nil
		}
		return m.showInPager("help", m.helpRenderer.RenderHelpContent())

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// leaveDrawer returns to the prompts when there are any, else to the search box
func (m *Model) leaveDrawer() {
	next := inputtypes.ModeInput
	if len(m.state.Prompts) > 0 {
		next = inputtypes.ModeChips
	}
	m.inputHandler.ChangeMode(next, "", m.inputCtx)
}

// syncMode keeps the input mode valid for the current snapshots and mirrors it into Focus
func (m *Model) syncMode() {
	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeChips:
		if len(m.state.Prompts) == 0 {
			m.inputHandler.ChangeMode(inputtypes.ModeInput, "", m.inputCtx)
		}
	case inputtypes.ModeEdit:
		// the prompt under edit was deleted underneath us
		if m.state.EditingID == "" {
			m.inputHandler.ChangeMode(inputtypes.ModeChips, "", m.inputCtx)
			if len(m.state.Prompts) == 0 {
				m.inputHandler.ChangeMode(inputtypes.ModeInput, "", m.inputCtx)
			}
		}
	}

	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeChips, inputtypes.ModeEdit:
		m.state.Focus = state.FocusChips
	case inputtypes.ModeDrawer:
		m.state.Focus = state.FocusDrawer
	default:
		m.state.Focus = state.FocusInput
	}
}

// showInPager returns a command that shows content using ov pager
func (m *Model) showInPager(what, content string) tea.Cmd {
	if m.program == nil {
		m.state.StatusMessage = "Pager unavailable"
		return clearStatusAfter(2 * time.Second)
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.Show(content)
		m.program.Send(resumeRenderingMsg{})
		return pagerMsg{what: what, err: err}
	}
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	mode := m.inputHandler.CurrentMode()
	ti := m.inputHandler.TextInput()

	inputView := ti.View()
	editView := ""
	if mode == inputtypes.ModeEdit {
		editView = ti.View()
		inputView = ti.Prompt + input.Placeholder
	} else if mode != inputtypes.ModeInput {
		inputView = ti.Prompt + input.Placeholder
	}

	m.keys.mode = mode
	helpView := m.help.View(m.keys)
	if m.state.ShowHelp {
		m.help.ShowAll = true
		helpView = m.help.View(m.keys)
		m.help.ShowAll = false
	}

	return m.renderer.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Prompts:       m.state.Prompts,
		Search:        m.state.Search,
		Focus:         m.state.Focus,
		ChipCursor:    m.state.ChipCursor,
		EditingID:     m.state.EditingID,
		InputView:     inputView,
		EditView:      editView,
		Spinner:       m.spinner.View(),
		Drawer:        m.state.Drawer,
		Filters:       m.state.Filters,
		ShowDegraded:  m.state.ShowDegraded,
		Columns:       m.state.Columns,
		StatusMessage: m.state.StatusMessage,
		HelpView:      helpView,
	})
}
