package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"findanything/internal/config"
	"findanything/internal/domain"
	"findanything/internal/eventbus"
	"findanything/internal/logging"
	"findanything/internal/logic"
	"findanything/internal/provider"
	"findanything/internal/search"
	"findanything/internal/ui"
	"findanything/internal/ui/views"
)

type rootFlags struct {
	configPath   string
	providerURL  string
	logFile      string
	debug        bool
	settleDelay  time.Duration
	discardStale bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:           "findanything",
		Short:         "Search a product catalog by stacking phrases",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, &flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/findanything/config.toml)")
	pf.StringVar(&flags.providerURL, "provider-url", "", "results provider endpoint")
	pf.StringVar(&flags.logFile, "log-file", "", "log file")
	pf.BoolVar(&flags.debug, "debug", false, "debug logging")
	pf.DurationVar(&flags.settleDelay, "settle-delay", 0, "delay before searching after an edit, toggle or delete")
	pf.BoolVar(&flags.discardStale, "discard-stale", false, "ignore responses that arrive after a newer search started")

	root.AddCommand(newQueryCmd(&flags))
	return root
}

func newQueryCmd(flags *rootFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "query PHRASE...",
		Short: "Run one search with the given phrases and print the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, flags, args, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

// app bundles the services shared by the TUI and the query command
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	bus    eventbus.EventBus
	search *search.Service
}

func newApp(flags *rootFlags) (*app, error) {
	bootLog := zap.NewNop()
	bus := eventbus.New(bootLog)

	configSvc := config.NewConfigServiceWithBus(bus, flags.configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyFlags(cfg, flags)
	if err := cfg.Validate(); err != nil {
		bus.Close()
		return nil, err
	}

	logger, err := logging.New(logging.Options{File: cfg.Log.File, Debug: cfg.Log.Debug})
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("open log: %w", err)
	}
	logger.Info("config loaded",
		zap.String("path", configSvc.Path()),
		zap.String("provider", cfg.Provider.URL),
		zap.Duration("settle_delay", cfg.Search.SettleDelay.Duration),
	)

	client := provider.NewClient(provider.Options{
		URL:       cfg.Provider.URL,
		Timeout:   cfg.Provider.Timeout.Duration,
		Retries:   cfg.Provider.Retries,
		RateLimit: cfg.Provider.RateLimit,
		Burst:     cfg.Provider.Burst,
		Logger:    logger.Named("provider"),
	})

	svc := search.NewService(logic.NewMemoryPromptStore(), client, provider.DefaultFallback(), bus, search.Options{
		SettleDelay:    cfg.Search.SettleDelay.Duration,
		DiscardStale:   cfg.Search.DiscardStale,
		CoalesceSettle: cfg.Search.CoalesceSettle,
		Logger:         logger.Named("search"),
	})

	return &app{cfg: cfg, logger: logger, bus: bus, search: svc}, nil
}

func (a *app) Close() {
	a.search.Close()
	a.bus.Close()
	_ = a.logger.Sync()
}

func applyFlags(cfg *config.Config, flags *rootFlags) {
	if flags.providerURL != "" {
		cfg.Provider.URL = flags.providerURL
	}
	if flags.logFile != "" {
		cfg.Log.File = flags.logFile
	}
	if flags.debug {
		cfg.Log.Debug = true
	}
	if flags.settleDelay > 0 {
		cfg.Search.SettleDelay = config.Duration{Duration: flags.settleDelay}
	}
	if flags.discardStale {
		cfg.Search.DiscardStale = true
	}
}

func runTUI(cmd *cobra.Command, flags *rootFlags) error {
	a, err := newApp(flags)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	uiModel := ui.NewModel(a.search, a.cfg, a.logger.Named("ui"))
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Create event channel for UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	for _, et := range eventbus.AllEventTypes {
		a.bus.Subscribe(et, func(e eventbus.DomainEvent) {
			select {
			case eventChan <- e:
			default:
				a.logger.Warn("event channel full, dropping event", zap.String("type", string(e.Type())))
			}
		})
	}

	// Start forwarding events to UI in background
	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	if os.Getenv("FINDANYTHING_E2E_TEST") == "1" {
		fmt.Println("__READY__")
	}

	a.logger.Info("starting UI")
	_, runErr := p.Run()
	a.logger.Info("UI exited", zap.Error(runErr))

	// stop in-flight searches before the forwarder goes away
	a.search.Close()
	a.bus.Close()
	close(eventChan)
	<-done

	if runErr != nil && !isInterrupt(ctx, runErr) {
		return fmt.Errorf("run UI: %w", runErr)
	}
	return nil
}

func isInterrupt(ctx context.Context, err error) bool {
	return ctx.Err() != nil || err == tea.ErrProgramKilled
}

func runQuery(cmd *cobra.Command, flags *rootFlags, phrases []string, asJSON bool) error {
	// every submit dispatches, so only the newest search may land
	flags.discardStale = true
	a, err := newApp(flags)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, phrase := range phrases {
		if _, _, err := a.search.Submit(phrase); err != nil {
			return err
		}
	}

	wait := a.cfg.Provider.Timeout.Duration
	if wait <= 0 {
		wait = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), wait*time.Duration(a.cfg.Provider.Retries+2))
	defer cancel()
	if err := a.search.Idle(ctx); err != nil {
		return fmt.Errorf("wait for results: %w", err)
	}

	st := a.search.State()
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(queryOutput{Query: st.Query, Degraded: st.Degraded, Results: st.Results})
	}

	fmt.Fprintf(out, "query: %s\n", st.Query)
	if st.Degraded {
		fmt.Fprintln(out, "provider unavailable, showing sample items")
	}
	for i, r := range st.Results {
		fmt.Fprintf(out, "%2d. %s  %s  %s  %s\n", i+1, r.Name, r.Brand, views.FormatPrice(r), views.FormatRating(r))
	}
	if len(st.Results) == 0 {
		fmt.Fprintln(out, "no results")
	}
	return nil
}

type queryOutput struct {
	Query    string          `json:"query"`
	Degraded bool            `json:"degraded"`
	Results  []domain.Result `json:"results"`
}
