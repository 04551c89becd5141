package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sarthakvk/tradedeck/config"
	"github.com/sarthakvk/tradedeck/internal/gateway"
	"github.com/sarthakvk/tradedeck/internal/log"
)

// NewRootCmd creates the root command. Running it with no subcommand
// starts the interactive dashboard.
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "tradedeck",
		Short: "TradeDeck - terminal client for the trading dashboard",
		Long: `TradeDeck is a terminal client for a trade-approval workflow: review
pending trade recommendations, approve or reject them, and inspect
positions, orders, reports, and option chains.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fromURL, _ := cmd.Flags().GetString("from-url")
			return runDashboard(cfg, fromURL)
		},
	}

	rootCmd.Flags().String("from-url", "", "Post-login redirect URL to consume (auth=success notice)")

	rootCmd.AddCommand(newTabCmd(cfg, TabPending, "pending", "List pending trade cards"))
	rootCmd.AddCommand(newTabCmd(cfg, TabPositions, "positions", "List open positions"))
	rootCmd.AddCommand(newTabCmd(cfg, TabOrders, "orders", "List orders"))
	rootCmd.AddCommand(newTabCmd(cfg, TabReports, "reports", "Show EOD and monthly reports"))
	rootCmd.AddCommand(newChainCmd(cfg))
	rootCmd.AddCommand(newGenerateCmd(cfg))
	rootCmd.AddCommand(newLoginCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(cfg))

	return rootCmd
}

func buildController(cfg *config.Config) (*Controller, *zap.Logger, error) {
	logger, err := log.NewLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	gw := gateway.NewClient(cfg.APIBaseURL, cfg.UserID)
	render := NewRenderer(os.Stdout, cfg.NoClear)
	controller := NewController(cfg, gw, SurveyPrompter{}, render, logger)
	return controller, logger, nil
}

// runDashboard starts the interactive loop. User commands and fetch
// completions both flow through the controller's single Dispatch function;
// input is read on a separate goroutine and posted as events.
func runDashboard(cfg *config.Config, fromURL string) error {
	controller, logger, err := buildController(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()
	render := controller.render

	render.Banner()

	if fromURL != "" {
		cleaned := controller.ConsumeAuthRedirect(fromURL)
		if cleaned != fromURL {
			logger.Info("consumed auth redirect", zap.String("url", cleaned))
		}
	}

	controller.Startup(ctx)

	input := make(chan string)
	ready := make(chan struct{}, 1)
	go readCommands(os.Stdin, os.Stdout, ready, input)
	ready <- struct{}{}

	for {
		select {
		case ev := <-controller.Events():
			if err := controller.Dispatch(ctx, ev); err != nil {
				logger.Error("dispatch failed", zap.Error(err))
			}
		case line, ok := <-input:
			if !ok {
				return nil
			}
			if line != "" {
				ev, err := parseCommand(controller, line)
				if err != nil {
					render.Error(err.Error())
				} else if err := controller.Dispatch(ctx, ev); err != nil {
					if err == ErrQuit {
						fmt.Println("👋 Bye!")
						return nil
					}
					logger.Error("dispatch failed", zap.Error(err))
					render.Error(err.Error())
				}
			}
			ready <- struct{}{}
		}
	}
}

// readCommands delivers one command line per ready signal. The next read
// is only issued after the main loop signals that dispatch has finished,
// so no read is pending on stdin while a survey prompt owns it.
func readCommands(r io.Reader, out io.Writer, ready <-chan struct{}, lines chan<- string) {
	reader := bufio.NewReader(r)
	for range ready {
		fmt.Fprint(out, "📈 tradedeck> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			close(lines)
			return
		}
		lines <- strings.TrimSpace(line)
	}
}

// parseCommand maps a command line to a controller event.
func parseCommand(controller *Controller, line string) (Event, error) {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	if tab, ok := ParseTab(command); ok {
		return Event{Kind: EventTabSelect, Tab: tab}, nil
	}

	switch command {
	case "exit", "quit", "q":
		return Event{Kind: EventQuit}, nil
	case "refresh", "r":
		return Event{Kind: EventRefresh}, nil
	case "generate", "gen":
		return Event{Kind: EventGenerate}, nil
	case "approve", "reject", "explain":
		if len(parts) < 2 {
			return Event{}, fmt.Errorf("usage: %s <card-id>", command)
		}
		cardID, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return Event{}, fmt.Errorf("invalid card id %q", parts[1])
		}
		kind := EventApprove
		if command == "reject" {
			kind = EventReject
		} else if command == "explain" {
			kind = EventExplain
		}
		return Event{Kind: kind, CardID: cardID}, nil
	case "chain":
		symbol, expiry, err := controller.prompter.ChainParams()
		if err != nil {
			return Event{}, fmt.Errorf("option chain load cancelled")
		}
		return Event{Kind: EventLoadChain, Symbol: symbol, Expiry: expiry}, nil
	case "login":
		controller.render.Info("Open this URL in your browser to authenticate:")
		controller.render.Info(controller.gw.LoginURL())
		return Event{Kind: EventNoop}, nil
	case "help", "h", "?":
		controller.render.Banner()
		return Event{Kind: EventNoop}, nil
	}

	return Event{}, fmt.Errorf("unknown command %q, type 'help' for commands", command)
}

// newTabCmd creates a one-shot subcommand that loads a tab, prints it, and
// exits.
func newTabCmd(cfg *config.Config, tab Tab, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOneShot(cfg, Event{Kind: EventTabSelect, Tab: tab})
		},
	}
}

// runOneShot dispatches a single event and waits for its fetch to finish.
func runOneShot(cfg *config.Config, ev Event) error {
	controller, logger, err := buildController(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()
	if err := controller.Dispatch(ctx, ev); err != nil {
		return err
	}
	return drainFetch(ctx, controller)
}

// drainFetch consumes the in-flight fetch completion, if any, so one-shot
// commands print the fetched view before exiting.
func drainFetch(ctx context.Context, controller *Controller) error {
	for _, gen := range controller.gens {
		if gen > 0 {
			done := <-controller.Events()
			return controller.Dispatch(ctx, done)
		}
	}
	return nil
}

func newChainCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain [SYMBOL]",
		Short: "Show the option chain for an underlying",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expiry, _ := cmd.Flags().GetString("expiry")
			return runOneShot(cfg, Event{Kind: EventLoadChain, Symbol: args[0], Expiry: expiry})
		},
	}
	cmd.Flags().String("expiry", "", "Expiry date in YYYY-MM-DD format (nearest if not provided)")
	return cmd
}

func newGenerateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Run server-side signal generation",
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, logger, err := buildController(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx := context.Background()
			if err := controller.Dispatch(ctx, Event{Kind: EventGenerate}); err != nil {
				return err
			}
			// A confirmed run kicks off a pending re-fetch; show its
			// result before exiting.
			return drainFetch(ctx, controller)
		},
	}
}

func newLoginCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Show the broker login URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw := gateway.NewClient(cfg.APIBaseURL, cfg.UserID)
			fmt.Println("Open this URL in your browser to authenticate:")
			fmt.Println(gw.LoginURL())
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("TradeDeck v1.0.0")
			fmt.Println("Terminal client for the trading dashboard")
		},
	}
}

func newConfigCmd(cfg *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("📋 Current TradeDeck Configuration:")
			fmt.Println("═══════════════════════════════════════")
			fmt.Printf("API Base URL:   %s\n", cfg.APIBaseURL)
			fmt.Printf("User ID:        %s\n", cfg.UserID)
			fmt.Printf("Log Directory:  %s\n", cfg.LogDir)
			fmt.Printf("Log Level:      %s\n", cfg.LogLevel)
			fmt.Printf("Debug Mode:     %t\n", cfg.Debug)
		},
	})

	return configCmd
}
