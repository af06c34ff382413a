// Package cli wires the order commands to the calculator, the exchange
// client and the submission workflow.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/fxpgr/stonk/api/private"
	"github.com/fxpgr/stonk/config"
	"github.com/fxpgr/stonk/logger"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type App struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
	// IsTerminal reports whether In is interactive.
	IsTerminal func() bool
	// NewClient builds the exchange handle, once per run.
	NewClient func(cfg *config.AppConfig) (private.OrderClient, error)

	configPath string
	verbose    bool
	cfg        *config.AppConfig
}

func NewApp() *App {
	return &App{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		NewClient: newExchangeClient,
	}
}

func newExchangeClient(cfg *config.AppConfig) (private.OrderClient, error) {
	return private.NewClient(cfg.Exchange, cfg.APIKeyFunc(), cfg.SecretKeyFunc(), private.Options{
		BaseURL:   cfg.BaseURL,
		TestOrder: cfg.TestOrder,
		Timeout:   cfg.Timeout,
	})
}

func (a *App) Command() *cobra.Command {
	v := config.New()
	root := &cobra.Command{
		Use:           "stonk",
		Short:         "Place bracket-priced orders on a crypto exchange",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, a.configPath)
			if err != nil {
				return err
			}
			if err := logger.Init(cfg.LogLevel); err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.SetIn(a.In)
	root.SetOut(a.Out)
	root.SetErr(a.Err)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./stonk.yaml or ~/.config/stonk/stonk.yaml)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("test-order", true, "send orders to the exchange's test endpoint")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "print the exchange response")
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("test_order", flags.Lookup("test-order"))

	root.AddCommand(a.orderCommand())
	return root
}

// Run executes args and returns the process exit status.
func (a *App) Run(ctx context.Context, args []string) int {
	cmd := a.Command()
	cmd.SetArgs(args)
	defer logger.Sync()
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Get().Debugw("command failed", "error", err)
		printError(a.Err, err)
		return 1
	}
	return 0
}

func Execute() int {
	return NewApp().Run(context.Background(), os.Args[1:])
}
