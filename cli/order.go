package cli

import (
	"fmt"

	"github.com/fxpgr/stonk/bracket"
	"github.com/fxpgr/stonk/models"
	"github.com/fxpgr/stonk/trade"
	"github.com/spf13/cobra"
)

func (a *App) orderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Compute a bracket and place an order",
	}
	cmd.AddCommand(a.sideCommand(models.Buy), a.sideCommand(models.Sell))
	return cmd
}

func (a *App) sideCommand(side models.Side) *cobra.Command {
	f := &orderFlags{}
	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Place a limit buy at the entry price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOrder(cmd, side, f)
		},
	}
	if side == models.Sell {
		cmd.Use = "sell"
		cmd.Short = "Place a stop-loss-limit sell triggered at the stop price"
	}

	flags := cmd.Flags()
	flags.StringVar(&f.symbol, "symbol", "", "symbol, e.g. BTCUSDT or BTC/USDT")
	flags.Var(newDecimalValue(&f.price), "price", "entry price")
	flags.Float64Var(&f.target, "target", 0, "target gain as a fraction of the entry price, 0.05 for 5%")
	flags.Var(newDecimalValue(&f.ratio), "ratio", "reward/risk ratio, the loss is the gain divided by it")
	flags.Var(newDecimalValue(&f.quantity), "quantity", "order quantity")
	if side == models.Sell {
		flags.StringVar(&f.timeInForce, "time-in-force", "", "limit order time in force (GTC, IOC, FOK)")
	}
	flags.BoolVar(&f.autoApprove, "auto-approve", false, "skip the confirmation step")
	for _, name := range []string{"symbol", "price", "target", "ratio", "quantity"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (a *App) runOrder(cmd *cobra.Command, side models.Side, f *orderFlags) error {
	symbol, err := models.NormalizeSymbol(f.symbol)
	if err != nil {
		return err
	}
	levels, err := bracket.ComputeLevels(f.price, f.target, f.ratio)
	if err != nil {
		return err
	}
	intent := models.OrderIntent{
		Symbol:        symbol,
		Side:          side,
		EntryPrice:    f.price,
		TargetPercent: f.target,
		Ratio:         f.ratio,
		Quantity:      f.quantity,
		TimeInForce:   f.timeInForce,
		AutoApprove:   f.autoApprove,
	}
	if err := intent.Validate(); err != nil {
		return err
	}

	client, err := a.NewClient(a.cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	submitter := trade.NewSubmitter(client,
		trade.WithOutput(out),
		trade.WithRecvWindow(a.cfg.RecvWindow),
		trade.WithDefaultTimeInForce(a.cfg.DefaultTimeInForce))

	result, err := submitter.Submit(cmd.Context(), intent, levels, promptConfirm(cmd.InOrStdin(), out, a.IsTerminal()))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\n"+styleResult(result))
	if a.verbose {
		printRaw(out, result.Raw)
	}
	return nil
}
