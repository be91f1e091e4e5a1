package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raykavin/strategycore/pkg/config"
	"github.com/raykavin/strategycore/pkg/core"
	"github.com/raykavin/strategycore/pkg/engine"
	"github.com/raykavin/strategycore/pkg/storage"
)

func buildDecideCmd() *cobra.Command {
	var (
		candleFile   string
		pair         string
		equity       float64
		minQuantity  float64
		quantityStep float64
		statePath    string
	)

	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Run ProcessCandle once against a candle file and print the decision",
		RunE: func(cmd *cobra.Command, args []string) error {
			candles, err := loadCandlesCSV(candleFile)
			if err != nil {
				return err
			}

			store, err := storage.FromFile(statePath)
			if err != nil {
				return err
			}
			defer store.Close()

			prevState, err := store.Load(pair)
			if err != nil {
				return fmt.Errorf("failed to load trade state: %w", err)
			}

			cfg := config.Default()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid strategy config: %w", err)
			}

			spec := core.ContractSpec{MinQuantity: minQuantity, QuantityStep: quantityStep}
			out, newState := engine.New(cfg).ProcessCandle(candles, equity, spec, prevState)

			if err := store.Save(pair, newState); err != nil {
				return fmt.Errorf("failed to persist trade state: %w", err)
			}

			printDecision(pair, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&candleFile, "candles", "c", "", "Path to a candle CSV file")
	cmd.Flags().StringVarP(&pair, "pair", "p", "", "Trading pair (e.g. BTCUSDT)")
	cmd.Flags().Float64VarP(&equity, "equity", "e", 0, "Account equity in quote currency")
	cmd.Flags().Float64Var(&minQuantity, "min-quantity", 0.001, "Contract minimum orderable quantity")
	cmd.Flags().Float64Var(&quantityStep, "quantity-step", 0.001, "Contract quantity step")
	cmd.Flags().StringVarP(&statePath, "state", "s", "./strategycore_state.db", "Path to the trade-state database")

	cmd.MarkFlagRequired("candles")
	cmd.MarkFlagRequired("pair")
	cmd.MarkFlagRequired("equity")

	return cmd
}

func printDecision(pair string, out core.StrategyOutput) {
	fmt.Printf("%s: signal=%s reason=%s\n", pair, out.Signal, out.Reason)
	if out.ProposedPosition == nil {
		return
	}
	p := out.ProposedPosition
	fmt.Printf(
		"  side=%s qty=%.8f leverage=%dx entry=%.8f stop=%.8f target=%.8f\n",
		p.Side, p.Quantity, p.Leverage, p.EntryPrice, p.StopLoss, p.TakeProfit,
	)
}
