package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/raykavin/strategycore/pkg/config"
	"github.com/raykavin/strategycore/pkg/core"
	"github.com/raykavin/strategycore/pkg/engine"
	"github.com/raykavin/strategycore/pkg/notify"
	"github.com/raykavin/strategycore/pkg/registry"
	"github.com/raykavin/strategycore/pkg/specfeed"
	"github.com/raykavin/strategycore/pkg/storage"
)

func buildRunCmd() *cobra.Command {
	var (
		candleFile   string
		pair         string
		equity       float64
		minQuantity  float64
		quantityStep float64
		liveSpec     bool
		statePath    string
		journalDSN   string
		pollEvery    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Poll a growing candle file, deciding and persisting state on every new closed bar",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := mustLogger()

			runtimeCfg, err := config.LoadRuntimeConfig()
			if err != nil {
				return fmt.Errorf("failed to load runtime config: %w", err)
			}

			sink, err := notify.NewTelegram(core.TelegramSettings{
				Enabled: runtimeCfg.TelegramEnabled,
				Token:   runtimeCfg.TelegramToken,
				Users:   runtimeCfg.TelegramUsers,
			}, log)
			if err != nil {
				return fmt.Errorf("failed to set up telegram sink: %w", err)
			}

			store, err := storage.FromFile(statePath)
			if err != nil {
				return err
			}
			defer store.Close()

			var journal *storage.SQLJournal
			if journalDSN != "" {
				journal, err = storage.FromSQLite(journalDSN)
				if err != nil {
					return fmt.Errorf("failed to open decision journal: %w", err)
				}
				defer journal.Close()
			}

			reg := registry.New()
			prevState, err := store.Load(pair)
			if err != nil {
				return fmt.Errorf("failed to load trade state: %w", err)
			}
			reg.SetState(pair, prevState)

			cfg := config.Default()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid strategy config: %w", err)
			}
			eng := engine.New(cfg)
			spec := core.ContractSpec{MinQuantity: minQuantity, QuantityStep: quantityStep}

			ctx, cancel := context.WithCancel(cmd.Context())

			if liveSpec {
				fetched, err := specfeed.NewBinanceFutures("", "").ContractSpec(ctx, pair)
				if err != nil {
					cancel()
					return fmt.Errorf("failed to fetch live contract spec: %w", err)
				}
				spec = fetched
				log.Infof("%s: fetched live contract spec min_qty=%v qty_step=%v", pair, spec.MinQuantity, spec.QuantityStep)
			}

			setupSignalHandling(cancel)

			return pollLoop(ctx, log, eng, reg, store, journal, sink, pair, candleFile, equity, spec, pollEvery)
		},
	}

	cmd.Flags().StringVarP(&candleFile, "candles", "c", "", "Path to a candle CSV file, re-read on every poll")
	cmd.Flags().StringVarP(&pair, "pair", "p", "", "Trading pair (e.g. BTCUSDT)")
	cmd.Flags().Float64VarP(&equity, "equity", "e", 0, "Account equity in quote currency")
	cmd.Flags().Float64Var(&minQuantity, "min-quantity", 0.001, "Contract minimum orderable quantity (ignored when --live-spec is set)")
	cmd.Flags().Float64Var(&quantityStep, "quantity-step", 0.001, "Contract quantity step (ignored when --live-spec is set)")
	cmd.Flags().BoolVar(&liveSpec, "live-spec", false, "Fetch the contract spec from Binance futures exchange-info instead of --min-quantity/--quantity-step")
	cmd.Flags().StringVarP(&statePath, "state", "s", "./strategycore_state.db", "Path to the trade-state database")
	cmd.Flags().StringVar(&journalDSN, "journal-dsn", "", "Path to a SQLite decision-journal database; disabled when empty")
	cmd.Flags().DurationVar(&pollEvery, "interval", 5*time.Minute, "Poll interval")

	cmd.MarkFlagRequired("candles")
	cmd.MarkFlagRequired("pair")
	cmd.MarkFlagRequired("equity")

	return cmd
}

func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Println("\nreceived shutdown signal")
		cancel()
	}()
}

func pollLoop(
	ctx context.Context,
	log interface {
		Infof(string, ...any)
		Errorf(string, ...any)
	},
	eng engine.Engine,
	reg *registry.Registry,
	store *storage.StateStore,
	journal *storage.SQLJournal,
	sink *notify.Telegram,
	pair, candleFile string,
	equity float64,
	spec core.ContractSpec,
	pollEvery time.Duration,
) error {
	ticker := time.NewTicker(pollEvery)
	defer ticker.Stop()

	lastProcessed := 0
	for {
		candles, err := loadCandlesCSV(candleFile)
		if err != nil {
			log.Errorf("failed to load candles: %v", err)
		} else if len(candles) > lastProcessed {
			lastProcessed = len(candles)
			out, newState := eng.ProcessCandle(candles, equity, spec, reg.State(pair))
			reg.SetState(pair, newState)

			if err := store.Save(pair, newState); err != nil {
				log.Errorf("failed to persist trade state: %v", err)
			}

			if journal != nil {
				if err := journal.Record(pair, time.Now(), out); err != nil {
					log.Errorf("failed to journal decision: %v", err)
				}
			}

			log.Infof("%s: signal=%s reason=%s", pair, out.Signal, out.Reason)
			sink.OnDecision(pair, out)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
