package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/raykavin/strategycore/pkg/config"
	"github.com/raykavin/strategycore/pkg/core"
	"github.com/raykavin/strategycore/pkg/engine"
	"github.com/raykavin/strategycore/pkg/indicator"
)

func buildBacktestCmd() *cobra.Command {
	var (
		candleFile   string
		pair         string
		equity       float64
		minQuantity  float64
		quantityStep float64
	)

	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Replay a candle file through ProcessCandle one bar at a time and report the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			candles, err := loadCandlesCSV(candleFile)
			if err != nil {
				return err
			}

			cfg := config.Default()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid strategy config: %w", err)
			}

			spec := core.ContractSpec{MinQuantity: minQuantity, QuantityStep: quantityStep}
			report := runBacktest(engine.New(cfg), candles, equity, spec, pair)

			fmt.Println(report.String())
			report.plotReturns()
			return nil
		},
	}

	cmd.Flags().StringVarP(&candleFile, "candles", "c", "", "Path to a candle CSV file")
	cmd.Flags().StringVarP(&pair, "pair", "p", "BACKTEST", "Label for the report")
	cmd.Flags().Float64VarP(&equity, "equity", "e", 1000, "Starting account equity")
	cmd.Flags().Float64Var(&minQuantity, "min-quantity", 0.001, "Contract minimum orderable quantity")
	cmd.Flags().Float64Var(&quantityStep, "quantity-step", 0.001, "Contract quantity step")

	cmd.MarkFlagRequired("candles")

	return cmd
}

// backtestReport accumulates the per-trade outcomes a single forward
// pass over a candle file produces: win/loss returns, exit-reason
// tallies, and entry signal counts.
type backtestReport struct {
	Pair        string
	WinReturns  []float64
	LoseReturns []float64
	ExitCounts  map[core.Reason]int
	EntryCounts map[core.Signal]int
	EntryADXSum float64
	EntryADXN   int
	EntryRSISum float64
	EntryRSIN   int
}

func newBacktestReport(pair string) *backtestReport {
	return &backtestReport{
		Pair:        pair,
		ExitCounts:  make(map[core.Reason]int),
		EntryCounts: make(map[core.Signal]int),
	}
}

func (r *backtestReport) recordEntry(signal core.Signal, adx, rsi float64) {
	r.EntryCounts[signal]++
	if indicator.IsDefined(adx) && adx != 0 {
		r.EntryADXSum += adx
		r.EntryADXN++
	}
	if indicator.IsDefined(rsi) && rsi != 0 {
		r.EntryRSISum += rsi
		r.EntryRSIN++
	}
}

func (r *backtestReport) averageEntryADX() float64 {
	if r.EntryADXN == 0 {
		return 0
	}
	return r.EntryADXSum / float64(r.EntryADXN)
}

func (r *backtestReport) averageEntryRSI() float64 {
	if r.EntryRSIN == 0 {
		return 0
	}
	return r.EntryRSISum / float64(r.EntryRSIN)
}

func (r *backtestReport) recordExit(reason core.Reason, returnPct float64) {
	r.ExitCounts[reason]++
	if returnPct >= 0 {
		r.WinReturns = append(r.WinReturns, returnPct)
	} else {
		r.LoseReturns = append(r.LoseReturns, returnPct)
	}
}

func (r *backtestReport) trades() int {
	return len(r.WinReturns) + len(r.LoseReturns)
}

func (r *backtestReport) winPercentage() float64 {
	if r.trades() == 0 {
		return 0
	}
	return float64(len(r.WinReturns)) / float64(r.trades()) * 100
}

// String formats the report as a two-column text table.
func (r *backtestReport) String() string {
	tableString := &strings.Builder{}
	table := tablewriter.NewWriter(tableString)

	data := [][]string{
		{"Pair", r.Pair},
		{"Trades", fmt.Sprintf("%d", r.trades())},
		{"Wins", fmt.Sprintf("%d", len(r.WinReturns))},
		{"Losses", fmt.Sprintf("%d", len(r.LoseReturns))},
		{"% Win", fmt.Sprintf("%.1f", r.winPercentage())},
		{"Avg Entry ADX", fmt.Sprintf("%.1f", r.averageEntryADX())},
		{"Avg Entry RSI", fmt.Sprintf("%.1f", r.averageEntryRSI())},
	}
	for _, reason := range []core.Reason{
		core.ReasonStopHit, core.ReasonTPHit, core.ReasonTrailingStop, core.ReasonTimeExit,
	} {
		data = append(data, []string{string(reason), fmt.Sprintf("%d", r.ExitCounts[reason])})
	}

	table.AppendBulk(data)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})
	table.Render()

	return tableString.String()
}

// plotReturns prints an ASCII histogram of the per-trade return
// percentages.
func (r *backtestReport) plotReturns() {
	all := append(append([]float64{}, r.WinReturns...), r.LoseReturns...)
	if len(all) < 2 {
		return
	}
	hist := histogram.Hist(15, all)
	histogram.Fprint(os.Stdout, hist, histogram.Linear(10))
}

// runBacktest feeds candles through eng one bar at a time, growing the
// visible window exactly the way a live poll loop would, and tallies
// every EXIT into a backtestReport.
func runBacktest(eng engine.Engine, candles []core.Candle, equity float64, spec core.ContractSpec, pair string) *backtestReport {
	report := newBacktestReport(pair)
	state := core.FlatState()

	_, high, low, close, _ := core.Arrays(candles)
	adx := indicator.ADX(high, low, close, 14)
	rsi := indicator.RSI(close, 14)

	bar := progressbar.Default(int64(len(candles)))
	var entryPrice float64
	var entrySide core.Side

	for i := range candles {
		window := candles[:i+1]
		out, newState := eng.ProcessCandle(window, equity, spec, state)

		switch out.Signal {
		case core.SignalLong, core.SignalShort:
			report.recordEntry(out.Signal, adx[i], rsi[i])
			entryPrice = out.ProposedPosition.EntryPrice
			entrySide = out.ProposedPosition.Side
		case core.SignalExit:
			exitPrice := candles[i].Close
			returnPct := (exitPrice - entryPrice) / entryPrice * 100
			if entrySide == core.Short {
				returnPct = -returnPct
			}
			report.recordExit(out.Reason, returnPct)
		}

		state = newState
		_ = bar.Add(1)
	}

	return report
}
