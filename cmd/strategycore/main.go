// Command strategycore is the CLI surface around the strategy core:
// it never implements decision logic itself, only wires candle
// sources, state persistence, and reporting around engine.ProcessCandle.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	zlog "github.com/raykavin/strategycore/pkg/logger/zerolog"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "strategycore",
		Short:   "Decision engine for a futures-trading strategy core",
		Version: "1.0.0",
	}

	rootCmd.AddCommand(buildDecideCmd())
	rootCmd.AddCommand(buildBacktestCmd())
	rootCmd.AddCommand(buildRunCmd())
	rootCmd.AddCommand(buildJournalCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func mustLogger() *zlog.Adapter {
	log, err := zlog.New("info", "2006-01-02 15:04:05", true, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return log
}
