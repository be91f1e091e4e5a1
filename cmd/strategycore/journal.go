package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raykavin/strategycore/pkg/core"
	"github.com/raykavin/strategycore/pkg/storage"
)

func buildJournalCmd() *cobra.Command {
	var (
		journalDSN string
		pair       string
		signal     string
	)

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List decisions recorded by a run's --journal-dsn audit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			journal, err := storage.FromSQLite(journalDSN)
			if err != nil {
				return fmt.Errorf("failed to open decision journal: %w", err)
			}
			defer journal.Close()

			var filters []storage.DecisionFilter
			if pair != "" {
				filters = append(filters, storage.ForPair(pair))
			}
			if signal != "" {
				filters = append(filters, storage.SignalIs(core.Signal(signal)))
			}

			records, err := journal.Decisions(filters...)
			if err != nil {
				return fmt.Errorf("failed to read decisions: %w", err)
			}

			for _, r := range records {
				fmt.Printf("%s  %s  %-5s %-16s", r.CreatedAt.Format("2006-01-02 15:04:05"), r.Pair, r.Signal, r.Reason)
				if r.Side != "" {
					fmt.Printf(" side=%s qty=%.8f entry=%.8f stop=%.8f target=%.8f",
						r.Side, r.Quantity, r.EntryPrice, r.StopLoss, r.TakeProfit)
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&journalDSN, "journal-dsn", "", "Path to the SQLite decision-journal database")
	cmd.Flags().StringVarP(&pair, "pair", "p", "", "Filter to one trading pair")
	cmd.Flags().StringVar(&signal, "signal", "", "Filter to one signal (HOLD, LONG, SHORT, EXIT)")

	cmd.MarkFlagRequired("journal-dsn")

	return cmd
}
