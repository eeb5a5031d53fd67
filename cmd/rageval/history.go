package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/rag-eval/internal/store"
)

func newHistoryCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past evaluation runs",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if st.cfg.Storage.Path == "" {
				return fmt.Errorf("history: no storage path configured")
			}

			db, err := store.NewSQLiteStore(st.cfg.Storage.Path)
			if err != nil {
				return fmt.Errorf("history: open store: %w", err)
			}
			defer func() { _ = db.Close() }()

			filter := store.RunFilter{}
			filter.Task, _ = cmd.Flags().GetString("task")
			filter.Limit, _ = cmd.Flags().GetInt("limit")

			runs, err := db.ListRuns(context.Background(), filter)
			if err != nil {
				return fmt.Errorf("history: %w", err)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTASK\tSTARTED\tRECORDS\tFAILED\tOUTPUT")
			for _, r := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
					r.ID, r.Task, r.StartedAt.Format(time.RFC3339),
					r.TotalRecords, r.FailedRecords, r.OutputPath)
			}
			return w.Flush()
		},
	}

	cmd.Flags().String("task", "", "only show runs for this task")
	cmd.Flags().Int("limit", 0, "maximum number of runs to show")

	return cmd
}
