package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/rag-eval/api"
	"github.com/stellarlinkco/rag-eval/internal/store"
)

func newServeCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve run history and results over HTTP",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")

			var history store.Store
			if st.cfg.Storage.Path != "" {
				db, err := store.NewSQLiteStore(st.cfg.Storage.Path)
				if err != nil {
					return fmt.Errorf("serve: open store: %w", err)
				}
				defer func() { _ = db.Close() }()
				history = db
			}

			srv, err := api.NewServer(history, st.cfg.OutputDir)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", addr)
			return srv.Run(addr)
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")

	return cmd
}
