package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/rag-eval/internal/ingest"
)

func newIngestCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Chunk the documents corpus and push it to the vector database",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *st.cfg

			f := cmd.Flags()
			if f.Changed("docs") {
				cfg.DocsPath, _ = f.GetString("docs")
			}
			if f.Changed("database-endpoint") {
				cfg.DatabaseEndpoint, _ = f.GetString("database-endpoint")
			}
			if f.Changed("chunk-size") {
				cfg.ChunkSize, _ = f.GetInt("chunk-size")
			}
			if f.Changed("chunk-overlap") {
				cfg.ChunkOverlap, _ = f.GetInt("chunk-overlap")
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			g := &ingest.Ingestor{
				Endpoint:     cfg.DatabaseEndpoint,
				ChunkSize:    cfg.ChunkSize,
				ChunkOverlap: cfg.ChunkOverlap,
				HTTPClient:   &http.Client{},
			}
			if err := g.Run(ctx, cfg.DocsPath); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Ingested documents from %s into %s.\n", cfg.DocsPath, cfg.DatabaseEndpoint)
			return nil
		},
	}

	f := cmd.Flags()
	f.String("docs", "", "path to the retrieval documents")
	f.String("database-endpoint", "", "ingestion endpoint")
	f.Int("chunk-size", 0, "chunk size in characters")
	f.Int("chunk-overlap", 0, "characters shared between adjacent chunks")

	return cmd
}
