package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/rag-eval/internal/config"
	"github.com/stellarlinkco/rag-eval/internal/dataset"
	"github.com/stellarlinkco/rag-eval/internal/evaluator"
	"github.com/stellarlinkco/rag-eval/internal/ingest"
	"github.com/stellarlinkco/rag-eval/internal/llm"
	"github.com/stellarlinkco/rag-eval/internal/store"
	"github.com/stellarlinkco/rag-eval/internal/task"
)

func newRunCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run evaluation tasks over the dataset",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(st)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := applyRunFlags(cmd, st.cfg)
			return runEvaluations(cmd, cfg)
		},
	}

	f := cmd.Flags()
	f.StringSlice("tasks", nil, "tasks to run")
	f.String("dataset", "", "path to the evaluation dataset")
	f.String("output-dir", "", "directory for result files")
	f.String("service-url", "", "RAG pipeline endpoint")
	f.Float64("temperature", 0, "generation temperature")
	f.Int("max-new-tokens", 0, "generation length cap")
	f.Bool("ingest-docs", false, "ingest the docs corpus before evaluating")
	f.String("docs", "", "path to the retrieval documents")
	f.Int("chunk-size", 0, "ingestion chunk size in characters")
	f.Int("chunk-overlap", 0, "characters shared between adjacent chunks")
	f.String("database-endpoint", "", "ingestion endpoint")
	f.String("embedding-endpoint", "", "embedding service endpoint")
	f.String("retrieval-endpoint", "", "retrieval service endpoint")
	f.String("llm-endpoint", "", "OpenAI-compatible inference endpoint")
	f.String("provider", "", "generation backend: pipeline|openai|claude")
	f.Bool("progress", true, "report per-record progress")
	f.Bool("contain-original-data", false, "embed the source record in each result")

	return cmd
}

// applyRunFlags overlays changed flags on the loaded config, returning one
// explicit value that the rest of the run consumes.
func applyRunFlags(cmd *cobra.Command, loaded *config.Config) config.Config {
	cfg := config.Default()
	if loaded != nil {
		cfg = *loaded
	}

	f := cmd.Flags()
	if f.Changed("tasks") {
		cfg.Tasks, _ = f.GetStringSlice("tasks")
	}
	if f.Changed("dataset") {
		cfg.DatasetPath, _ = f.GetString("dataset")
	}
	if f.Changed("output-dir") {
		cfg.OutputDir, _ = f.GetString("output-dir")
	}
	if f.Changed("service-url") {
		cfg.ServiceURL, _ = f.GetString("service-url")
	}
	if f.Changed("temperature") {
		cfg.Temperature, _ = f.GetFloat64("temperature")
	}
	if f.Changed("max-new-tokens") {
		cfg.MaxNewTokens, _ = f.GetInt("max-new-tokens")
	}
	if f.Changed("ingest-docs") {
		cfg.IngestDocs, _ = f.GetBool("ingest-docs")
	}
	if f.Changed("docs") {
		cfg.DocsPath, _ = f.GetString("docs")
	}
	if f.Changed("chunk-size") {
		cfg.ChunkSize, _ = f.GetInt("chunk-size")
	}
	if f.Changed("chunk-overlap") {
		cfg.ChunkOverlap, _ = f.GetInt("chunk-overlap")
	}
	if f.Changed("database-endpoint") {
		cfg.DatabaseEndpoint, _ = f.GetString("database-endpoint")
	}
	if f.Changed("embedding-endpoint") {
		cfg.EmbeddingEndpoint, _ = f.GetString("embedding-endpoint")
	}
	if f.Changed("retrieval-endpoint") {
		cfg.RetrievalEndpoint, _ = f.GetString("retrieval-endpoint")
	}
	if f.Changed("llm-endpoint") {
		cfg.LLMEndpoint, _ = f.GetString("llm-endpoint")
	}
	if f.Changed("provider") {
		cfg.Provider, _ = f.GetString("provider")
	}
	if f.Changed("progress") {
		cfg.ShowProgressBar, _ = f.GetBool("progress")
	}
	if f.Changed("contain-original-data") {
		cfg.ContainOriginalData, _ = f.GetBool("contain-original-data")
	}
	return cfg
}

// runEvaluations executes every configured task sequentially. Dataset and
// configuration errors are fatal before any task starts; a failure in one
// task does not abort the others, and all task errors surface joined at the
// end.
func runEvaluations(cmd *cobra.Command, cfg config.Config) error {
	if len(cfg.Tasks) == 0 {
		return fmt.Errorf("run: no tasks configured")
	}

	collection, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("run: create output dir %q: %w", cfg.OutputDir, err)
	}

	provider, err := llm.FromConfig(&cfg)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	var history store.Store
	if cfg.Storage.Path != "" {
		history, err = store.NewSQLiteStore(cfg.Storage.Path)
		if err != nil {
			return fmt.Errorf("run: open history store: %w", err)
		}
		defer func() { _ = history.Close() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.IngestDocs {
		g := &ingest.Ingestor{
			Endpoint:     cfg.DatabaseEndpoint,
			ChunkSize:    cfg.ChunkSize,
			ChunkOverlap: cfg.ChunkOverlap,
			HTTPClient:   &http.Client{},
		}
		if err := g.Run(ctx, cfg.DocsPath); err != nil {
			return fmt.Errorf("run: ingest docs: %w", err)
		}
	}

	var errs []error
	for _, name := range cfg.Tasks {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := runTask(ctx, cmd, cfg, provider, history, collection, name); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "task %s failed: %v\n", name, err)
			errs = append(errs, fmt.Errorf("task %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

func runTask(ctx context.Context, cmd *cobra.Command, cfg config.Config, provider llm.Provider, history store.Store, collection dataset.Collection, name string) error {
	t, err := task.Parse(name)
	if err != nil {
		return err
	}

	records, err := collection.ForTask(t)
	if err != nil {
		return err
	}

	outputPath := filepath.Join(cfg.OutputDir, string(t)+".json")
	loop := &evaluator.Loop{
		Task:                t,
		Records:             records,
		Provider:            provider,
		Temperature:         cfg.Temperature,
		MaxNewTokens:        cfg.MaxNewTokens,
		OutputPath:          outputPath,
		ContainOriginalData: cfg.ContainOriginalData,
	}
	if cfg.ShowProgressBar {
		loop.Progress = cmd.ErrOrStderr()
	}

	startedAt := time.Now().UTC()
	res, err := loop.Run(ctx)
	if err != nil {
		return err
	}
	finishedAt := time.Now().UTC()

	if history != nil {
		runID, err := newRunID()
		if err != nil {
			return fmt.Errorf("generate run id: %w", err)
		}
		rec := &store.RunRecord{
			ID:            runID,
			Task:          string(t),
			DatasetPath:   cfg.DatasetPath,
			OutputPath:    outputPath,
			TotalRecords:  len(res.Results),
			FailedRecords: res.Failed,
			StartedAt:     startedAt,
			FinishedAt:    finishedAt,
			Config: map[string]any{
				"service_url":           cfg.ServiceURL,
				"provider":              cfg.Provider,
				"temperature":           cfg.Temperature,
				"max_new_tokens":        cfg.MaxNewTokens,
				"contain_original_data": cfg.ContainOriginalData,
			},
		}
		if err := history.SaveRun(ctx, rec); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Evaluation results of task %s saved to %s (%d records, %d failed).\n",
		t, outputPath, len(res.Results), res.Failed)
	return nil
}

func newRunID() (string, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return fmt.Sprintf("run_%s_%x", time.Now().UTC().Format("20060102T150405Z"), buf), nil
}
