package evaluator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/stellarlinkco/rag-eval/internal/llm"
	"github.com/stellarlinkco/rag-eval/internal/prompt"
	"github.com/stellarlinkco/rag-eval/internal/task"
)

// Result is one evaluated dataset record. Output order matches input order.
type Result struct {
	Query           string      `json:"query"`
	GroundTruth     string      `json:"ground_truth"`
	GeneratedAnswer string      `json:"generated_answer"`
	OriginalData    task.Record `json:"original_data,omitempty"`
}

// RunResult summarizes one task run.
type RunResult struct {
	Task    task.Task
	Results []Result
	Failed  int // records whose remote call failed
}

// Loop drives one task over its dataset slice: extract fields, render the
// prompt, call the generation backend, post-process, collect, persist. One
// Loop value per task run; records are processed strictly in order with no
// concurrent requests in flight.
type Loop struct {
	Task     task.Task
	Records  []task.Record
	Provider llm.Provider

	Temperature  float64
	MaxNewTokens int

	OutputPath          string
	ContainOriginalData bool

	// Progress receives per-record progress and failure lines; nil disables
	// reporting.
	Progress io.Writer
}

// Run executes the loop and writes the full result collection to OutputPath
// as a single JSON array. A remote-call failure for one record does not abort
// the run: the record keeps its slot in order with an empty generated answer,
// the failure is logged, and the count is reported in the summary. Field
// extraction and template errors are data-contract violations and abort.
func (l *Loop) Run(ctx context.Context) (*RunResult, error) {
	if l == nil {
		return nil, errors.New("evaluator: nil loop")
	}
	if ctx == nil {
		return nil, errors.New("evaluator: nil context")
	}
	if l.Provider == nil {
		return nil, errors.New("evaluator: nil provider")
	}

	tmpl, err := prompt.Select(l.Task)
	if err != nil {
		return nil, err
	}

	out := &RunResult{
		Task:    l.Task,
		Results: make([]Result, 0, len(l.Records)),
	}

	total := len(l.Records)
	for i, rec := range l.Records {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		groundTruth, err := l.Task.GroundTruth(rec)
		if err != nil {
			return out, err
		}
		query, err := l.Task.Query(rec)
		if err != nil {
			return out, err
		}
		document, err := l.Task.Document(rec)
		if err != nil {
			return out, err
		}

		res := Result{Query: query, GroundTruth: groundTruth}
		if l.ContainOriginalData {
			res.OriginalData = rec
		}

		rendered := tmpl.Render(query, document)
		raw, err := l.Provider.Generate(ctx, &llm.Request{
			Prompt:       rendered,
			Temperature:  l.Temperature,
			MaxNewTokens: l.MaxNewTokens,
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return out, err
			}
			out.Failed++
			l.logf("%s: record %d/%d failed: %v\n", l.Task, i+1, total, err)
		} else {
			res.GeneratedAnswer = ExtractAnswer(raw)
		}

		out.Results = append(out.Results, res)
		l.logf("%s: %d/%d\n", l.Task, i+1, total)
	}

	if err := l.persist(out.Results); err != nil {
		return out, err
	}
	return out, nil
}

func (l *Loop) persist(results []Result) error {
	path := l.OutputPath
	if path == "" {
		return errors.New("evaluator: empty output path")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("evaluator: create output dir: %w", err)
		}
	}

	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("evaluator: marshal results: %w", err)
	}
	b = append(b, '\n')

	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("evaluator: write %q: %w", path, err)
	}
	return nil
}

func (l *Loop) logf(format string, args ...any) {
	if l.Progress == nil {
		return
	}
	_, _ = fmt.Fprintf(l.Progress, format, args...)
}
