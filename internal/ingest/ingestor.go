package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stellarlinkco/rag-eval/internal/llm"
)

// Ingestor chunks a corpus directory and pushes the chunks to the remote
// ingestion endpoint so they become retrievable. It is a prerequisite step
// before an evaluation run against the pipeline.
type Ingestor struct {
	Endpoint     string
	ChunkSize    int
	ChunkOverlap int

	HTTPClient *http.Client
}

type ingestRequest struct {
	FileName string   `json:"file_name"`
	Chunks   []string `json:"chunks"`
}

// Run reads every regular file under docsPath (sorted by name), chunks it,
// and submits one request per document. Endpoint failures surface to the
// caller; nothing is retried here.
func (g *Ingestor) Run(ctx context.Context, docsPath string) error {
	if g == nil {
		return errors.New("ingest: nil ingestor")
	}
	if ctx == nil {
		return errors.New("ingest: nil context")
	}
	endpoint := strings.TrimSpace(g.Endpoint)
	if endpoint == "" {
		return errors.New("ingest: empty endpoint")
	}

	entries, err := os.ReadDir(docsPath)
	if err != nil {
		return fmt.Errorf("ingest: read docs dir %q: %w", docsPath, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	client := g.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(docsPath, name)
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("ingest: read %q: %w", path, err)
		}

		chunks, err := Chunk(string(b), g.ChunkSize, g.ChunkOverlap)
		if err != nil {
			return err
		}
		if len(chunks) == 0 {
			continue
		}

		if err := g.submit(ctx, client, endpoint, name, chunks); err != nil {
			return err
		}
	}
	return nil
}

func (g *Ingestor) submit(ctx context.Context, client *http.Client, endpoint, name string, chunks []string) error {
	body, err := json.Marshal(ingestRequest{FileName: name, Chunks: chunks})
	if err != nil {
		return &llm.ServiceError{Endpoint: endpoint, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return &llm.ServiceError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return &llm.ServiceError{Endpoint: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &llm.ServiceError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}
	return nil
}
