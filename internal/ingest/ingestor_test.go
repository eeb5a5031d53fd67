package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stellarlinkco/rag-eval/internal/llm"
)

func writeDocs(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range docs {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	return dir
}

func TestIngestor_Run(t *testing.T) {
	t.Parallel()

	var got []ingestRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ingestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		got = append(got, req)
	}))
	defer srv.Close()

	dir := writeDocs(t, map[string]string{
		"b.txt": strings.Repeat("y", 300),
		"a.txt": "tiny document",
	})

	g := &Ingestor{Endpoint: srv.URL, ChunkSize: 256, ChunkOverlap: 100}
	if err := g.Run(context.Background(), dir); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("requests: got %d want 2", len(got))
	}
	// Sorted by file name.
	if got[0].FileName != "a.txt" || got[1].FileName != "b.txt" {
		t.Fatalf("order: got %q then %q", got[0].FileName, got[1].FileName)
	}
	if len(got[0].Chunks) != 1 {
		t.Fatalf("a.txt chunks: got %d want 1", len(got[0].Chunks))
	}
	if len(got[1].Chunks) != 2 {
		t.Fatalf("b.txt chunks: got %d want 2", len(got[1].Chunks))
	}
}

func TestIngestor_EndpointFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "full", http.StatusInsufficientStorage)
	}))
	defer srv.Close()

	dir := writeDocs(t, map[string]string{"doc.txt": "content"})

	g := &Ingestor{Endpoint: srv.URL, ChunkSize: 256, ChunkOverlap: 100}
	err := g.Run(context.Background(), dir)
	if err == nil {
		t.Fatalf("Run: expected error")
	}
	var se *llm.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("error type: %T", err)
	}
	if se.StatusCode != http.StatusInsufficientStorage {
		t.Fatalf("StatusCode: got %d", se.StatusCode)
	}
}

func TestIngestor_BadInputs(t *testing.T) {
	t.Parallel()

	var gnil *Ingestor
	if err := gnil.Run(context.Background(), "x"); err == nil {
		t.Fatalf("Run(nil ingestor): expected error")
	}

	g := &Ingestor{Endpoint: " "}
	if err := g.Run(context.Background(), "x"); err == nil {
		t.Fatalf("Run(empty endpoint): expected error")
	}

	g = &Ingestor{Endpoint: "http://unused.test", ChunkSize: 256, ChunkOverlap: 100}
	if err := g.Run(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("Run(missing docs dir): expected error")
	}

	dir := writeDocs(t, map[string]string{"doc.txt": "content"})
	g = &Ingestor{Endpoint: "http://unused.test", ChunkSize: 10, ChunkOverlap: 10}
	if err := g.Run(context.Background(), dir); err == nil {
		t.Fatalf("Run(invalid overlap): expected error")
	}
}
