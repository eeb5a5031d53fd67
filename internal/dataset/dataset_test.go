package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stellarlinkco/rag-eval/internal/task"
)

const sampleDataset = `{
  "questanswer_1doc": [
    {"questions": "q1", "news1": "d1", "answers": "a1"},
    {"questions": "q2", "news1": "d2", "answers": "a2"}
  ],
  "event_summary": [
    {"text": "t1", "summary": "s1"}
  ]
}`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "split_merged.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatalf("Load: expected error")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Load: error type %T", err)
	}
	if !strings.Contains(err.Error(), "absent.json") {
		t.Fatalf("error does not name path: %q", err)
	}
}

func TestLoad_Directory(t *testing.T) {
	t.Parallel()

	var nf *NotFoundError
	if _, err := Load(t.TempDir()); !errors.As(err, &nf) {
		t.Fatalf("Load(dir): got %v", err)
	}
}

func TestLoad_ParseError(t *testing.T) {
	t.Parallel()

	path := writeDataset(t, "{not json")
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load: expected error")
	}
	if !strings.Contains(err.Error(), "dataset: parse") {
		t.Fatalf("error: got %q", err)
	}
}

func TestForTask(t *testing.T) {
	t.Parallel()

	c, err := Load(writeDataset(t, sampleDataset))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	recs, err := c.ForTask(task.QuestionAnswering)
	if err != nil {
		t.Fatalf("ForTask: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("records: got %d want %d", len(recs), 2)
	}
	if recs[0]["questions"] != "q1" || recs[1]["questions"] != "q2" {
		t.Fatalf("records out of order: %#v", recs)
	}

	if _, err := c.ForTask(task.Summarization); err != nil {
		t.Fatalf("ForTask(summarization): %v", err)
	}

	var ue *task.UnsupportedError
	if _, err := c.ForTask(task.Continuation); !errors.As(err, &ue) {
		t.Fatalf("ForTask(continuation): got %v", err)
	}
}

func TestForTask_MissingGroup(t *testing.T) {
	t.Parallel()

	c := Collection{"event_summary": nil}
	_, err := c.ForTask(task.QuestionAnswering)
	if err == nil {
		t.Fatalf("ForTask: expected error")
	}
	if !strings.Contains(err.Error(), "questanswer_1doc") {
		t.Fatalf("error does not name group: %q", err)
	}
}
