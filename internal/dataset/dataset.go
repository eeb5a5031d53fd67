package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/stellarlinkco/rag-eval/internal/task"
)

// Collection maps dataset-group names (questanswer_1doc, event_summary, ...)
// to ordered record sequences.
type Collection map[string][]task.Record

// NotFoundError reports a missing evaluation dataset file.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("dataset: evaluation dataset file %q does not exist", e.Path)
}

// Load reads a dataset file. A missing file is a NotFoundError so callers can
// fail fast before any task runs.
func Load(path string) (Collection, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, &NotFoundError{Path: path}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %q: %w", path, err)
	}

	var c Collection
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("dataset: parse %q: %w", path, err)
	}
	return c, nil
}

// ForTask selects the dataset slice for a task via its dataset-group key.
// Records keep their input order.
func (c Collection) ForTask(t task.Task) ([]task.Record, error) {
	key, err := t.DatasetKey()
	if err != nil {
		return nil, err
	}
	recs, ok := c[key]
	if !ok {
		return nil, fmt.Errorf("dataset: missing group %q for task %q", key, t)
	}
	return recs, nil
}
