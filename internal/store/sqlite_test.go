package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func sampleRun(id, task string, started time.Time) *RunRecord {
	return &RunRecord{
		ID:            id,
		Task:          task,
		DatasetPath:   "data/split_merged.json",
		OutputPath:    "output/" + task + ".json",
		TotalRecords:  10,
		FailedRecords: 1,
		StartedAt:     started,
		FinishedAt:    started.Add(time.Minute),
		Config:        map[string]any{"temperature": 0.1, "max_new_tokens": float64(1280)},
	}
}

func TestSQLiteStore_SaveAndGetRun(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	started := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	if err := st.SaveRun(ctx, sampleRun("run_1", "question_answering", started)); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := st.GetRun(ctx, "run_1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Task != "question_answering" || got.TotalRecords != 10 || got.FailedRecords != 1 {
		t.Fatalf("GetRun: got %+v", got)
	}
	if !got.StartedAt.Equal(started) {
		t.Fatalf("StartedAt: got %v want %v", got.StartedAt, started)
	}
	if got.Config["temperature"] != 0.1 {
		t.Fatalf("Config: got %#v", got.Config)
	}

	_, err = st.GetRun(ctx, "absent")
	if err == nil {
		t.Fatalf("GetRun(absent): expected error")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Fatalf("error: got %q", err)
	}
}

func TestSQLiteStore_SaveRunValidation(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	if err := st.SaveRun(ctx, nil); err == nil {
		t.Fatalf("SaveRun(nil): expected error")
	}
	if err := st.SaveRun(ctx, &RunRecord{ID: " "}); err == nil {
		t.Fatalf("SaveRun(empty id): expected error")
	}

	var snil *SQLiteStore
	if err := snil.SaveRun(ctx, &RunRecord{ID: "x"}); err == nil {
		t.Fatalf("SaveRun(nil store): expected error")
	}
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	runs := []*RunRecord{
		sampleRun("run_1", "question_answering", base),
		sampleRun("run_2", "summarization", base.Add(time.Hour)),
		sampleRun("run_3", "question_answering", base.Add(2*time.Hour)),
	}
	for _, r := range runs {
		if err := st.SaveRun(ctx, r); err != nil {
			t.Fatalf("SaveRun(%s): %v", r.ID, err)
		}
	}

	all, err := st.ListRuns(ctx, RunFilter{})
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListRuns: got %d want 3", len(all))
	}
	// Newest first.
	if all[0].ID != "run_3" || all[2].ID != "run_1" {
		t.Fatalf("ListRuns order: got %s..%s", all[0].ID, all[2].ID)
	}

	qa, err := st.ListRuns(ctx, RunFilter{Task: "question_answering"})
	if err != nil {
		t.Fatalf("ListRuns(task): %v", err)
	}
	if len(qa) != 2 {
		t.Fatalf("ListRuns(task): got %d want 2", len(qa))
	}

	recent, err := st.ListRuns(ctx, RunFilter{Since: base.Add(30 * time.Minute)})
	if err != nil {
		t.Fatalf("ListRuns(since): %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("ListRuns(since): got %d want 2", len(recent))
	}

	limited, err := st.ListRuns(ctx, RunFilter{Limit: 1})
	if err != nil {
		t.Fatalf("ListRuns(limit): %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "run_3" {
		t.Fatalf("ListRuns(limit): got %+v", limited)
	}
}

func TestNewSQLiteStore_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteStore("  "); err == nil {
		t.Fatalf("NewSQLiteStore(empty): expected error")
	}
}
