package store

import (
	"context"
	"time"
)

// RunRecord stores the summary of one task run.
type RunRecord struct {
	ID            string
	Task          string
	DatasetPath   string
	OutputPath    string
	TotalRecords  int
	FailedRecords int
	StartedAt     time.Time
	FinishedAt    time.Time
	Config        map[string]any // serialized run configuration
}

// RunFilter filters run listings.
type RunFilter struct {
	Task  string
	Since time.Time
	Limit int
}

// Store defines persistence for run history.
type Store interface {
	SaveRun(ctx context.Context, run *RunRecord) error
	GetRun(ctx context.Context, id string) (*RunRecord, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]*RunRecord, error)
	Close() error
}
