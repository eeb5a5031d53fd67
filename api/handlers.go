package api

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stellarlinkco/rag-eval/internal/store"
	"github.com/stellarlinkco/rag-eval/internal/task"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

type runView struct {
	ID            string         `json:"id"`
	Task          string         `json:"task"`
	DatasetPath   string         `json:"dataset_path"`
	OutputPath    string         `json:"output_path"`
	TotalRecords  int            `json:"total_records"`
	FailedRecords int            `json:"failed_records"`
	StartedAt     time.Time      `json:"started_at"`
	FinishedAt    time.Time      `json:"finished_at"`
	Config        map[string]any `json:"config,omitempty"`
}

func (s *Server) handleListRuns(c *gin.Context) {
	if s.store == nil {
		respondError(c, http.StatusServiceUnavailable, errors.New("run history store not configured"))
		return
	}

	filter := store.RunFilter{Task: strings.TrimSpace(c.Query("task"))}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(c, http.StatusBadRequest, errors.New("limit must be a positive integer"))
			return
		}
		filter.Limit = n
	}

	runs, err := s.store.ListRuns(c.Request.Context(), filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}

	out := make([]runView, 0, len(runs))
	for _, r := range runs {
		out = append(out, toRunView(r))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetRun(c *gin.Context) {
	if s.store == nil {
		respondError(c, http.StatusServiceUnavailable, errors.New("run history store not configured"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, http.StatusBadRequest, errors.New("missing run id"))
		return
	}

	run, err := s.store.GetRun(c.Request.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondError(c, http.StatusNotFound, err)
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, toRunView(run))
}

// handleGetResults serves the persisted JSON array for one task. The task
// name is validated against the enumerated set, which also keeps arbitrary
// paths out of the file lookup.
func (s *Server) handleGetResults(c *gin.Context) {
	t, err := task.Parse(c.Param("task"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if s.outputDir == "" {
		respondError(c, http.StatusServiceUnavailable, errors.New("output directory not configured"))
		return
	}

	path := filepath.Join(s.outputDir, string(t)+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			respondError(c, http.StatusNotFound, errors.New("no results for task "+string(t)))
			return
		}
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(http.StatusOK, "application/json", b)
}

func toRunView(r *store.RunRecord) runView {
	if r == nil {
		return runView{}
	}
	return runView{
		ID:            r.ID,
		Task:          r.Task,
		DatasetPath:   r.DatasetPath,
		OutputPath:    r.OutputPath,
		TotalRecords:  r.TotalRecords,
		FailedRecords: r.FailedRecords,
		StartedAt:     r.StartedAt,
		FinishedAt:    r.FinishedAt,
		Config:        r.Config,
	}
}

func respondError(c *gin.Context, status int, err error) {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, gin.H{"error": msg})
}
