package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"reddit-psych-pipeline/internal/model"
	"reddit-psych-pipeline/internal/pipeline"
	"reddit-psych-pipeline/internal/store"
	"reddit-psych-pipeline/pkg/logger"
)

var defaults model.CompileOptions

// Init sets the default compile options used when a request omits fields.
func Init(opts model.CompileOptions) {
	defaults = opts
}

// runRequest is the POST body for creating a run. Pointer fields
// distinguish "omitted" from zero values.
type runRequest struct {
	InputDir      string `json:"inputDir"`
	OutputPath    string `json:"outputPath"`
	MinBodyLength *int   `json:"minBodyLength"`
	KeepLinkOnly  *bool  `json:"keepLinkOnly"`
	Dedup         *bool  `json:"dedup"`
}

func (r runRequest) options() model.CompileOptions {
	opts := defaults
	if r.InputDir != "" {
		opts.InputDir = r.InputDir
	}
	if r.OutputPath != "" {
		opts.OutputPath = r.OutputPath
	}
	if r.MinBodyLength != nil {
		opts.MinBodyLength = *r.MinBodyLength
	}
	if r.KeepLinkOnly != nil {
		opts.KeepLinkOnly = *r.KeepLinkOnly
	}
	if r.Dedup != nil {
		opts.Dedup = *r.Dedup
	}
	return opts
}

// CreateRun starts a new compile run
// @Summary Start a compile run
// @Description Create a compile run over the capture directory; omitted fields use configured defaults
// @Tags runs
// @Accept json
// @Produce json
// @Param run body runRequest false "Run options"
// @Success 200 {object} map[string]interface{} "Run created"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [post]
func CreateRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
			return
		}
	}
	opts := req.options()

	runID := uuid.New().String()
	if err := store.SaveRun(runID, opts); err != nil {
		http.Error(w, "Failed to save run", http.StatusInternalServerError)
		return
	}

	go executeRun(runID, opts)

	resp := map[string]interface{}{
		"message":   "Compile run created",
		"runID":     runID,
		"status":    model.RunStatusPending,
		"createdAt": time.Now().UTC(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func executeRun(runID string, opts model.CompileOptions) {
	store.UpdateRunStatus(runID, model.RunStatusRunning)

	summary, err := pipeline.NewCompiler(opts).Run()
	if saveErr := store.SaveRunSummary(runID, summary); saveErr != nil {
		logger.Log.Errorf("run %s: save summary: %v", runID, saveErr)
	}
	if err != nil {
		store.SaveRunError(runID, err)
		store.UpdateRunStatus(runID, model.RunStatusFailed)
		logger.Log.Errorf("run %s failed: %v", runID, err)
		return
	}
	store.UpdateRunStatus(runID, model.RunStatusCompleted)
	logger.Log.Infof("run %s completed: %d kept, %d duplicates dropped", runID, summary.Kept, summary.Duplicates)
}

// ListRuns lists all compile runs
// @Summary List runs
// @Description Get all compile runs with status and counts, newest first
// @Tags runs
// @Produce json
// @Success 200 {array} store.RunInfo "List of runs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [get]
func ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns()
	if err != nil {
		http.Error(w, "Failed to fetch runs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

// GetRun retrieves one compile run
// @Summary Get run
// @Description Retrieve status, options and summary counts of one run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} store.RunInfo "Run details"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /runs/{id} [get]
func GetRun(w http.ResponseWriter, r *http.Request) {
	runID := pathSegment(r.URL.Path, "/api/v1/runs/", "")
	if runID == "" {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	run, err := store.GetRun(runID)
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

// GetRunErrors retrieves errors recorded for a run
// @Summary Get run errors
// @Description Retrieve all errors recorded during one compile run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run errors"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs/{id}/errors [get]
func GetRunErrors(w http.ResponseWriter, r *http.Request) {
	runID := pathSegment(r.URL.Path, "/api/v1/runs/", "/errors")
	if runID == "" {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return
	}

	messages, err := store.GetRunErrors(runID)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"run_id": runID,
		"errors": messages,
		"count":  len(messages),
	})
}

// DownloadDataset serves the compiled dataset
// @Summary Download dataset
// @Description Download the compiled JSONL dataset at the default output path
// @Tags dataset
// @Produce plain
// @Success 200 {string} string "JSONL dataset"
// @Failure 404 {object} map[string]interface{} "No compiled dataset yet"
// @Router /dataset [get]
func DownloadDataset(w http.ResponseWriter, r *http.Request) {
	path := defaults.OutputPath
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		http.Error(w, "No compiled dataset yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/x-ndjson")
	http.ServeFile(w, r, path)
}

// pathSegment extracts the run id between a path prefix and suffix.
func pathSegment(path, prefix, suffix string) string {
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		return ""
	}
	id := path[len(prefix) : len(path)-len(suffix)]
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
