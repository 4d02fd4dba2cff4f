package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"reddit-psych-pipeline/internal/model"
)

var db *sql.DB

// InitDB opens the run history database and creates tables if needed.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	runTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		options TEXT,
		status TEXT,
		summary TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS run_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`

	if _, err := db.Exec(runTable); err != nil {
		return err
	}
	if _, err := db.Exec(errorTable); err != nil {
		return err
	}

	return nil
}

// CloseDB closes the database handle.
func CloseDB() error {
	if db == nil {
		return nil
	}
	return db.Close()
}

// SaveRun stores a new compile run with its options.
func SaveRun(runID string, opts model.CompileOptions) error {
	optsJSON, err := json.Marshal(opts)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO runs (id, options, status, summary, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, optsJSON, model.RunStatusPending, "", now, now)
	return err
}

// UpdateRunStatus updates a run's status.
func UpdateRunStatus(runID string, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`, status, now, runID)
	return err
}

// SaveRunSummary stores the final counts of a run.
func SaveRunSummary(runID string, summary model.RunSummary) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.Exec(`UPDATE runs SET summary = ?, updated_at = ? WHERE id = ?`, summaryJSON, now, runID)
	return err
}

// SaveRunError records an error for a run.
func SaveRunError(runID string, runErr error) error {
	if runErr == nil {
		return nil
	}
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO run_errors (run_id, error_message, created_at) VALUES (?, ?, ?)`,
		runID, runErr.Error(), now)
	return err
}

// RunInfo is one row of the run history.
type RunInfo struct {
	ID        string               `json:"id"`
	Status    string               `json:"status"`
	Options   model.CompileOptions `json:"options"`
	Summary   *model.RunSummary    `json:"summary,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// ListRuns returns all runs, newest first.
func ListRuns() ([]RunInfo, error) {
	rows, err := db.Query(`SELECT id, options, status, summary, created_at, updated_at FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		info, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, info)
	}
	return runs, rows.Err()
}

// GetRun fetches one run by id.
func GetRun(runID string) (RunInfo, error) {
	row := db.QueryRow(`SELECT id, options, status, summary, created_at, updated_at FROM runs WHERE id = ?`, runID)
	return scanRun(row.Scan)
}

func scanRun(scan func(...any) error) (RunInfo, error) {
	var info RunInfo
	var optsJSON, summaryJSON string
	if err := scan(&info.ID, &optsJSON, &info.Status, &summaryJSON, &info.CreatedAt, &info.UpdatedAt); err != nil {
		return info, err
	}
	if err := json.Unmarshal([]byte(optsJSON), &info.Options); err != nil {
		return info, err
	}
	if summaryJSON != "" {
		var summary model.RunSummary
		if err := json.Unmarshal([]byte(summaryJSON), &summary); err != nil {
			return info, err
		}
		info.Summary = &summary
	}
	return info, nil
}

// GetRunErrors returns all errors recorded for a run.
func GetRunErrors(runID string) ([]string, error) {
	rows, err := db.Query(`SELECT error_message FROM run_errors WHERE run_id = ? ORDER BY created_at`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []string
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
