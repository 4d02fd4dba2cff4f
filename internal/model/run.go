package model

// CompileOptions configures one compile run. All knobs are explicit and
// named; defaults live in the config package, not here.
type CompileOptions struct {
	InputDir      string `json:"inputDir"`
	OutputPath    string `json:"outputPath"`
	MinBodyLength int    `json:"minBodyLength"`
	KeepLinkOnly  bool   `json:"keepLinkOnly"`
	Dedup         bool   `json:"dedup"`
}

// RunSummary reports the counts of one compile run.
type RunSummary struct {
	FilesRead    int `json:"files_read"`
	FilesSkipped int `json:"files_skipped"`
	RecordsSeen  int `json:"records_seen"`
	Malformed    int `json:"malformed"`
	Filtered     int `json:"filtered"`
	Duplicates   int `json:"duplicates"`
	Kept         int `json:"kept"`
}

// Run statuses as stored in the run history DB.
const (
	RunStatusPending   = "pending"
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)
