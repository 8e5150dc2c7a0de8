package domain

import "time"

type RunState string

const (
	RunStateInit           RunState = "INIT"
	RunStateResolveMapping RunState = "RESOLVE_MAPPING"
	RunStateExtract        RunState = "EXTRACT_PLATFORM"
	RunStateTransform      RunState = "TRANSFORM"
	RunStateLoad           RunState = "LOAD"
	RunStateDriveIngest    RunState = "DRIVE_INGEST"
	RunStateDone           RunState = "DONE"
	RunStateFailed         RunState = "FAILED"
)

// UnitOutcome is the result of one platform x advertiser unit.
type UnitOutcome struct {
	Client   string        `json:"client"`
	Platform Platform      `json:"platform"`
	Rows     int           `json:"rows"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

func (u UnitOutcome) Success() bool {
	return u.Error == ""
}

type RunOutcome struct {
	RunID         string        `json:"run_id"`
	State         RunState      `json:"state"`
	StartTime     time.Time     `json:"start_time"`
	EndTime       time.Time     `json:"end_time"`
	Success       bool          `json:"success"`
	ErrorMessage  string        `json:"error_message,omitempty"`
	Units         []UnitOutcome `json:"units"`
	RowsLoaded    int64         `json:"rows_loaded"`
	FilesIngested []string      `json:"files_ingested"`
}

// FailedUnits counts units that recorded an error.
func (o RunOutcome) FailedUnits() int {
	failed := 0
	for _, unit := range o.Units {
		if !unit.Success() {
			failed++
		}
	}
	return failed
}

type APICallOutcome struct {
	RunID       string
	Platform    Platform
	Client      string
	Endpoint    string
	StatusCode  int
	Success     bool
	Duration    time.Duration
	PayloadSize int
	Error       string
}

type LoadOperation string

const (
	OperationInsert  LoadOperation = "INSERT"
	OperationReplace LoadOperation = "REPLACE"
	OperationAlter   LoadOperation = "ALTER"
)

type LoadOutcome struct {
	RunID        string
	Client       string
	Database     string
	Table        string
	RowsAffected int64
	Operation    LoadOperation
}

type DriveFileOutcome struct {
	RunID    string
	FileID   string
	FileName string
	Status   string
	Error    string
}
