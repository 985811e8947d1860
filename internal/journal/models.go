package journal

import "time"

// Status is the lifecycle state of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Outcome is what happened to one file.
type Outcome string

const (
	OutcomeMoved   Outcome = "moved"
	OutcomePlanned Outcome = "planned"
	OutcomeFailed  Outcome = "failed"
)

// Run is one organization pass.
type Run struct {
	ID                     string
	StartedAt              time.Time
	FinishedAt             time.Time
	SourceDir              string
	TargetDir              string
	DryRun                 bool
	Status                 Status
	Processed              int
	Moved                  int
	Errors                 int
	ClassificationFailures int
	NamingFallbacks        int
	Groups                 int
	ErrorMessage           string
}

// Duration reports how long a finished run took.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Decision is the destination chosen for one file within a run.
type Decision struct {
	RunID        string
	Seq          int
	SourcePath   string
	RawCategory  string
	GroupName    string
	Destination  string
	Outcome      Outcome
	ErrorMessage string
	RecordedAt   time.Time
}
