package organizer

import "smartsort/internal/journal"

// Decision is the outcome for one file in the move phase.
type Decision struct {
	Seq         int
	SourcePath  string
	RawCategory string
	Group       string
	Destination string
	Outcome     journal.Outcome
	Err         error
}

// Reporter receives each decision as it is made.
type Reporter interface {
	Decision(d Decision)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(d Decision)

// Decision calls f(d).
func (f ReporterFunc) Decision(d Decision) {
	f(d)
}
