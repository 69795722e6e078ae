// Package record captures solver step events for later replay.
//
// A Recorder is attached to a solver call as its event observer; it collects
// the StepEvents in emission order under a unique run ID and serializes them
// to JSON. External animation or replay tools consume the output; this
// package only records.
package record

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/sganbold/tentlabel/pkg/labeling"
)

// Recording is the serialized form of one recorded solver run.
type Recording struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`
	// Solver names the solver that produced the events.
	Solver string `json:"solver"`
	// StartedAt is when the recorder was created.
	StartedAt time.Time `json:"started_at"`
	// Events holds every StepEvent in strict emission order.
	Events []labeling.StepEvent `json:"events"`
}

// Recorder collects solver step events. It is driven synchronously on the
// solver's goroutine and is not safe for concurrent use — one recorder per
// solver call.
type Recorder struct {
	rec Recording
}

// New creates a recorder for the named solver with a fresh run ID.
func New(solver string) *Recorder {
	return &Recorder{rec: Recording{
		RunID:     uuid.NewString(),
		Solver:    solver,
		StartedAt: time.Now().UTC(),
	}}
}

// Observe appends one event. Pass it as the solver's event observer:
//
//	rec := record.New(labeling.SolverBacktracking)
//	k, labels := labeling.SolveExact(g, lb, labeling.Options{OnEvent: rec.Observe})
func (r *Recorder) Observe(ev labeling.StepEvent) {
	r.rec.Events = append(r.rec.Events, ev)
}

// RunID returns the unique identifier of this recording.
func (r *Recorder) RunID() string { return r.rec.RunID }

// Len returns the number of recorded events.
func (r *Recorder) Len() int { return len(r.rec.Events) }

// Events returns the recorded events in emission order.
// The returned slice is the recorder's own; callers must not mutate it.
func (r *Recorder) Events() []labeling.StepEvent { return r.rec.Events }

// Marshal serializes the recording as indented JSON.
func (r *Recorder) Marshal() ([]byte, error) {
	return json.MarshalIndent(r.rec, "", "  ")
}

// WriteFile writes the recording to path as JSON.
func (r *Recorder) WriteFile(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
