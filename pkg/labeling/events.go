package labeling

import "time"

// EventKind categorizes solver step events.
type EventKind string

// Event kinds emitted by the solvers, in the causal order they can occur for
// a single assignment: the vertex is labeled, its new edge weights are
// calculated, and a later backtrack may undo it. SolutionFound fires at most
// once per successful call and carries the complete labeling.
const (
	EventVertexLabeled        EventKind = "VertexLabeled"
	EventEdgeWeightCalculated EventKind = "EdgeWeightCalculated"
	EventBacktrack            EventKind = "Backtrack"
	EventSolutionFound        EventKind = "SolutionFound"
)

// Edge is an undirected edge in canonical direction, used in event payloads.
type Edge struct {
	U Vertex `json:"u"`
	V Vertex `json:"v"`
}

// StepEvent is an immutable record of one solver state transition. The solver
// holds no reference to an event after emission; consumers may retain it.
type StepEvent struct {
	Kind   EventKind `json:"kind"`
	Vertex *Vertex   `json:"vertex,omitempty"`
	Label  int       `json:"label,omitempty"`
	Edge   *Edge     `json:"edge,omitempty"`
	Weight int       `json:"weight,omitempty"`
	// Labels carries the final complete labeling; only set on SolutionFound.
	Labels Labeling `json:"labels,omitempty"`
	// Timestamp is seconds since the Unix epoch, stamped at emission.
	Timestamp float64 `json:"timestamp,omitempty"`
}

// Observer receives solver step events. Calls are synchronous on the solver's
// own goroutine, in strict causal order: an assignment precedes its dependent
// weight events, which precede any backtrack that undoes it.
type Observer func(StepEvent)

// Options attaches instrumentation to a solver call. Two independent
// attachment points exist: OnStep for live, incremental consumers and OnEvent
// for batch recording. Callers should drive at most one per call; when both
// are set, OnStep wins.
type Options struct {
	OnStep  Observer
	OnEvent Observer
}

func (o Options) observer() Observer {
	if o.OnStep != nil {
		return o.OnStep
	}
	return o.OnEvent
}

// emit is the single guarded emission boundary. A panicking observer must
// never corrupt or abort a search, so failures are swallowed here rather than
// handled at each call site.
func emit(obs Observer, ev StepEvent) {
	if obs == nil {
		return
	}
	defer func() { _ = recover() }()
	ev.Timestamp = float64(time.Now().UnixNano()) / float64(time.Second)
	obs(ev)
}

func emitLabeled(obs Observer, v Vertex, label int) {
	if obs == nil {
		return
	}
	emit(obs, StepEvent{Kind: EventVertexLabeled, Vertex: &v, Label: label})
}

func emitWeight(obs Observer, u, v Vertex, weight int) {
	if obs == nil {
		return
	}
	if v.Less(u) {
		u, v = v, u
	}
	emit(obs, StepEvent{Kind: EventEdgeWeightCalculated, Edge: &Edge{U: u, V: v}, Weight: weight})
}

func emitBacktrack(obs Observer, v Vertex) {
	if obs == nil {
		return
	}
	emit(obs, StepEvent{Kind: EventBacktrack, Vertex: &v})
}

func emitSolution(obs Observer, labels Labeling) {
	if obs == nil {
		return
	}
	emit(obs, StepEvent{Kind: EventSolutionFound, Labels: labels.Clone()})
}
