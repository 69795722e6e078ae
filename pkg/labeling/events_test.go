package labeling

import "testing"

func TestObserverReceivesCausalEventOrder(t *testing.T) {
	// Single edge: the exact solver labels both endpoints, computes one
	// weight, and reports the solution.
	g := Graph{}
	g.AddEdge(ID(0), ID(1))

	var kinds []EventKind
	k, labels := SolveExact(g, 1, Options{OnStep: func(ev StepEvent) {
		kinds = append(kinds, ev.Kind)
	}})

	if k != 1 {
		t.Fatalf("SolveExact k = %d, want 1", k)
	}
	if labels == nil {
		t.Fatal("SolveExact returned nil labeling")
	}

	want := []EventKind{EventVertexLabeled, EventVertexLabeled, EventEdgeWeightCalculated, EventSolutionFound}
	if len(kinds) != len(want) {
		t.Fatalf("got %d events (%v), want %d", len(kinds), kinds, len(want))
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event[%d] = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestSolutionEventCarriesClonedLabels(t *testing.T) {
	g := Graph{}
	g.AddEdge(ID(0), ID(1))

	var solution Labeling
	k, labels := SolveExact(g, 1, Options{OnStep: func(ev StepEvent) {
		if ev.Kind == EventSolutionFound {
			solution = ev.Labels
		}
	}})
	if solution == nil {
		t.Fatal("no SolutionFound event observed")
	}
	if solution.MaxLabel() != k {
		t.Errorf("solution max label = %d, want %d", solution.MaxLabel(), k)
	}

	// Mutating the returned labeling must not touch the event payload.
	labels[ID(0)] = 99
	if solution[ID(0)] == 99 {
		t.Error("SolutionFound labels alias the solver's labeling")
	}
}

func TestPanickingObserverDoesNotAbortSearch(t *testing.T) {
	g := Graph{}
	g.AddEdge(ID(0), ID(1))
	g.AddEdge(ID(1), ID(2))

	k, labels := SolveExact(g, 1, Options{OnStep: func(StepEvent) {
		panic("observer gone wrong")
	}})
	if labels == nil {
		t.Fatal("search aborted by a panicking observer")
	}
	if !IsValid(g, labels) {
		t.Error("labeling invalid after observer panics")
	}
	if k != 2 {
		t.Errorf("k = %d, want 2", k)
	}
}

func TestOnStepWinsOverOnEvent(t *testing.T) {
	g := Graph{}
	g.AddEdge(ID(0), ID(1))

	stepCount, eventCount := 0, 0
	SolveExact(g, 1, Options{
		OnStep:  func(StepEvent) { stepCount++ },
		OnEvent: func(StepEvent) { eventCount++ },
	})
	if stepCount == 0 {
		t.Error("OnStep should receive events")
	}
	if eventCount != 0 {
		t.Error("OnEvent should be ignored when OnStep is set")
	}
}

func TestWeightEventsUseCanonicalDirection(t *testing.T) {
	g := Graph{}
	g.AddEdge(ID(1), ID(0)) // deliberately reversed

	SolveExact(g, 1, Options{OnStep: func(ev StepEvent) {
		if ev.Kind != EventEdgeWeightCalculated {
			return
		}
		if !ev.Edge.U.Less(ev.Edge.V) {
			t.Errorf("edge %v-%v not in canonical direction", ev.Edge.U, ev.Edge.V)
		}
	}})
}

func TestNilObserverIsFree(t *testing.T) {
	g := Graph{}
	g.AddEdge(ID(0), ID(1))
	k, labels := SolveExact(g, 1, Options{})
	if k != 1 || labels == nil {
		t.Fatalf("SolveExact without observers = (%d, %v)", k, labels)
	}
}
