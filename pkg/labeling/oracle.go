package labeling

// IsValid reports whether the labeling induces pairwise distinct weights on
// every edge whose both endpoints are labeled. Each undirected edge is
// evaluated exactly once, in its canonical direction (u < v). Unlabeled
// vertices impose no constraint.
//
// The check is a full scan; solvers use a weight tracker in their hot loops
// and call IsValid once on the completed labeling.
func IsValid(g Graph, labels Labeling) bool {
	seen := make(map[int]struct{}, g.Size())
	for u, nbs := range g {
		lu, ok := labels[u]
		if !ok {
			continue
		}
		for _, v := range nbs {
			lv, ok := labels[v]
			if !ok || !u.Less(v) {
				continue
			}
			w := lu + lv
			if _, dup := seen[w]; dup {
				return false
			}
			seen[w] = struct{}{}
		}
	}
	return true
}

// IsValidAt reports whether the edges incident to last are weight-compatible
// with the rest of the labeling. It rebuilds the weight set of all labeled
// edges not touching last, then checks last's own edges against it. Returns
// true vacuously when last is unlabeled.
//
// This trades recomputation for not needing a persistent tracker; it suits
// greedy call sites outside the backtracking hot path.
func IsValidAt(g Graph, labels Labeling, last Vertex) bool {
	lastLabel, ok := labels[last]
	if !ok {
		return true
	}

	existing := make(map[int]struct{}, g.Size())
	for u, nbs := range g {
		if u == last {
			continue
		}
		lu, ok := labels[u]
		if !ok {
			continue
		}
		for _, v := range nbs {
			if v == last || !u.Less(v) {
				continue
			}
			if lv, ok := labels[v]; ok {
				existing[lu+lv] = struct{}{}
			}
		}
	}

	for _, nb := range g[last] {
		lv, ok := labels[nb]
		if !ok {
			continue
		}
		w := lastLabel + lv
		if _, dup := existing[w]; dup {
			return false
		}
		existing[w] = struct{}{}
	}
	return true
}
