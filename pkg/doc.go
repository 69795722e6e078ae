// Package pkg provides the core libraries for tentlabel.
//
// # Overview
//
// Tentlabel computes the edge irregularity strength of a graph: the smallest
// k such that vertex labels drawn from [1, k] give every edge a distinct
// weight (the sum of its endpoint labels). The pkg directory is organized
// into four main areas:
//
//  1. [labeling] - Solvers (exact backtracking, branch-and-bound, heuristics)
//  2. [graphgen] - Graph families (Mongolian Tent, circulant) and bounds
//  3. [pipeline] - Orchestration (generate → solve → validate → cache)
//  4. [cache], [record], [config], [observability] - Infrastructure
//
// # Architecture
//
// The typical data flow through tentlabel:
//
//	Graph parameters (family, n, r)
//	         ↓
//	    [graphgen] package (build the graph, compute the lower bound)
//	         ↓
//	    [labeling] package (search for the minimum feasible k)
//	         ↓
//	    [pipeline] package (assemble and cache the result)
//	         ↓
//	    CLI output / HTTP API / JSON recording
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil)
//	defer runner.Close()
//	res, err := runner.Solve(ctx, pipeline.Options{
//	    Kind:   graphgen.KindMongolianTent,
//	    Params: graphgen.Params{N: 3},
//	})
package pkg
