// Package dag provides the core dependency graph model for pipeline
// documents.
//
// # Overview
//
// A pipeline is an ordered list of processing modules, each declaring
// typed data inputs and outputs (images, objects, measurements). This
// package turns a slice of extracted ModuleRecords into a directed
// graph with two node kinds:
//
//   - Module nodes, keyed by a content-derived stable ID
//   - Data nodes, keyed by "{category}__{name}"
//
// # Stable IDs
//
// A module's identity is a pure function of its name and its typed I/O
// pattern, never of its position in the pipeline. Reordering modules
// without changing their own inputs or outputs leaves every ID
// untouched, which makes graphs of two pipeline revisions directly
// diffable. Two modules that share both name and exact I/O pattern
// collapse onto a single node; this merge is intentional.
//
// # Basic Usage
//
//	records := pipeline.Extract(doc, pipeline.DefaultRegistry())
//	g := dag.Build(records)
//
//	for _, n := range g.Nodes() {
//	    fmt.Println(n.Key, n.Kind)
//	}
//
// Graph mutation (node/edge upserts, removal) is idempotent: re-adding
// an existing key merges instead of erroring, and removing a node
// always removes its incident edges.
//
// # Thread Safety
//
// Graph is NOT safe for concurrent use. The intended model is a
// single-threaded batch transformation: build once, then hand the
// graph through the filter passes one at a time.
package dag
