// Package filter implements the ordered graph-rewriting passes that
// prune or highlight subgraphs of a pipeline dependency graph.
//
// The fixed pass order is:
//
//  1. Reachability — keep only nodes forward-reachable from requested
//     root data items.
//  2. UnusedData — drop data nodes no module consumes.
//  3. ExcludeModules — drop modules by name.
//  4. VoidedCleanup — fixed-point removal of modules left without any
//     active inputs or outputs (runs automatically when pass 2 or 3
//     affected anything).
//  5. MultiParent — when several modules produce one data item, keep
//     only the producer latest in the pipeline.
//
// Every pass honors a single removal strategy: ModeRemove deletes
// elements outright, ModeHighlight flags them filtered and keeps the
// topology, so a rendering can gray out what a removal run would cut.
// Both modes affect identical element sets.
//
// Passes are independent: each can be applied on its own via Apply, or
// in order through a Pipeline, which clones the graph before every
// pass and reports per-pass and cumulative affected counts.
package filter
