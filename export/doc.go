// Package export turns a filtered dependency graph into deterministic
// output: a normalized, node- and edge-sorted document with resolved
// display labels, optional styling and rank metadata, and writers for
// DOT, GraphML and GEXF plus a console summary.
//
// Minimal mode strips everything except node types and bare edges, so
// two pipeline revisions can be diffed as plain text without incidental
// attribute churn.
package export
