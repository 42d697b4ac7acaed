// Package pipeline is the input boundary: it parses pipeline documents
// (JSON or YAML) and pre-resolved dependency documents into the typed
// ModuleRecords the dag package builds graphs from.
//
// Pipeline documents list modules with raw name/value settings. Typed
// I/O is recognized by exact match against an appendable registry of
// known setting-type identifiers; unknown settings are ignored for
// forward compatibility, never rejected.
//
// Dependency documents carry explicit typed input/output records plus
// optional per-module liveness annotations, and are validated against
// their schema before any graph work starts. Measurement dependencies
// must name both their object and their feature.
package pipeline
