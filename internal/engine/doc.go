// Package engine is the boundary to the external copy-number analysis
// engine.
//
// The orchestrator never computes segments itself. It builds a Request,
// hands it to an Engine and consumes the Result: report text keyed by kind
// and per-chromosome tables. CommandEngine drives the engine as a child
// process speaking a small JSON protocol on stdout.
package engine
