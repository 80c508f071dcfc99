// Package config loads the INI run configuration handed to the analysis
// engine.
//
// The configuration schema belongs to the engine. This package only reads the
// file into an ordered, immutable RunConfiguration and writes it back out
// unchanged, so the orchestrator can pass it through without interpreting it.
package config
