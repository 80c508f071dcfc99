// Package app contains the command handlers of docna: analyze, viewer and
// getconfig. Each handler takes a validated configuration, performs its work
// and returns an explicit Result or a *Failure describing what went wrong,
// decoupled from any specific entrypoint like a CLI.
package app
