// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// selects one of the docna subcommands and translates its flags into the
// matching app configuration.
package cli
