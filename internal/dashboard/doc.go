// Package dashboard launches the visualization web app as a child process
// bound to a resolved host and port.
package dashboard
