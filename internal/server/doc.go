// Package server runs the contract server's HTTP transport.
//
// It owns the listener lifecycle: startup, signal handling, and graceful
// shutdown with a bounded drain period.
package server
