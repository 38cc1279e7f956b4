// Package logger provides a leveled diagnostic logger that writes to a file
// or to standard output. Unlike a process-wide singleton, every Logger is an
// explicit value with its own go-logging backend: create it once with New,
// hand it to the components that want diagnostics, and shut it down with
// Close.
package logger
