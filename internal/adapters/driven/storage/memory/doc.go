// Package memory provides in-memory implementations of driven ports.
// They back tests and let the CLI run against data supplied in-process.
package memory
