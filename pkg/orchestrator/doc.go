// Package orchestrator wires the record → preview → preset → renderer
// pipeline, with optional PDF export, behind a single entry point for callers
// that render a Record without holding an editing session.
package orchestrator
