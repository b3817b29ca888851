// Package pipeline sequences a compilation run:
//
//	Preflight → Scan → Group → Select → Sort → (Extract → Validate)* → Concat → Report
//
// The run is strictly linear and single-threaded. A day whose segment fails
// extraction or validation is skipped with a warning; setup failures and a
// failed join end the run. The per-run workspace holding the segments is
// removed on every exit path.
package pipeline
