// Package services defines shared utilities consumed by the organizer and its
// external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, phase names, and the file being
//     handled so log lines can be correlated without threading extra params.
//   - Structured error markers plus the Wrap helper that keep fault kinds
//     (timeout, malformed response, configuration) reachable via errors.Is.
//
// Use these helpers when wiring new collaborators so operational behaviour
// (error handling, observability) stays uniform across the run.
package services
