// Package organizer runs an organization pass over a source tree.
//
// A run has three strictly sequential phases:
//
//   - collect: enumerate files and classify each one. A classification fault
//     is logged and replaced with the fallback category, the original name,
//     and no keywords; it never stops the run.
//   - consolidate: cluster raw categories by keyword similarity and name the
//     resulting groups (see package grouping).
//   - move: resolve a collision-free destination for every file and move it,
//     or only report the decision in a dry run. Decisions are identical in
//     both modes. A move fault leaves the file where it was and is counted in
//     Stats.Errors.
//
// Only faults outside the per-file loops abort a run: an unreadable source
// root, a target root that cannot be created, a held run lock, or a journal
// that cannot record the run.
//
// The Resolver checks for an existing file and the Mover acts on the result
// later. That check-then-act window is only safe with a single writer, which
// the run lock enforces between smartsort processes but not against other
// programs writing into the target tree.
package organizer
