// Package scene keeps the rendered glyph set in step with the current slice.
//
// Reconciliation is keyed by entity identity:
//
//   - [Diff]: pure partition of a target slice against the live keys
//   - [Reconciler]: owns the live glyphs and applies a partition as a [Plan]
//   - [Glyph]: one circle bound to one identity, interpolating between
//     its previous and next position
//
// A pass removes exiting glyphs first, then creates entering glyphs with a
// fill fixed for their lifetime, then retargets persisting glyphs from their
// current rendered position. Removal is instantaneous.
//
// # Thread Safety
//
// A Reconciler is NOT safe for concurrent use. It is driven by a single
// control loop together with the playback scheduler.
package scene
