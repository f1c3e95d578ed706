// Package lab implements the per-step simulation state machine behind the
// virtual chemistry experiments.
//
// An [Engine] owns a flat [State] record and advances it two ways:
//
//   - [Engine.Tick]: the fixed-interval reducer. It ramps temperature toward
//     the heater target (or the ice bath, or ambient), accrues reaction and
//     crystallization progress from the accumulated conditions, and counts
//     the bench timer.
//   - Discrete events ([Engine.AddChemical], [Engine.SetHeater], ...):
//     user-triggered actions that mutate the same record.
//
// Step completion is a pure predicate over the derived state:
// [Engine.CanAdvance] is true exactly when every condition of the current
// step holds simultaneously. Unmet conditions are UI state, not errors.
//
// Engines are not safe for concurrent use; the TUI and the session runner
// both serialize all updates onto one goroutine.
package lab
