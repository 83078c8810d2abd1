// Package progress implements the onboarding progression state machine.
//
// # Snapshot
//
// State is the single aggregate per device: the step currently shown, the
// sets of completed and skipped steps, the collected user answers, and the
// analytics block (event log plus derived figures). The machine owns its
// snapshot exclusively; callers read clones and request changes through
// actions.
//
// # Transitions
//
// Apply is a pure reducer: given a snapshot, an action and a clock it
// returns the next snapshot. The input is never mutated and no transition
// performs I/O or fails; out-of-range input leaves the snapshot unchanged.
// Persistence is a side effect the caller schedules after a new snapshot
// exists.
//
// # Derived figures
//
// The completion rate is recomputed from the completed set on every
// forward movement and forced to 100 by the terminal transition. Dwell
// time per step accrues whenever the user leaves a step, measured from the
// step's most recent viewed event (the session start for steps never
// recorded as viewed).
package progress
