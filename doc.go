// Package onboarding drives a user's first-run setup through an ordered
// seven-step flow, from the welcome screen to completion.
//
// # Engine
//
// Engine is the explicit handle screens share. It owns the in-memory
// snapshot, applies every transition through the pure reducer in the
// progress package, and schedules persistence after each change. Reads
// return deep copies, so no caller can mutate the snapshot behind the
// engine's back.
//
// # Lifecycle
//
// Call New, then Start before anything else. Start consults the completion
// marker first; when a prior run finished onboarding the stored snapshot is
// never read. Otherwise any stored snapshot is merged over a fresh initial
// state. Transitions before Start, or after completion, are ignored; Reset
// is the one exception and always yields a live, fresh flow.
//
// # Persistence
//
// Saves are fire and forget. Transitions never block on storage and
// storage failures never surface to screens; they are logged and the flow
// carries on in memory.
package onboarding
