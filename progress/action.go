package progress

import (
	"github.com/plateful/onboarding/event"
	"github.com/plateful/onboarding/profile"
	"github.com/plateful/onboarding/step"
)

// Action is one progression transition request. The set of actions is
// closed: only the types in this file satisfy it.
type Action interface {
	isAction()
}

// Advance marks the current step completed and moves to the next one.
type Advance struct{}

// Skip records an explicit bypass of the current step, then advances.
type Skip struct{}

// JumpTo navigates directly to an arbitrary valid step, e.g. from a
// progress-bar tap.
type JumpTo struct {
	Step step.Step
}

// Update shallow-merges a patch into the collected user data.
type Update struct {
	Patch profile.Patch
}

// Track appends an analytics event to the log.
type Track struct {
	Event event.Event
}

// Complete fires the terminal transition.
type Complete struct{}

// Reset replaces the snapshot with a fresh first-run state. The caller
// supplies the replacement session ID so the reducer stays free of
// entropy sources.
type Reset struct {
	SessionID string
}

func (Advance) isAction()  {}
func (Skip) isAction()     {}
func (JumpTo) isAction()   {}
func (Update) isAction()   {}
func (Track) isAction()    {}
func (Complete) isAction() {}
func (Reset) isAction()    {}
