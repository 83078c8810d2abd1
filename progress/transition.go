package progress

import (
	"time"

	"github.com/plateful/onboarding/event"
	"github.com/plateful/onboarding/profile"
	"github.com/plateful/onboarding/step"
)

// Apply runs one transition and returns the next snapshot. The input
// state is never mutated and no transition fails: invalid input leaves
// the snapshot unchanged.
func Apply(s State, act Action, now func() time.Time) State {
	if now == nil {
		now = time.Now
	}
	switch act := act.(type) {
	case Advance:
		return applyAdvance(s, now())
	case Skip:
		return applySkip(s, now())
	case JumpTo:
		return applyJump(s, act.Step, now())
	case Update:
		return applyUpdate(s, act.Patch)
	case Track:
		return applyTrack(s, act.Event, now())
	case Complete:
		return applyComplete(s, now())
	case Reset:
		return New(now(), act.SessionID)
	default:
		return s
	}
}

func applyAdvance(s State, now time.Time) State {
	now = event.Stamp(now)
	next := s.Clone()
	return advanceFrom(next, next.CurrentStep, now, true)
}

func applySkip(s State, now time.Time) State {
	now = event.Stamp(now)
	next := s.Clone()
	from := next.CurrentStep
	next.SkippedSteps = next.SkippedSteps.Add(from)
	next.Analytics.Events = append(next.Analytics.Events, event.New(event.TypeStepSkipped, from, map[string]any{
		event.KeySkippable: from.Skippable(),
	}, now))
	return advanceFrom(next, from, now, false)
}

// advanceFrom applies the forward movement shared by advance and skip:
// the departed step counts as completed, the rate is recomputed, and a
// non-terminal departure moves the pointer and records the newly shown
// step. Advancing from the terminal step only marks it completed.
func advanceFrom(next State, from step.Step, now time.Time, recordCompleted bool) State {
	if !from.IsTerminal() {
		next.Analytics = accrueDwell(next.Analytics, from, now)
	}
	next.CompletedSteps = next.CompletedSteps.Add(from)
	next.Analytics.CompletionRate = CompletionRate(next.CompletedSteps)
	if recordCompleted {
		next.Analytics.Events = append(next.Analytics.Events, event.New(event.TypeStepCompleted, from, nil, now))
	}
	if !from.IsTerminal() {
		next.CurrentStep = from.Next()
		next.Analytics.Events = append(next.Analytics.Events, event.New(event.TypeStepViewed, next.CurrentStep, nil, now))
	}
	return next
}

func applyJump(s State, target step.Step, now time.Time) State {
	if !target.IsValid() {
		return s
	}
	now = event.Stamp(now)
	next := s.Clone()
	from := next.CurrentStep
	if target != from {
		next.Analytics = accrueDwell(next.Analytics, from, now)
	}
	next.CurrentStep = target
	next.Analytics.Events = append(next.Analytics.Events, event.New(event.TypeStepViewed, target, map[string]any{
		event.KeyFromStep: int(from),
	}, now))
	return next
}

func applyUpdate(s State, patch profile.Patch) State {
	next := s.Clone()
	next.UserData = next.UserData.Merge(patch)
	return next
}

func applyTrack(s State, evt event.Event, now time.Time) State {
	next := s.Clone()
	evt = evt.Clone()
	if evt.Timestamp.IsZero() {
		evt.Timestamp = event.Stamp(now)
	} else {
		evt.Timestamp = event.Stamp(evt.Timestamp)
	}
	next.Analytics.Events = append(next.Analytics.Events, evt)
	return next
}

func applyComplete(s State, now time.Time) State {
	now = event.Stamp(now)
	next := s.Clone()
	next.Analytics = accrueDwell(next.Analytics, next.CurrentStep, now)
	next.Completed = true
	next.Analytics.CompletionRate = 100
	next.Analytics.Events = append(next.Analytics.Events, event.New(event.TypeStepCompleted, step.Completion, map[string]any{
		event.KeyElapsedMs:      now.Sub(next.StartedAt).Milliseconds(),
		event.KeyCompletedSteps: stepNumbers(next.CompletedSteps),
		event.KeySkippedSteps:   stepNumbers(next.SkippedSteps),
	}, now))
	return next
}

// accrueDwell charges the time since s was last shown to its dwell
// bucket. Steps with no viewed event (Welcome on a fresh run) charge
// from the session start. The analytics value must come from a cloned
// state; the map is updated in place.
func accrueDwell(a Analytics, s step.Step, now time.Time) Analytics {
	since := a.StartedAt
	for i := len(a.Events) - 1; i >= 0; i-- {
		evt := a.Events[i]
		if evt.Type == event.TypeStepViewed && evt.Step == s {
			since = evt.Timestamp
			break
		}
	}
	if since.IsZero() || now.Before(since) {
		return a
	}
	if a.TimePerStep == nil {
		a.TimePerStep = make(map[step.Step]time.Duration, step.Count)
	}
	a.TimePerStep[s] += now.Sub(since)
	return a
}

func stepNumbers(set step.Set) []int {
	sorted := set.Sorted()
	out := make([]int, len(sorted))
	for i, s := range sorted {
		out[i] = int(s)
	}
	return out
}
