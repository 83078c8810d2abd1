package onboarding

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/plateful/onboarding/analytics"
	"github.com/plateful/onboarding/event"
	"github.com/plateful/onboarding/persist"
	"github.com/plateful/onboarding/profile"
	"github.com/plateful/onboarding/progress"
	"github.com/plateful/onboarding/step"
	"github.com/plateful/onboarding/storage"
)

// Config wires the engine's collaborators. Zero values get working
// defaults, so Config{} yields a fully in-memory engine.
type Config struct {
	// Store persists snapshots and the completion marker. Defaults to an
	// in-memory store.
	Store storage.KV
	// Now supplies timestamps. Defaults to time.Now.
	Now func() time.Time
	// NewID mints session identifiers. Defaults to uuid.NewString.
	NewID func() string
	// Logf receives diagnostic lines. Defaults to log.Printf.
	Logf func(string, ...any)
}

// Engine owns one onboarding flow. All methods are safe for concurrent
// use.
type Engine struct {
	adapter *persist.Adapter
	now     func() time.Time
	newID   func() string
	logf    func(string, ...any)

	mu       sync.Mutex
	state    progress.State
	ready    bool
	finished bool
}

// New creates an engine. Call Start before applying transitions.
func New(cfg Config) *Engine {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.Logf == nil {
		cfg.Logf = log.Printf
	}

	return &Engine{
		adapter: persist.New(cfg.Store, cfg.Logf),
		now:     cfg.Now,
		newID:   cfg.NewID,
		logf:    cfg.Logf,
	}
}

// Start hydrates the engine. The completion marker is consulted first:
// when a prior run finished onboarding, the flow is marked done and the
// stored snapshot is never read. Otherwise a stored snapshot, if any,
// is merged over a fresh initial state. Start is idempotent and fails
// only on context cancellation.
func (e *Engine) Start(ctx context.Context) error {
	if e == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ready {
		return nil
	}

	fresh := progress.New(e.now(), e.newID())
	if e.adapter.HasCompletionMarker(ctx) {
		e.state = fresh
		e.finished = true
		e.ready = true
		return nil
	}

	if stored, ok := e.adapter.Load(ctx); ok {
		e.state = merge(stored, fresh)
		e.finished = e.state.Completed
	} else {
		e.state = fresh
	}
	e.ready = true
	return nil
}

// merge lays a stored snapshot over a fresh one. Stored fields win;
// identity fields the store never held fall back to their fresh values.
func merge(stored, fresh progress.State) progress.State {
	if stored.Analytics.SessionID == "" {
		stored.Analytics.SessionID = fresh.Analytics.SessionID
	}
	if stored.StartedAt.IsZero() {
		stored.StartedAt = fresh.StartedAt
	}
	if stored.Analytics.StartedAt.IsZero() {
		stored.Analytics.StartedAt = fresh.Analytics.StartedAt
	}
	if stored.CompletedSteps == nil {
		stored.CompletedSteps = step.NewSet()
	}
	if stored.SkippedSteps == nil {
		stored.SkippedSteps = step.NewSet()
	}
	if stored.Analytics.TimePerStep == nil {
		stored.Analytics.TimePerStep = make(map[step.Step]time.Duration)
	}
	return stored
}

// Advance completes the current step and moves to the next one.
func (e *Engine) Advance() {
	e.apply(progress.Advance{}, "advance")
}

// Skip bypasses the current step. The step still counts toward
// completion and the flow still moves forward.
func (e *Engine) Skip() {
	e.apply(progress.Skip{}, "skip")
}

// JumpTo moves directly to a step without touching the completion sets.
// Invalid steps are ignored.
func (e *Engine) JumpTo(s step.Step) {
	e.apply(progress.JumpTo{Step: s}, "jump")
}

// UpdateUserData merges a profile patch into the collected answers.
// Invalid patch fields are dropped before the merge.
func (e *Engine) UpdateUserData(patch profile.Patch) {
	e.apply(progress.Update{Patch: profile.NormalizePatch(patch)}, "update user data")
}

// Track appends an analytics event to the log. Events without a
// timestamp are stamped with the engine clock.
func (e *Engine) Track(evt event.Event) {
	e.apply(progress.Track{Event: evt}, "track event")
}

func (e *Engine) apply(act progress.Action, label string) {
	if e == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready {
		e.logf("onboarding: %s before start, ignored", label)
		return
	}
	if e.finished {
		e.logf("onboarding: %s after completion, ignored", label)
		return
	}

	e.state = progress.Apply(e.state, act, e.now)
	e.adapter.Save(e.state)
}

// Complete finishes onboarding: the snapshot is deleted and the
// completion marker is written, in that order. Future launches skip the
// flow entirely.
func (e *Engine) Complete() {
	if e == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready {
		e.logf("onboarding: complete before start, ignored")
		return
	}
	if e.finished {
		e.logf("onboarding: complete after completion, ignored")
		return
	}

	e.state = progress.Apply(e.state, progress.Complete{}, e.now)
	e.finished = true
	e.adapter.Clear()
	e.adapter.MarkCompleted()
}

// Reset discards all progress and starts a fresh flow with a new session.
// It is the one transition allowed at any time, including after
// completion; the completion marker is cleared so the flow shows again.
func (e *Engine) Reset() {
	if e == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = progress.Apply(e.state, progress.Reset{SessionID: e.newID()}, e.now)
	e.ready = true
	e.finished = false
	e.adapter.ClearCompletionMarker()
	e.adapter.Save(e.state)
}

// State returns a deep copy of the current snapshot.
func (e *Engine) State() progress.State {
	if e == nil {
		return progress.State{}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// CurrentStep returns the step currently presented.
func (e *Engine) CurrentStep() step.Step {
	if e == nil {
		return step.Welcome
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.CurrentStep
}

// CompletedSteps returns a copy of the completed set.
func (e *Engine) CompletedSteps() step.Set {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.CompletedSteps.Clone()
}

// SkippedSteps returns a copy of the skipped set.
func (e *Engine) SkippedSteps() step.Set {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.SkippedSteps.Clone()
}

// UserData returns a copy of the collected onboarding answers.
func (e *Engine) UserData() profile.Draft {
	if e == nil {
		return profile.Draft{}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.UserData.Clone()
}

// CompletionRate returns the completed percentage of the catalog, 0-100.
func (e *Engine) CompletionRate() float64 {
	if e == nil {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Analytics.CompletionRate
}

// Completed reports whether onboarding has finished, through this run or
// a prior one.
func (e *Engine) Completed() bool {
	if e == nil {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.finished
}

// Ready reports whether Start has hydrated the engine.
func (e *Engine) Ready() bool {
	if e == nil {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

// ShouldShow reports whether onboarding still needs to be presented.
func (e *Engine) ShouldShow() bool {
	if e == nil {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready && !e.finished
}

// Recorder returns the typed analytics facade bound to this engine.
func (e *Engine) Recorder() *analytics.Recorder {
	return analytics.NewRecorder(e)
}

// Close drains pending writes. The engine must not be used afterwards.
func (e *Engine) Close() error {
	if e == nil {
		return nil
	}
	return e.adapter.Close()
}
