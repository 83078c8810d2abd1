// Package persist stores onboarding snapshots and the completion marker
// behind a small key-value contract.
//
// # Layout
//
// Two keys: one JSON snapshot of the whole onboarding state, and a separate
// completion marker consulted at launch before the snapshot is ever read.
//
// # Write path
//
// Writes are fire-and-forget. Callers enqueue encoded operations and a single
// background writer applies them strictly in submission order, so a save can
// never land after the clear that followed it. Storage failures are logged
// and swallowed; onboarding progression never stalls on a disk.
package persist

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/plateful/onboarding/progress"
	"github.com/plateful/onboarding/storage"
	"github.com/plateful/onboarding/storage/memory"
)

const (
	stateKey       = "onboarding/state"
	completedKey   = "onboarding/completed"
	completedValue = "true"
)

type opKind int

const (
	opSaveState opKind = iota
	opClearState
	opMarkCompleted
	opClearMarker
)

func (k opKind) String() string {
	switch k {
	case opSaveState:
		return "save state"
	case opClearState:
		return "clear state"
	case opMarkCompleted:
		return "mark completed"
	case opClearMarker:
		return "clear completion marker"
	default:
		return "unknown operation"
	}
}

type operation struct {
	kind    opKind
	payload string
}

// Adapter persists onboarding snapshots to a key-value store through an
// ordered fire-and-forget write queue.
type Adapter struct {
	store storage.KV
	logf  func(string, ...any)

	mu     sync.Mutex
	queue  []operation
	closed bool

	wake chan struct{}
	done chan struct{}
}

// New returns an adapter writing through store. A nil store falls back to an
// in-memory store and a nil logf to the standard logger.
func New(store storage.KV, logf func(string, ...any)) *Adapter {
	if store == nil {
		store = memory.New()
	}
	if logf == nil {
		logf = log.Printf
	}

	adapter := &Adapter{
		store: store,
		logf:  logf,
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	go adapter.run()
	return adapter
}

// Load reads and decodes the stored snapshot. A missing key, a storage
// failure, or a corrupt payload all report no snapshot; failures beyond a
// plain miss are logged.
func (a *Adapter) Load(ctx context.Context) (progress.State, bool) {
	if a == nil || a.store == nil {
		return progress.State{}, false
	}

	raw, err := a.store.Get(ctx, stateKey)
	if errors.Is(err, storage.ErrNotFound) {
		return progress.State{}, false
	}
	if err != nil {
		a.logf("onboarding: load state: %v", err)
		return progress.State{}, false
	}

	state, err := Decode([]byte(raw))
	if err != nil {
		a.logf("onboarding: decode state: %v", err)
		return progress.State{}, false
	}
	return state, true
}

// HasCompletionMarker reports whether a prior run finished onboarding. It is
// the launch gate checked before the snapshot key is consulted.
func (a *Adapter) HasCompletionMarker(ctx context.Context) bool {
	if a == nil || a.store == nil {
		return false
	}

	raw, err := a.store.Get(ctx, completedKey)
	if errors.Is(err, storage.ErrNotFound) {
		return false
	}
	if err != nil {
		a.logf("onboarding: read completion marker: %v", err)
		return false
	}
	return raw == completedValue
}

// Save encodes state now and enqueues the write. Consecutive pending saves
// collapse to the newest snapshot.
func (a *Adapter) Save(state progress.State) {
	if a == nil {
		return
	}

	payload, err := Encode(state)
	if err != nil {
		a.logf("onboarding: encode state: %v", err)
		return
	}
	a.enqueue(operation{kind: opSaveState, payload: string(payload)})
}

// Clear enqueues deletion of the stored snapshot.
func (a *Adapter) Clear() {
	if a == nil {
		return
	}
	a.enqueue(operation{kind: opClearState})
}

// MarkCompleted enqueues writing the completion marker.
func (a *Adapter) MarkCompleted() {
	if a == nil {
		return
	}
	a.enqueue(operation{kind: opMarkCompleted})
}

// ClearCompletionMarker enqueues deletion of the completion marker.
func (a *Adapter) ClearCompletionMarker() {
	if a == nil {
		return
	}
	a.enqueue(operation{kind: opClearMarker})
}

// Close drains pending writes and stops the background writer. It is safe to
// call more than once.
func (a *Adapter) Close() error {
	if a == nil || a.done == nil {
		return nil
	}

	a.mu.Lock()
	alreadyClosed := a.closed
	a.closed = true
	a.mu.Unlock()

	if !alreadyClosed {
		a.signal()
	}
	<-a.done
	return nil
}

func (a *Adapter) enqueue(op operation) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		a.logf("onboarding: %s after close, dropped", op.kind)
		return
	}
	if op.kind == opSaveState {
		if n := len(a.queue); n > 0 && a.queue[n-1].kind == opSaveState {
			a.queue[n-1].payload = op.payload
			a.mu.Unlock()
			a.signal()
			return
		}
	}
	a.queue = append(a.queue, op)
	a.mu.Unlock()
	a.signal()
}

func (a *Adapter) signal() {
	select {
	case a.wake <- struct{}{}:
	default:
	}
}

func (a *Adapter) run() {
	defer close(a.done)
	for {
		a.mu.Lock()
		if len(a.queue) == 0 {
			closed := a.closed
			a.mu.Unlock()
			if closed {
				return
			}
			<-a.wake
			continue
		}
		op := a.queue[0]
		a.queue = a.queue[1:]
		a.mu.Unlock()

		a.apply(op)
	}
}

func (a *Adapter) apply(op operation) {
	ctx := context.Background()

	var err error
	switch op.kind {
	case opSaveState:
		err = a.store.Set(ctx, stateKey, op.payload)
	case opClearState:
		err = a.store.Delete(ctx, stateKey)
	case opMarkCompleted:
		err = a.store.Set(ctx, completedKey, completedValue)
	case opClearMarker:
		err = a.store.Delete(ctx, completedKey)
	}
	if err != nil {
		a.logf("onboarding: %s: %v", op.kind, err)
	}
}
