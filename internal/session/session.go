// Package session sequences validation and submission for one
// prediction form. It owns the form input and the UI-facing state, and
// guarantees at most one in-flight request: a second submit while one
// is outstanding is rejected, and a clear or example-fill during
// submission invalidates the in-flight request's eventual resolution
// via a generation counter rather than cancelling it.
package session

import (
	"context"
	"sync"

	"github.com/ppiankov/lifespan/internal/form"
	"github.com/ppiankov/lifespan/internal/model"
	"github.com/ppiankov/lifespan/internal/schema"
	"github.com/ppiankov/lifespan/internal/validate"
)

// Submitter abstracts the prediction client.
type Submitter interface {
	Predict(ctx context.Context, req *model.ValidatedRequest) model.Outcome
}

// Session is the orchestration state machine:
//
//	Idle -> Validating -> Submitting -> (Succeeded | Failed) -> Idle
//
// Actions are expected to arrive from a single UI loop; the mutex only
// covers the handoff with the resolution goroutine.
type Session struct {
	mu         sync.Mutex
	client     Submitter
	form       *form.Input
	state      State
	outcome    *model.Outcome
	generation uint64        // Bumped by submit/clear/fill; tags in-flight work
	inflight   chan struct{} // Closed when the current submission resolves
}

// New creates an idle session with an empty form.
func New(client Submitter) *Session {
	return &Session{
		client: client,
		form:   form.New(),
		state:  StateIdle,
	}
}

// SetField records a raw text value. Editing is allowed in any state;
// it does not touch the displayed outcome.
func (s *Session) SetField(key schema.FieldKey, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.Set(key, raw)
}

// SetStatus records the development-status selection.
func (s *Session) SetStatus(status schema.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.SetStatus(status)
}

// Field returns the current raw text for a field.
func (s *Session) Field(key schema.FieldKey) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Value(key)
}

// Status returns the current status selection.
func (s *Session) Status() schema.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form.Status()
}

// Submit runs validation and, if it passes, launches the network
// exchange. It reports false when rejected because a submission is
// already in flight. Validation failures resolve synchronously into
// the Failed state without any network call.
func (s *Session) Submit(ctx context.Context) bool {
	s.mu.Lock()
	if s.state.Busy() {
		s.mu.Unlock()
		return false
	}
	s.state = StateValidating
	s.outcome = nil
	snapshot := s.form.Snapshot()
	s.mu.Unlock()

	req, verr := validate.Validate(snapshot)
	if verr != nil {
		out := verr.Outcome()
		s.mu.Lock()
		s.outcome = &out
		s.state = StateFailed
		s.mu.Unlock()
		return true
	}

	s.mu.Lock()
	s.state = StateSubmitting
	s.generation++
	gen := s.generation
	done := make(chan struct{})
	s.inflight = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		s.resolve(gen, s.client.Predict(ctx, req))
	}()
	return true
}

// resolve applies a submission result unless the session has moved on
// since the request was launched, in which case the result is dropped.
func (s *Session) resolve(gen uint64, out model.Outcome) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation || s.state != StateSubmitting {
		return // Stale resolution
	}
	s.outcome = &out
	if out.OK() {
		s.state = StateSucceeded
	} else {
		s.state = StateFailed
	}
	s.inflight = nil
}

// Wait blocks until the current submission resolves (or is discarded),
// or the context expires. Returns immediately when nothing is in
// flight.
func (s *Session) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.inflight
	s.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Clear empties the form and returns to Idle. An in-flight request is
// not cancelled; its resolution will be discarded as stale.
func (s *Session) Clear() {
	s.reset(func() { s.form.Reset() })
}

// FillExample overwrites the form with the example dataset and returns
// to Idle, with the same stale-discard behavior as Clear.
func (s *Session) FillExample() {
	s.reset(func() { s.form.FillExample() })
}

func (s *Session) reset(mutate func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.outcome = nil
	s.state = StateIdle
	s.inflight = nil
	mutate()
}

// View is a consistent snapshot for the rendering layer.
type View struct {
	State   State
	Outcome *model.Outcome // Nil unless State is terminal
	Form    *form.Input    // Independent copy
}

// View returns the current state, outcome, and a form snapshot.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out *model.Outcome
	if s.outcome != nil {
		cp := *s.outcome
		out = &cp
	}
	return View{State: s.state, Outcome: out, Form: s.form.Snapshot()}
}
