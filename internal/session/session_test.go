package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/lifespan/internal/model"
	"github.com/ppiankov/lifespan/internal/schema"
)

// fakeSubmitter counts calls and optionally blocks until released.
type fakeSubmitter struct {
	mu       sync.Mutex
	calls    int
	outcome  model.Outcome
	block    chan struct{} // If non-nil, Predict blocks until closed
	returned chan struct{} // If non-nil, closed when Predict returns
}

func (f *fakeSubmitter) Predict(ctx context.Context, req *model.ValidatedRequest) model.Outcome {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	if f.returned != nil {
		defer close(f.returned)
	}
	return f.outcome
}

func (f *fakeSubmitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestSubmit_ValidationFailure_NoNetworkCall(t *testing.T) {
	client := &fakeSubmitter{}
	sess := New(client)

	if !sess.Submit(context.Background()) {
		t.Fatal("submit on idle session rejected")
	}

	view := sess.View()
	if view.State != StateFailed {
		t.Fatalf("state = %v, want failed", view.State)
	}
	if view.Outcome == nil || view.Outcome.Kind != model.ErrorMissingField {
		t.Errorf("outcome = %+v, want missing_field", view.Outcome)
	}
	if client.callCount() != 0 {
		t.Errorf("client called %d times for a validation failure", client.callCount())
	}
}

func TestSubmit_Success(t *testing.T) {
	client := &fakeSubmitter{outcome: model.Succeeded(68.5)}
	sess := New(client)
	sess.FillExample()

	if !sess.Submit(context.Background()) {
		t.Fatal("submit rejected")
	}
	if err := sess.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	view := sess.View()
	if view.State != StateSucceeded {
		t.Fatalf("state = %v, want succeeded", view.State)
	}
	if view.Outcome == nil || view.Outcome.Value != 68.5 {
		t.Errorf("outcome = %+v, want 68.5", view.Outcome)
	}
}

func TestSubmit_FailureOutcome(t *testing.T) {
	client := &fakeSubmitter{outcome: model.Failed(model.ErrorServerRejected, "model unavailable")}
	sess := New(client)
	sess.FillExample()

	sess.Submit(context.Background())
	_ = sess.Wait(context.Background())

	view := sess.View()
	if view.State != StateFailed {
		t.Fatalf("state = %v, want failed", view.State)
	}
	if view.Outcome == nil || view.Outcome.Message != "model unavailable" {
		t.Errorf("outcome = %+v, want server detail", view.Outcome)
	}
}

func TestSubmit_ReentrantRejected(t *testing.T) {
	client := &fakeSubmitter{outcome: model.Succeeded(70), block: make(chan struct{})}
	sess := New(client)
	sess.FillExample()

	if !sess.Submit(context.Background()) {
		t.Fatal("first submit rejected")
	}
	if sess.Submit(context.Background()) {
		t.Error("second submit accepted while one is in flight")
	}
	if view := sess.View(); view.State != StateSubmitting || view.Outcome != nil {
		t.Errorf("unexpected mid-flight view: %+v", view)
	}

	close(client.block)
	if err := sess.Wait(context.Background()); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	if client.callCount() != 1 {
		t.Errorf("client called %d times, want 1", client.callCount())
	}
	if view := sess.View(); view.State != StateSucceeded {
		t.Errorf("state = %v, want succeeded", view.State)
	}
}

func TestClear_DuringFlight_DiscardsStaleResolution(t *testing.T) {
	client := &fakeSubmitter{
		outcome:  model.Succeeded(70),
		block:    make(chan struct{}),
		returned: make(chan struct{}),
	}
	sess := New(client)
	sess.FillExample()
	sess.Submit(context.Background())

	sess.Clear()

	if view := sess.View(); view.State != StateIdle || view.Outcome != nil {
		t.Fatalf("after clear: state = %v, outcome = %+v, want idle with no outcome", view.State, view.Outcome)
	}

	// Let the in-flight request resolve; its result must be dropped.
	close(client.block)
	<-client.returned
	time.Sleep(20 * time.Millisecond)

	view := sess.View()
	if view.State != StateIdle {
		t.Errorf("stale resolution applied: state = %v", view.State)
	}
	if view.Outcome != nil {
		t.Errorf("stale outcome displayed: %+v", view.Outcome)
	}
	if view.Form.Value(schema.KeyGDP) != "" {
		t.Errorf("form not cleared")
	}
}

func TestFillExample_DuringFlight(t *testing.T) {
	client := &fakeSubmitter{
		outcome:  model.Failed(model.ErrorTimeout, "too slow"),
		block:    make(chan struct{}),
		returned: make(chan struct{}),
	}
	sess := New(client)
	sess.FillExample()
	sess.Submit(context.Background())

	sess.FillExample()

	close(client.block)
	<-client.returned
	time.Sleep(20 * time.Millisecond)

	view := sess.View()
	if view.State != StateIdle || view.Outcome != nil {
		t.Errorf("stale failure applied: state = %v, outcome = %+v", view.State, view.Outcome)
	}
	if view.Form.Value(schema.KeyGDP) != "5000" {
		t.Errorf("example values missing after refill")
	}
}

func TestSubmit_AllowedFromTerminalStates(t *testing.T) {
	client := &fakeSubmitter{outcome: model.Succeeded(70)}
	sess := New(client)
	sess.FillExample()

	sess.Submit(context.Background())
	_ = sess.Wait(context.Background())
	if sess.View().State != StateSucceeded {
		t.Fatal("setup: expected succeeded")
	}

	// A new submit from a terminal state passes through Idle and runs again.
	if !sess.Submit(context.Background()) {
		t.Error("submit from succeeded state rejected")
	}
	_ = sess.Wait(context.Background())
	if client.callCount() != 2 {
		t.Errorf("client called %d times, want 2", client.callCount())
	}
}

func TestFieldAccessors(t *testing.T) {
	sess := New(&fakeSubmitter{})
	sess.SetField(schema.KeyBMI, "30")
	sess.SetStatus(schema.StatusDeveloped)

	if got := sess.Field(schema.KeyBMI); got != "30" {
		t.Errorf("Field = %q, want 30", got)
	}
	if sess.Status() != schema.StatusDeveloped {
		t.Errorf("Status = %v, want Developed", sess.Status())
	}
}

func TestState_Predicates(t *testing.T) {
	if !StateSucceeded.Terminal() || !StateFailed.Terminal() {
		t.Error("expected succeeded/failed to be terminal")
	}
	if StateIdle.Terminal() || StateSubmitting.Terminal() {
		t.Error("expected idle/submitting to be non-terminal")
	}
	if !StateSubmitting.Busy() || !StateValidating.Busy() {
		t.Error("expected submitting/validating to be busy")
	}
	if StateIdle.Busy() {
		t.Error("idle must not be busy")
	}
}
