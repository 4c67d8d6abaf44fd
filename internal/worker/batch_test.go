package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/lifespan/internal/model"
	"github.com/ppiankov/lifespan/internal/schema"
	"github.com/ppiankov/lifespan/internal/validate"
)

// fakePredictor returns a fixed outcome and counts calls.
type fakePredictor struct {
	calls   int32
	outcome model.Outcome
}

func (f *fakePredictor) Predict(ctx context.Context, req *model.ValidatedRequest) model.Outcome {
	atomic.AddInt32(&f.calls, 1)
	return f.outcome
}

func exampleFields() map[string]string {
	fields := make(map[string]string, schema.Count())
	for key, raw := range schema.Example {
		fields[string(key)] = raw
	}
	return fields
}

func TestBatchProcessor_Process(t *testing.T) {
	client := &fakePredictor{outcome: model.Succeeded(68.5)}
	processor := NewBatchProcessor(client, 4, NewLimiter(100, 10), validate.Validate)

	records := []Record{
		{Name: "first", Fields: exampleFields()},
		{Name: "second", Fields: exampleFields(), Status: 1},
		{Name: "third", Fields: exampleFields()},
	}

	results := processor.Process(context.Background(), records)

	if len(results) != len(records) {
		t.Fatalf("expected %d results, got %d", len(records), len(results))
	}
	for i, result := range results {
		if result.Index != i {
			t.Errorf("result %d out of order: index %d", i, result.Index)
		}
		if !result.Outcome.OK() {
			t.Errorf("%s: unexpected failure: %s", result.Name, result.Outcome.Message)
		}
	}
	if got := atomic.LoadInt32(&client.calls); got != 3 {
		t.Errorf("client called %d times, want 3", got)
	}
}

func TestBatchProcessor_InvalidRecordSkipsNetwork(t *testing.T) {
	client := &fakePredictor{outcome: model.Succeeded(68.5)}
	processor := NewBatchProcessor(client, 2, nil, validate.Validate)

	bad := exampleFields()
	bad["bmi"] = "abc"

	results := processor.Process(context.Background(), []Record{
		{Name: "good", Fields: exampleFields()},
		{Name: "bad", Fields: bad},
	})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !results[0].Outcome.OK() {
		t.Errorf("good record failed: %s", results[0].Outcome.Message)
	}
	if results[1].Outcome.Kind != model.ErrorInvalidFormat {
		t.Errorf("bad record kind = %v, want invalid_format", results[1].Outcome.Kind)
	}
	if results[1].GetError() == nil {
		t.Error("failed record reports nil error")
	}

	// Only the valid record may reach the service
	if got := atomic.LoadInt32(&client.calls); got != 1 {
		t.Errorf("client called %d times, want 1", got)
	}
}

// A batch larger than the pool's channel buffers must still run to
// completion.
func TestBatchProcessor_LargeBatch(t *testing.T) {
	client := &fakePredictor{outcome: model.Succeeded(68.5)}
	processor := NewBatchProcessor(client, 4, nil, validate.Validate)

	records := make([]Record, 50)
	for i := range records {
		records[i] = Record{Name: fmt.Sprintf("record-%d", i), Fields: exampleFields()}
	}

	done := make(chan []*PredictResult)
	go func() { done <- processor.Process(context.Background(), records) }()

	select {
	case results := <-done:
		if len(results) != len(records) {
			t.Fatalf("expected %d results, got %d", len(records), len(results))
		}
		for i, result := range results {
			if result.Index != i {
				t.Errorf("result %d out of order: index %d", i, result.Index)
			}
		}
		if got := atomic.LoadInt32(&client.calls); got != int32(len(records)) {
			t.Errorf("client called %d times, want %d", got, len(records))
		}
	case <-time.After(10 * time.Second):
		t.Fatal("batch did not complete")
	}
}

type ctxKey struct{}

// ctxCheckPredictor records whether the caller's context values reach
// the prediction call.
type ctxCheckPredictor struct {
	sawValue int32
}

func (p *ctxCheckPredictor) Predict(ctx context.Context, req *model.ValidatedRequest) model.Outcome {
	if ctx.Value(ctxKey{}) != nil {
		atomic.AddInt32(&p.sawValue, 1)
	}
	return model.Succeeded(68.5)
}

func TestBatchProcessor_CallerContextReachesJobs(t *testing.T) {
	client := &ctxCheckPredictor{}
	processor := NewBatchProcessor(client, 2, nil, validate.Validate)

	ctx := context.WithValue(context.Background(), ctxKey{}, "set")
	results := processor.Process(ctx, []Record{
		{Name: "one", Fields: exampleFields()},
		{Name: "two", Fields: exampleFields()},
	})

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if got := atomic.LoadInt32(&client.sawValue); got != 2 {
		t.Errorf("caller context reached %d of 2 predictions", got)
	}
}

func TestBatchProcessor_InvalidStatusReported(t *testing.T) {
	client := &fakePredictor{outcome: model.Succeeded(68.5)}
	processor := NewBatchProcessor(client, 2, nil, validate.Validate)

	results := processor.Process(context.Background(), []Record{
		{Name: "bogus", Fields: exampleFields(), Status: 7},
	})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Outcome.Kind != model.ErrorOutOfRange {
		t.Errorf("kind = %v, want out_of_range", results[0].Outcome.Kind)
	}
	if !strings.Contains(results[0].Outcome.Message, "status_numeric") {
		t.Errorf("message %q does not name the status field", results[0].Outcome.Message)
	}
	if got := atomic.LoadInt32(&client.calls); got != 0 {
		t.Errorf("client called %d times, want 0", got)
	}
}

func TestReadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.yaml")
	content := `- name: typical developing country
  status_numeric: 0
  fields:
    adult_mortality: 150
    gdp: "5000"
- name: developed country
  status_numeric: 1
  fields:
    adult_mortality: 60
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Fields["adult_mortality"] != "150" {
		t.Errorf("unquoted scalar = %q, want \"150\"", records[0].Fields["adult_mortality"])
	}
	if records[0].Fields["gdp"] != "5000" {
		t.Errorf("quoted scalar = %q, want \"5000\"", records[0].Fields["gdp"])
	}
	if records[1].Status != 1 {
		t.Errorf("status = %d, want 1", records[1].Status)
	}
}

func TestReadRecords_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadRecords(path); err == nil {
		t.Error("expected error for empty file")
	}
}

func TestReadRecords_MissingFile(t *testing.T) {
	if _, err := ReadRecords(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRecord_Input(t *testing.T) {
	record := Record{Fields: exampleFields(), Status: 1}
	in := record.Input()

	if got := in.Value(schema.KeyGDP); got != "5000" {
		t.Errorf("GDP = %q, want 5000", got)
	}
	if in.Status() != schema.StatusDeveloped {
		t.Errorf("status = %v, want Developed", in.Status())
	}
}
