package worker

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/lifespan/internal/form"
	"github.com/ppiankov/lifespan/internal/model"
	"github.com/ppiankov/lifespan/internal/schema"
)

// Predictor abstracts the prediction client for batch runs.
type Predictor interface {
	Predict(ctx context.Context, req *model.ValidatedRequest) model.Outcome
}

// Record is one batch entry in the same raw-text shape the interactive
// form uses: values are validated locally before any request is sent.
type Record struct {
	Name   string            `yaml:"name,omitempty"`
	Fields map[string]string `yaml:"fields"`
	Status int               `yaml:"status_numeric"`
}

// Input builds a form from the record's raw values.
func (r Record) Input() *form.Input {
	in := form.New()
	for key, raw := range r.Fields {
		in.Set(schema.FieldKey(key), raw)
	}
	in.SetStatus(schema.Status(r.Status))
	return in
}

// PredictJob validates and submits one record.
type PredictJob struct {
	Index   int
	Record  Record
	Client  Predictor
	Limiter *Limiter
	// Validate runs the pre-flight checks; injected so jobs stay
	// decoupled from the validate package in tests.
	Validate func(*form.Input) (*model.ValidatedRequest, *model.ValidationError)
}

// Execute runs the job. Validation failures never consume a rate-limit
// token or touch the network.
func (j *PredictJob) Execute(ctx context.Context) Result {
	// The form layer coerces unknown statuses, but file input must
	// report them instead of silently rewriting the record.
	if !schema.Status(j.Record.Status).Valid() {
		out := model.Failed(model.ErrorOutOfRange,
			fmt.Sprintf("status_numeric must be 0 or 1, got %d", j.Record.Status))
		return &PredictResult{Index: j.Index, Name: j.Record.Name, Outcome: out}
	}

	req, verr := j.Validate(j.Record.Input())
	if verr != nil {
		return &PredictResult{Index: j.Index, Name: j.Record.Name, Outcome: verr.Outcome()}
	}

	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx); err != nil {
			out := model.Failed(model.ErrorNetwork, fmt.Sprintf("rate limit wait: %v", err))
			return &PredictResult{Index: j.Index, Name: j.Record.Name, Outcome: out}
		}
	}

	return &PredictResult{Index: j.Index, Name: j.Record.Name, Outcome: j.Client.Predict(ctx, req)}
}

// PredictResult is the outcome of one batch record.
type PredictResult struct {
	Index   int           `json:"index"`
	Name    string        `json:"name,omitempty"`
	Outcome model.Outcome `json:"outcome"`
}

// GetError returns nil for successful predictions.
func (r *PredictResult) GetError() error {
	if r.Outcome.OK() {
		return nil
	}
	return fmt.Errorf("%s: %s", r.Outcome.Kind, r.Outcome.Message)
}

// BatchProcessor runs many records through the pool.
type BatchProcessor struct {
	client      Predictor
	concurrency int
	limiter     *Limiter
	validate    func(*form.Input) (*model.ValidatedRequest, *model.ValidationError)
}

// NewBatchProcessor creates a processor with the given concurrency and
// shared rate limiter.
func NewBatchProcessor(client Predictor, concurrency int, limiter *Limiter,
	validateFn func(*form.Input) (*model.ValidatedRequest, *model.ValidationError)) *BatchProcessor {
	return &BatchProcessor{
		client:      client,
		concurrency: concurrency,
		limiter:     limiter,
		validate:    validateFn,
	}
}

// Process runs all records concurrently and returns results in record
// order.
func (b *BatchProcessor) Process(ctx context.Context, records []Record) []*PredictResult {
	if len(records) == 0 {
		return []*PredictResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, record := range records {
		pool.Submit(&PredictJob{
			Index:    i,
			Record:   record,
			Client:   b.client,
			Limiter:  b.limiter,
			Validate: b.validate,
		})
	}

	results := pool.Wait()

	predictResults := make([]*PredictResult, 0, len(results))
	for _, result := range results {
		predictResults = append(predictResults, result.(*PredictResult))
	}
	sort.Slice(predictResults, func(i, j int) bool {
		return predictResults[i].Index < predictResults[j].Index
	})

	return predictResults
}

// ProcessFile reads records from a YAML file and processes them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*PredictResult, error) {
	records, err := ReadRecords(path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	return b.Process(ctx, records), nil
}

// ReadRecords loads batch records from a YAML file containing a list of
// entries.
func ReadRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	var records []Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no records in %s", path)
	}

	return records, nil
}
