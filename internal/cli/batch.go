package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/lifespan/internal/validate"
	"github.com/ppiankov/lifespan/internal/worker"
)

var (
	concurrency  int
	rps          float64
	batchTimeout time.Duration
	outJSON      string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Predict for multiple records from a YAML file",
	Long: `Batch validates and submits multiple records concurrently:
- Read records from a YAML file (list of entries with fields + status)
- Validate each record locally; invalid records never reach the network
- Submit valid records in parallel, paced by a client-side rate limit
- Report one outcome per record plus a summary

Example:
  lifespan batch countries.yaml
  lifespan batch countries.yaml --concurrency 8 --rps 10
  lifespan batch countries.yaml --json results.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default from config)")
	batchCmd.Flags().Float64Var(&rps, "rps", 0, "sustained requests per second (default from config)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for the batch run")
	batchCmd.Flags().StringVar(&outJSON, "json", "", "write full results to a JSON file")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	if concurrency > 0 {
		cfg.Batch.Workers = concurrency
	}
	if rps > 0 {
		cfg.Batch.RequestsPerSecond = rps
	}

	records, err := worker.ReadRecords(file)
	if err != nil {
		return fmt.Errorf("read records: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Input file:  %s\n", file)
		fmt.Fprintf(os.Stderr, "Records:     %d\n", len(records))
		fmt.Fprintf(os.Stderr, "Workers:     %d\n", cfg.Batch.Workers)
		fmt.Fprintf(os.Stderr, "Rate limit:  %.1f req/s (burst %d)\n", cfg.Batch.RequestsPerSecond, cfg.Batch.Burst)
		fmt.Fprintln(os.Stderr)
	}

	limiter := worker.NewLimiter(cfg.Batch.RequestsPerSecond, cfg.Batch.Burst)
	processor := worker.NewBatchProcessor(newClient(cfg), cfg.Batch.Workers, limiter, validate.Validate)

	results := processor.Process(ctx, records)

	succeeded := 0
	for _, result := range results {
		name := result.Name
		if name == "" {
			name = fmt.Sprintf("record %d", result.Index+1)
		}
		if result.Outcome.OK() {
			succeeded++
			fmt.Printf("%-40s %.2f years\n", name, result.Outcome.Value)
		} else {
			fmt.Printf("%-40s FAILED (%s): %s\n", name, result.Outcome.Kind, result.Outcome.Message)
		}
	}

	fmt.Printf("\n%d/%d records succeeded\n", succeeded, len(results))

	if outJSON != "" {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
		if err := os.WriteFile(outJSON, data, 0o644); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Results written to %s\n", outJSON)
	}

	if succeeded < len(results) {
		return fmt.Errorf("%d record(s) failed", len(results)-succeeded)
	}
	return nil
}
