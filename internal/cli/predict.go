package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/lifespan/internal/schema"
	"github.com/ppiankov/lifespan/internal/session"
	"github.com/ppiankov/lifespan/internal/worker"
)

var (
	inputFile   string
	useExample  bool
	setValues   []string
	jsonOutput  bool
	timeout     time.Duration
	insecureTLS bool
)

// predictCmd represents the predict command
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Validate indicators and request a prediction",
	Long: `Predict validates the 19 indicators locally against the model's
feature schema (presence, numeric format, inclusive ranges, in a fixed
field order) and, only if all pass, submits them to the service.

Field values come from a YAML record file, the built-in example
dataset, or --set overrides, applied in that order.

Example:
  lifespan predict --example
  lifespan predict --input country.yaml
  lifespan predict --example --set schooling=15 --set gdp=20000
  lifespan predict --input country.yaml --json`,
	Args: cobra.NoArgs,
	RunE: runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)

	predictCmd.Flags().StringVarP(&inputFile, "input", "i", "", "YAML record file with field values")
	predictCmd.Flags().BoolVar(&useExample, "example", false, "start from the built-in example dataset")
	predictCmd.Flags().StringArrayVar(&setValues, "set", nil, "override a field (key=value, repeatable)")
	predictCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the outcome as JSON")
	predictCmd.Flags().DurationVar(&timeout, "timeout", 0, "request timeout (default 60s)")
	predictCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification")
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if timeout > 0 {
		cfg.API.Timeout = timeout
	}
	if insecureTLS {
		cfg.API.InsecureTLS = true
	}

	sess := session.New(newClient(cfg))

	if useExample {
		sess.FillExample()
	}
	if inputFile != "" {
		record, err := readRecord(inputFile)
		if err != nil {
			return err
		}
		for key, raw := range record.Fields {
			sess.SetField(schema.FieldKey(key), raw)
		}
		sess.SetStatus(schema.Status(record.Status))
	}
	for _, kv := range setValues {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q (expected key=value)", kv)
		}
		if key == schema.KeyStatus {
			status, err := parseStatus(value)
			if err != nil {
				return err
			}
			sess.SetStatus(status)
			continue
		}
		if _, found := schema.Lookup(schema.FieldKey(key)); !found {
			return fmt.Errorf("unknown field %q", key)
		}
		sess.SetField(schema.FieldKey(key), value)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Service:  %s\n", cfg.API.BaseURL)
		fmt.Fprintf(os.Stderr, "Timeout:  %v\n", cfg.API.Timeout)
		fmt.Fprintln(os.Stderr)
	}

	ctx := context.Background()
	sess.Submit(ctx)
	if err := sess.Wait(ctx); err != nil {
		return err
	}

	view := sess.View()
	if view.Outcome == nil {
		return fmt.Errorf("submission did not resolve")
	}

	if jsonOutput {
		data, err := json.MarshalIndent(view.Outcome, "", "  ")
		if err != nil {
			return fmt.Errorf("encode outcome: %w", err)
		}
		fmt.Println(string(data))
		if !view.Outcome.OK() {
			os.Exit(1)
		}
		return nil
	}

	if !view.Outcome.OK() {
		return fmt.Errorf("%s", view.Outcome.Message)
	}

	fmt.Printf("Predicted life expectancy: %.2f years\n", view.Outcome.Value)
	return nil
}

// readRecord loads a single YAML record, accepting either a bare
// mapping or a one-entry list (the batch file shape).
func readRecord(path string) (worker.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return worker.Record{}, fmt.Errorf("open file: %w", err)
	}

	var records []worker.Record
	if err := yaml.Unmarshal(data, &records); err == nil && len(records) > 0 {
		if len(records) > 1 {
			return worker.Record{}, fmt.Errorf("%s contains %d records; use 'lifespan batch' for multiple", path, len(records))
		}
		return records[0], nil
	}

	var record worker.Record
	if err := yaml.Unmarshal(data, &record); err != nil {
		return worker.Record{}, fmt.Errorf("parse YAML: %w", err)
	}
	return record, nil
}

func parseStatus(value string) (schema.Status, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "0", "developing":
		return schema.StatusDeveloping, nil
	case "1", "developed":
		return schema.StatusDeveloped, nil
	default:
		return 0, fmt.Errorf("invalid status %q (use 0/developing or 1/developed)", value)
	}
}
