package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/lifespan/internal/schema"
)

// featuresCmd represents the features command
var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "Show the server-side feature schema",
	Long: `Fetch the service's /feature-info endpoint and display each
feature's description, accepted range, and type. Responses are cached
(memory + disk) since the schema only changes on redeploys; use
--no-cache to force a fresh fetch.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		info, err := newClient(cfg).FeatureInfo(ctx)
		if err != nil {
			return fmt.Errorf("fetch feature info: %w", err)
		}

		keys := make([]string, 0, len(info.Features))
		for key := range info.Features {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			detail := info.Features[key]
			fmt.Printf("%s\n", key)
			fmt.Printf("  range: %s (%s)\n", detail.Range, detail.Type)
			fmt.Printf("  %s\n", detail.Description)
		}
		if info.Note != "" {
			fmt.Printf("\nNote: %s\n", info.Note)
		}
		return nil
	},
}

// fieldsCmd represents the fields command
var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the local field registry",
	Long: `Display the client-side field registry: every indicator's key,
label, unit, and the inclusive range used for pre-flight validation.
No network access; the registry is the order fields are validated in.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for i, field := range schema.Fields() {
			unit := field.Unit
			if unit != "" {
				unit = " [" + unit + "]"
			}
			fmt.Printf("%2d. %-34s %-33s %g - %g%s\n", i+1, field.Label, string(field.Key), field.Min, field.Max, unit)
		}
		fmt.Printf("    %-34s %-33s 0 = Developing, 1 = Developed\n", "Development Status", schema.KeyStatus)
	},
}

func init() {
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(fieldsCmd)
}
