package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the prediction service health",
	Long: `Query the service's /health endpoint and report whether the
model is loaded and ready to serve predictions.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		status, err := newClient(cfg).Health(ctx)
		if err != nil {
			return fmt.Errorf("health check failed: %w", err)
		}

		fmt.Printf("Status:       %s\n", status.Status)
		fmt.Printf("Model loaded: %v\n", status.ModelLoaded)
		fmt.Printf("Message:      %s\n", status.Message)

		if !status.Healthy() {
			return fmt.Errorf("service is not ready")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
