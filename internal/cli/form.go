package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ppiankov/lifespan/internal/session"
	"github.com/ppiankov/lifespan/internal/tui"
)

// formCmd represents the form command
var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Fill the prediction form interactively",
	Long: `Start an interactive terminal session: edit the 19 indicators,
fill the example dataset, clear the form, and submit as many times as
you like. Validation failures name the first offending field; the form
keeps its values between submissions so you can correct and retry.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		sess := session.New(newClient(cfg))
		runner := tui.NewRunner(tui.NewSurveyDriver(), sess)
		return runner.Run(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(formCmd)
}
