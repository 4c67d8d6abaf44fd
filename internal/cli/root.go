package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	baseURL string
	noCache bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "lifespan",
	Short: "Lifespan - life expectancy prediction client",
	Long: `Lifespan is a client for the life expectancy prediction service.

It collects 19 health and economic indicators, validates them against
the model's feature schema locally, and submits them for prediction.
Validation failures are reported before any request is sent; network
and server failures are reported as precise, human-readable errors.

Indicators cover mortality, immunization coverage, health spending,
and development metrics from the WHO life expectancy dataset.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Lifespan.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("lifespan v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.lifespan/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "prediction service base URL")
	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "disable the response cache")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("api.base_url", rootCmd.PersistentFlags().Lookup("base-url"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(filepath.Join(home, ".lifespan"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match LIFESPAN_*
	viper.SetEnvPrefix("LIFESPAN")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}
