package main

import (
	"fmt"
	"os"

	"github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/api_client/config"
	"github.com/developer-overheid-nl/don-blueprint-visualizer/pkg/api_client/helper/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	logger  *zap.Logger
	cfg     config.Config
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "blueprint-visualizer",
	Short: "Valideer Kanister Blueprints en teken ze als sequence diagram",
	Long: `blueprint-visualizer serves the Blueprint validation form and its API.

POST a Blueprint (YAML) to /v1/validate to get a Mermaid sequenceDiagram back,
or use "render" to do the same from the command line.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(serveCmd, renderCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
