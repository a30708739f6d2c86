package main

import (
	"os"

	"github.com/hbjsyndicate/syndicate-api/internal/logging"
	"github.com/hbjsyndicate/syndicate-api/internal/version"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:5000"

var logger *logging.Logger

func initLogger() {
	cfg := logging.DefaultConfig()
	cfg.File = ""
	if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
		cfg.Level = "debug"
	}
	logging.Configure(cfg)
	logger = logging.GetLogger()
}

var rootCmd = &cobra.Command{
	Use:   "contactctl",
	Short: "contactctl - talk to the HBJ Syndicate contact API",
	Long: `contactctl submits contact form messages and checks the health of the
contact API from the command line.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.GetBuildInfo()
		logger.Info("contactctl %s", version.GetVersionString())
		logger.Info("Go %s on %s", info.GoVersion, info.Platform)
	},
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization cycle
	// (initLogger reads rootCmd's flags).
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		initLogger()
	}
	rootCmd.PersistentFlags().String("api", defaultAPIURL, "Base URL of the contact API")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(versionCmd)
	initSubmitCommand()
	initHealthCommand()
	initServicesCommand()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
