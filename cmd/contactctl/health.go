package main

import (
	"context"
	"os"
	"time"

	"github.com/hbjsyndicate/syndicate-api/internal/client"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the contact API is up",
	Run: func(cmd *cobra.Command, args []string) {
		apiURL, _ := cmd.Flags().GetString("api")

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		health, err := client.NewHTTPTransport(apiURL, nil).Health(ctx)
		if err != nil {
			logger.Error("❌ %s is not healthy: %v", apiURL, err)
			os.Exit(1)
		}
		logger.Info("✅ %s (%s)", health.Message, health.Timestamp)
	},
}

func initHealthCommand() {
	rootCmd.AddCommand(healthCmd)
}
