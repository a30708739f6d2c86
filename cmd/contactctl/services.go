package main

import (
	"github.com/hbjsyndicate/syndicate-api/internal/models"

	"github.com/spf13/cobra"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List the accepted form option values",
	Run: func(cmd *cobra.Command, args []string) {
		printCatalog("Services", models.Services)
		printCatalog("Budgets", models.Budgets)
		printCatalog("Timelines", models.Timelines)
	},
}

func printCatalog(title string, catalog models.Catalog) {
	logger.Info("%s:", title)
	for _, o := range catalog {
		logger.Info("  %-18s %s", o.Value, o.Label)
	}
}

func initServicesCommand() {
	rootCmd.AddCommand(servicesCmd)
}
