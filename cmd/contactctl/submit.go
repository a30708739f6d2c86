package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/hbjsyndicate/syndicate-api/internal/api/validation"
	"github.com/hbjsyndicate/syndicate-api/internal/client"
	"github.com/hbjsyndicate/syndicate-api/internal/models"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

// formFlags maps each form field to its flag
var formFlags = []struct {
	field string
	flag  string
	usage string
}{
	{"firstName", "first-name", "First name (required)"},
	{"lastName", "last-name", "Last name (required)"},
	{"email", "email", "Email address (required)"},
	{"phone", "phone", "Phone number"},
	{"company", "company", "Company name"},
	{"service", "service", "Service slug, see 'contactctl services' (required)"},
	{"budget", "budget", "Budget range slug"},
	{"timeline", "timeline", "Timeline slug"},
	{"message", "message", "Message, at least 10 characters (required)"},
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Send a contact form message",
	Long: `Send a contact form message to the contact API.

Example:
  contactctl submit --first-name John --last-name Doe --email john@example.com \
    --service web-development --message "I need a new website built quickly."`,
	Run: func(cmd *cobra.Command, args []string) {
		apiURL, _ := cmd.Flags().GetString("api")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		newsletter, _ := cmd.Flags().GetBool("newsletter")

		store := client.NewStore(client.NewHTTPTransport(apiURL, nil))
		for _, f := range formFlags {
			value, _ := cmd.Flags().GetString(f.flag)
			if err := store.SetField(f.field, value); err != nil {
				logger.Error("Invalid %s: %v", f.flag, err)
				os.Exit(1)
			}
		}
		if err := store.SetField("newsletter", strconv.FormatBool(newsletter)); err != nil {
			logger.Error("Invalid newsletter: %v", err)
			os.Exit(1)
		}

		warnUnknownOptions(store.Form())

		// The server decides; local problems are only reported
		for _, problem := range validation.ValidateSubmission(store.Form()) {
			logger.Warn("%s", problem)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		pending, err := store.Submit(ctx)
		if err != nil {
			logger.Error("Not sent: %v", err)
			os.Exit(1)
		}

		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		s.Suffix = " Sending your message..."
		s.Start()
		state, err := pending.Wait(context.Background())
		s.Stop()

		if err != nil {
			logger.Error("Not sent: %v", err)
			os.Exit(1)
		}
		if state.Status != client.StatusSubmitted {
			logger.Error("%s", state.Error)
			os.Exit(1)
		}
		logger.Info("✅ %s", state.SuccessMessage)
	},
}

func warnUnknownOptions(s models.Submission) {
	if s.Service != "" && !models.Services.Contains(s.Service) {
		logger.Warn("Unknown service %q", s.Service)
	}
	if s.Budget != "" && !models.Budgets.Contains(s.Budget) {
		logger.Warn("Unknown budget %q", s.Budget)
	}
	if s.Timeline != "" && !models.Timelines.Contains(s.Timeline) {
		logger.Warn("Unknown timeline %q", s.Timeline)
	}
}

func initSubmitCommand() {
	for _, f := range formFlags {
		submitCmd.Flags().String(f.flag, "", f.usage)
	}
	submitCmd.Flags().Bool("newsletter", false, "Subscribe to the newsletter")
	submitCmd.Flags().Duration("timeout", 60*time.Second, "Give up waiting for the server after this long")

	rootCmd.AddCommand(submitCmd)
}
