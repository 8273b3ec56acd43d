package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	onboardAgentID     string
	onboardPreset      string
	onboardBatchSize   int
	onboardTotalTarget int
	onboardAPIURL      string
)

// OnboardCmd represents the onboard command group
var OnboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Drive persona onboarding for an agent",
}

var onboardStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start onboarding for an agent",
	Run: func(cmd *cobra.Command, args []string) {
		payload := map[string]interface{}{
			"preset": onboardPreset,
		}
		if onboardBatchSize > 0 {
			payload["batch_size"] = onboardBatchSize
		}
		if onboardTotalTarget > 0 {
			payload["total_target"] = onboardTotalTarget
		}

		resp := postJSON(onboardAPIURL+"/api/onboarding/"+onboardAgentID+"/start", payload)
		fmt.Printf("Onboarding accepted: state=%s target=%v\n", resp["state"], resp["total_target"])
	},
}

var onboardStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show onboarding session status",
	Run: func(cmd *cobra.Command, args []string) {
		resp := getJSON(onboardAPIURL + "/api/onboarding/" + onboardAgentID)
		fmt.Printf("State: %s\n", resp["state"])
		fmt.Printf("Answered: %v/%v\n", resp["answered_count"], resp["total_target"])
		if kind, ok := resp["error_kind"].(string); ok && kind != "" {
			fmt.Printf("Error: %s\n", kind)
		}
	},
}

var onboardCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel a running onboarding session",
	Run: func(cmd *cobra.Command, args []string) {
		postJSON(onboardAPIURL+"/api/onboarding/"+onboardAgentID+"/cancel", map[string]interface{}{})
		fmt.Println("Cancellation requested")
	},
}

func init() {
	OnboardCmd.PersistentFlags().StringVar(&onboardAgentID, "agent", "", "Agent ID")
	OnboardCmd.PersistentFlags().StringVar(&onboardAPIURL, "api-url", "http://localhost:3000", "API URL")
	onboardStartCmd.Flags().StringVar(&onboardPreset, "preset", "", "Preset to apply for this run")
	onboardStartCmd.Flags().IntVar(&onboardBatchSize, "batch-size", 0, "Batch size override")
	onboardStartCmd.Flags().IntVar(&onboardTotalTarget, "total-target", 0, "Total target override")

	if err := OnboardCmd.MarkPersistentFlagRequired("agent"); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	OnboardCmd.AddCommand(onboardStartCmd)
	OnboardCmd.AddCommand(onboardStatusCmd)
	OnboardCmd.AddCommand(onboardCancelCmd)
}
