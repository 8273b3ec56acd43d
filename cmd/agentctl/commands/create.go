package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	createPresetName string
	createAgentName  string
	createTraits     string
	createStyle      string
	createModel      string
	createAPIURL     string
)

// CreateCmd represents the create command
var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new agent",
	Long:  `Register a new agent from a preset or with custom parameters.`,
	Run: func(cmd *cobra.Command, args []string) {
		if createAgentName == "" {
			fmt.Println("Error: agent name is required")
			os.Exit(1)
		}

		payload := map[string]interface{}{
			"name":   createAgentName,
			"preset": createPresetName,
			"style":  createStyle,
			"model":  createModel,
		}
		if createTraits != "" {
			payload["traits"] = strings.Split(createTraits, ",")
		}

		resp := postJSON(createAPIURL+"/api/agents", payload)
		fmt.Printf("Agent registered!\n")
		fmt.Printf("Agent ID: %s\n", resp["agentID"])
	},
}

func init() {
	CreateCmd.Flags().StringVar(&createPresetName, "preset", "", "Preset name to use")
	CreateCmd.Flags().StringVar(&createAgentName, "name", "", "Name for the agent")
	CreateCmd.Flags().StringVar(&createTraits, "traits", "", "Comma-separated list of traits")
	CreateCmd.Flags().StringVar(&createStyle, "style", "", "Agent style")
	CreateCmd.Flags().StringVar(&createModel, "model", "", "Model identifier for the agent")
	CreateCmd.Flags().StringVar(&createAPIURL, "api-url", "http://localhost:3000", "API URL")

	CreateCmd.MarkFlagRequired("name")
}

// postJSON sends a request to the launchpad API and decodes the response.
func postJSON(url string, payload interface{}) map[string]interface{} {
	requestJSON, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		os.Exit(1)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(requestJSON))
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("Error reading response: %v\n", err)
		os.Exit(1)
	}

	if resp.StatusCode >= 300 {
		fmt.Printf("Error from API: %s\n", body)
		os.Exit(1)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		fmt.Printf("Error parsing response: %v\n", err)
		os.Exit(1)
	}
	return response
}

// getJSON fetches a URL from the launchpad API and decodes the response.
func getJSON(url string) map[string]interface{} {
	resp, err := http.Get(url)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Printf("Error reading response: %v\n", err)
		os.Exit(1)
	}

	if resp.StatusCode >= 300 {
		fmt.Printf("Error from API: %s\n", body)
		os.Exit(1)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		fmt.Printf("Error parsing response: %v\n", err)
		os.Exit(1)
	}
	return response
}
