package main

import (
	"fmt"
	"os"

	"github.com/EidolonLabs/persona-launchpad/cmd/agentctl/commands"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "agentctl",
	Short: "Persona Launchpad CLI",
	Long:  `Command line interface for registering agents and driving persona onboarding.`,
}

func init() {
	rootCmd.AddCommand(commands.CreateCmd)
	rootCmd.AddCommand(commands.OnboardCmd)
	rootCmd.AddCommand(commands.PresetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
