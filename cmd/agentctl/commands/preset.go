package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/EidolonLabs/persona-launchpad/presets"
	"github.com/spf13/cobra"
)

var (
	presetSaveName   string
	presetSaveTraits string
	presetSaveStyle  string
	presetSaveModel  string
	presetSaveDesc   string
)

// PresetCmd represents the preset command group
var PresetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage persona presets",
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available presets",
	Run: func(cmd *cobra.Command, args []string) {
		registry := presets.NewRegistry()
		names, err := registry.ListPresets()
		if err != nil {
			fmt.Printf("Error listing presets: %v\n", err)
			os.Exit(1)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a preset definition",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		registry := presets.NewRegistry()
		preset, err := registry.GetPreset(args[0])
		if err != nil {
			fmt.Printf("Error loading preset: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Name:        %s\n", preset.Name)
		fmt.Printf("Traits:      %s\n", strings.Join(preset.Traits, ", "))
		fmt.Printf("Style:       %s\n", preset.Style)
		if preset.Model != "" {
			fmt.Printf("Model:       %s\n", preset.Model)
		}
		fmt.Printf("Description: %s\n", preset.Description)
	},
}

var presetSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a custom preset",
	Run: func(cmd *cobra.Command, args []string) {
		if presetSaveName == "" || presetSaveTraits == "" {
			fmt.Println("Error: name and traits are required")
			os.Exit(1)
		}

		registry := presets.NewRegistry()
		err := registry.SavePreset(presetSaveName, &presets.Preset{
			Name:        presetSaveName,
			Traits:      strings.Split(presetSaveTraits, ","),
			Style:       presetSaveStyle,
			Model:       presetSaveModel,
			Description: presetSaveDesc,
		})
		if err != nil {
			fmt.Printf("Error saving preset: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Preset %s saved\n", presetSaveName)
	},
}

func init() {
	presetSaveCmd.Flags().StringVar(&presetSaveName, "name", "", "Preset name")
	presetSaveCmd.Flags().StringVar(&presetSaveTraits, "traits", "", "Comma-separated traits")
	presetSaveCmd.Flags().StringVar(&presetSaveStyle, "style", "neutral", "Conversational style")
	presetSaveCmd.Flags().StringVar(&presetSaveModel, "model", "", "Model identifier")
	presetSaveCmd.Flags().StringVar(&presetSaveDesc, "description", "", "Preset description")

	PresetCmd.AddCommand(presetListCmd)
	PresetCmd.AddCommand(presetShowCmd)
	PresetCmd.AddCommand(presetSaveCmd)
}
