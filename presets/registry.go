package presets

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/EidolonLabs/persona-launchpad/core"
)

// Preset defines a reusable persona template for creating new agents.
type Preset struct {
	Name        string   `json:"name"`
	Traits      []string `json:"traits"`
	Style       string   `json:"style"`
	Model       string   `json:"model,omitempty"`
	Description string   `json:"description"`
}

// Registry manages persona presets stored as JSON files.
type Registry struct {
	presetsDir string
}

// NewRegistry creates a preset registry under the user's home directory.
func NewRegistry() *Registry {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	presetsDir := filepath.Join(homeDir, ".personachain", "presets")
	os.MkdirAll(presetsDir, 0755)

	return &Registry{
		presetsDir: presetsDir,
	}
}

// SavePreset saves a preset to the filesystem.
func (r *Registry) SavePreset(name string, preset *Preset) error {
	presetPath := filepath.Join(r.presetsDir, name+".json")
	data, err := json.MarshalIndent(preset, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(presetPath, data, 0644)
}

// GetPreset loads a preset from the filesystem, falling back to the
// built-in defaults.
func (r *Registry) GetPreset(name string) (*Preset, error) {
	presetPath := filepath.Join(r.presetsDir, name+".json")
	data, err := os.ReadFile(presetPath)
	if err != nil {
		if preset, ok := DefaultPresets()[name]; ok {
			return preset, nil
		}
		return nil, err
	}

	var preset Preset
	if err := json.Unmarshal(data, &preset); err != nil {
		return nil, err
	}

	return &preset, nil
}

// ListPresets returns all available preset names, built-ins included.
func (r *Registry) ListPresets() ([]string, error) {
	names := make(map[string]bool)
	for name := range DefaultPresets() {
		names[name] = true
	}

	files, err := os.ReadDir(r.presetsDir)
	if err == nil {
		for _, file := range files {
			if !file.IsDir() && filepath.Ext(file.Name()) == ".json" {
				names[file.Name()[:len(file.Name())-5]] = true
			}
		}
	}

	list := make([]string, 0, len(names))
	for name := range names {
		list = append(list, name)
	}
	return list, nil
}

// Apply fills unset agent fields from the preset.
func (p *Preset) Apply(agent *core.Agent) {
	if len(agent.Traits) == 0 {
		agent.Traits = p.Traits
	}
	if agent.Style == "" {
		agent.Style = p.Style
	}
	if agent.Model == "" {
		agent.Model = p.Model
	}
}
