package core

// Agent represents an AI-powered conversational entity registered with the launchpad.
type Agent struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Traits        []string `json:"traits"`
	Style         string   `json:"style"`
	Model         string   `json:"model"`
	Preset        string   `json:"preset,omitempty"`
	GenesisPrompt string   `json:"genesis_prompt,omitempty"`
}
