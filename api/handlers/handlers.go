package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/EidolonLabs/persona-launchpad/ai"
	"github.com/EidolonLabs/persona-launchpad/beliefs"
	"github.com/EidolonLabs/persona-launchpad/communication"
	"github.com/EidolonLabs/persona-launchpad/core"
	"github.com/EidolonLabs/persona-launchpad/metrics"
	"github.com/EidolonLabs/persona-launchpad/onboarding"
	"github.com/EidolonLabs/persona-launchpad/presets"
	"github.com/EidolonLabs/persona-launchpad/registry"
)

// Deps are the collaborators the handlers dispatch into, wired once at
// startup.
type Deps struct {
	Manager     *onboarding.Manager
	Beliefs     *beliefs.Store
	Tracker     *metrics.Tracker
	Broadcaster *communication.Broadcaster
	Presets     *presets.Registry
	OpenAIKey   string
}

var deps Deps

// Setup wires the handler dependencies. Must be called before serving.
func Setup(d Deps) {
	deps = d
}

type registerRequest struct {
	Name          string   `json:"name"`
	Traits        []string `json:"traits"`
	Style         string   `json:"style"`
	Model         string   `json:"model"`
	Preset        string   `json:"preset"`
	GenesisPrompt string   `json:"genesis_prompt"`
}

// RegisterAgent - registers a new AI agent with the launchpad
func RegisterAgent(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid agent data"})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Agent name is required"})
		return
	}

	agent := core.Agent{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Traits:        req.Traits,
		Style:         req.Style,
		Model:         req.Model,
		Preset:        req.Preset,
		GenesisPrompt: req.GenesisPrompt,
	}

	if req.Preset != "" {
		preset, err := deps.Presets.GetPreset(req.Preset)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown preset"})
			return
		}
		preset.Apply(&agent)
	}

	registry.RegisterAgent(&agent)

	c.JSON(http.StatusOK, gin.H{
		"message": "Agent registered successfully",
		"agentID": agent.ID,
	})
}

// GetAgent - fetch a registered agent
func GetAgent(c *gin.Context) {
	agent, ok := registry.GetAgent(c.Param("agentID"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		return
	}
	c.JSON(http.StatusOK, agent)
}

type startRequest struct {
	Preset      string `json:"preset"`
	BatchSize   int    `json:"batch_size"`
	TotalTarget int    `json:"total_target"`
}

// StartOnboarding - begin the onboarding state machine for an agent
func StartOnboarding(c *gin.Context) {
	agentID := c.Param("agentID")
	agent, ok := registry.GetAgent(agentID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		return
	}

	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start request"})
		return
	}

	run := *agent
	if req.Preset != "" {
		preset, err := deps.Presets.GetPreset(req.Preset)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown preset"})
			return
		}
		preset.Apply(&run)
	}

	snap, err := deps.Manager.Start(run, onboarding.StartOptions{
		BatchSize:   req.BatchSize,
		TotalTarget: req.TotalTarget,
	})
	if err != nil {
		if errors.Is(err, onboarding.ErrAlreadyRunning) {
			c.JSON(http.StatusConflict, gin.H{"error": "AlreadyRunning"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, snap)
}

// CancelOnboarding - cancel a running onboarding session
func CancelOnboarding(c *gin.Context) {
	agentID := c.Param("agentID")
	if err := deps.Manager.Cancel(agentID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No session for agent"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Cancellation requested"})
}

// GetOnboardingStatus - current or last persisted session snapshot
func GetOnboardingStatus(c *gin.Context) {
	snap, err := deps.Manager.Status(c.Param("agentID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No session for agent"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GetOnboardingMetrics - token totals for the agent's current session
func GetOnboardingMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, deps.Tracker.TotalsFor(c.Param("agentID")))
}

// GetBelief - read a single belief value for an agent
func GetBelief(c *gin.Context) {
	belief, found, err := deps.Beliefs.Read(c.Param("agentID"), c.Param("key"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Belief not found"})
		return
	}
	c.JSON(http.StatusOK, belief)
}

// ListModels - read-through proxy to the provider's model catalog
func ListModels(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	models, err := ai.ListModels(ctx, deps.OpenAIKey)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"models": models})
}
