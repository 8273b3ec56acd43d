package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/EidolonLabs/persona-launchpad/core"
	openai "github.com/sashabaranov/go-openai"
)

// Adapter-level errors. The orchestrator owns all retry policy; the adapter
// only classifies failures.
var (
	ErrTimeout  = errors.New("llm query timed out")
	ErrProvider = errors.New("llm provider error")
)

// Answer is the adapter's response to a single question.
type Answer struct {
	Text   string
	Tokens int
}

// Asker turns a question into an answer. May be slow, may fail.
type Asker interface {
	Ask(ctx context.Context, question string) (Answer, error)
}

// LLMConfig holds configuration for LLM interactions
type LLMConfig struct {
	Model       string
	MaxTokens   int
	Temperature float32
	CallTimeout time.Duration
}

// DefaultLLMConfig returns standard LLM configuration
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Model:       "gpt-3.5-turbo",
		MaxTokens:   512,
		Temperature: 0.7,
		CallTimeout: 30 * time.Second,
	}
}

// OpenAIAsker answers onboarding questions through the OpenAI chat API,
// speaking in the agent's voice via a system prompt.
type OpenAIAsker struct {
	client       *openai.Client
	config       LLMConfig
	systemPrompt string
}

// NewOpenAIAsker creates an asker for the given agent. An empty model falls
// back to the config default.
func NewOpenAIAsker(apiKey string, agent core.Agent, config LLMConfig) *OpenAIAsker {
	if agent.Model != "" {
		config.Model = agent.Model
	}
	return &OpenAIAsker{
		client:       openai.NewClient(apiKey),
		config:       config,
		systemPrompt: SystemPrompt(agent),
	}
}

// SystemPrompt builds the persona framing prompt for an agent.
func SystemPrompt(agent core.Agent) string {
	prompt := fmt.Sprintf(
		"You are %s, an AI agent with these traits: %s.\n"+
			"Your conversational style is %s.\n"+
			"Answer onboarding questions about yourself honestly and in character.\n"+
			"Keep each answer to a few sentences.",
		agent.Name, strings.Join(agent.Traits, ", "), agent.Style,
	)
	if agent.GenesisPrompt != "" {
		prompt += "\n" + agent.GenesisPrompt
	}
	return prompt
}

// Ask sends one question to the model under a bounded deadline.
func (a *OpenAIAsker) Ask(ctx context.Context, question string) (Answer, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.config.CallTimeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(
		callCtx,
		openai.ChatCompletionRequest{
			Model: a.config.Model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: a.systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: question},
			},
			MaxTokens:   a.config.MaxTokens,
			Temperature: a.config.Temperature,
		},
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return Answer{}, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return Answer{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if len(resp.Choices) == 0 {
		return Answer{}, fmt.Errorf("%w: empty completion", ErrProvider)
	}

	return Answer{
		Text:   resp.Choices[0].Message.Content,
		Tokens: resp.Usage.TotalTokens,
	}, nil
}
