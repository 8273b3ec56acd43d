package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// ListModels is a read-through proxy to the provider's model catalog. The
// core never validates or caches this listing; it is consumed only when
// configuring an agent's model.
func ListModels(ctx context.Context, apiKey string) ([]openai.Model, error) {
	client := openai.NewClient(apiKey)
	resp, err := client.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Models, nil
}
