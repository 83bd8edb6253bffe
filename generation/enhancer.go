package generation

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

const enhancerPrompt = `You are an AI image generation assistant. Rewrite the user's request into a detailed, visual description for an image generation model. Focus on:

- Clear visual elements (colors, composition, lighting, style)
- Specific artistic techniques or photographic styles when relevant
- Safe, appropriate content only
- Realistic and achievable image concepts

Reply with the rewritten prompt only, nothing else.

User request: %s`

// Enhancer optionally rewrites a user prompt into a richer image prompt
// before it is sent to the generation provider. Enhancement is
// best-effort: any failure falls back to the original prompt.
type Enhancer struct {
	client *genai.Client
	model  string
}

func NewEnhancer(ctx context.Context, apiKey, model string) (*Enhancer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Enhancer{client: client, model: model}, nil
}

func (e *Enhancer) Enhance(ctx context.Context, prompt string) string {
	if prompt == "" {
		return prompt
	}

	result, err := e.client.Models.GenerateContent(
		ctx,
		e.model,
		genai.Text(fmt.Sprintf(enhancerPrompt, prompt)),
		nil,
	)
	if err != nil {
		log.Printf("prompt enhancement failed, using original prompt: %v", err)
		return prompt
	}

	enhanced := strings.TrimSpace(result.Text())
	if enhanced == "" {
		return prompt
	}
	return enhanced
}
