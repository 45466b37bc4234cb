package assistant

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Turn is one prior exchange forwarded to the model.
type Turn struct {
	Role string
	Text string
}

// Gemini forwards conversations to a hosted Gemini model.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a client for the Gemini API backend.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Generate sends history plus message under the system instruction and
// returns the model's text answer.
func (g *Gemini) Generate(ctx context.Context, systemPrompt string, history []Turn, message string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, buildContents(history, message), buildConfig(systemPrompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return resp.Text(), nil
}

// buildContents maps history onto model and user turns and appends message
// as the final user turn. Unknown roles are sent as the user.
func buildContents(history []Turn, message string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		role := genai.Role(genai.RoleUser)
		if turn.Role == string(genai.RoleModel) {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	return append(contents, genai.NewContentFromText(message, genai.RoleUser))
}

func buildConfig(systemPrompt string) *genai.GenerateContentConfig {
	if systemPrompt == "" {
		return nil
	}
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}
}
