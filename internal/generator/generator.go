package generator

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const answerPrompt = `You are an AI assistant analyzing a transcript. Use the information given to give an answer. The context lines are prefixed with their [MM:SS - MM:SS] position in the recording; cite those timestamps when they help.

Transcript Context:
%s

Question: %s`

// Answer sends the retrieved context and the question to Gemini and
// returns the generated answer. Rotates API keys on 429 / quota errors.
func (g *implGenerator) Answer(ctx context.Context, question, transcriptContext string) (string, error) {
	if strings.TrimSpace(transcriptContext) == "" {
		return "", fmt.Errorf("no transcript context to answer from")
	}

	prompt := fmt.Sprintf(answerPrompt, transcriptContext, question)

	attempts := len(g.apiKeys)
	var lastErr error

	for range attempts {
		key := g.apiKeys[g.currentKey]

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", g.currentKey+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return strings.TrimSpace(text), nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *implGenerator) rotateKey() {
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}
