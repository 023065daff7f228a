package brief

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const systemPrompt = "You are an answer-engine optimization specialist. " +
	"Given a search query a brand is not being cited for, reply with ONLY valid JSON " +
	`matching {"title","meta_description","schema_markup","content_brief","faq_entries":[{"question","answer","keywords"}]}.`

// OpenAIGenerator calls an OpenAI-compatible chat-completions endpoint and
// parses the JSON body of the first choice into a Content.
type OpenAIGenerator struct {
	Endpoint string
	APIKey   string
	Model    string
	Client   *http.Client
}

// NewOpenAIGenerator builds a generator against the given endpoint and model.
func NewOpenAIGenerator(endpoint, apiKey, model string) *OpenAIGenerator {
	return &OpenAIGenerator{
		Endpoint: endpoint,
		APIKey:   apiKey,
		Model:    model,
		Client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Generate requests a brief for queryText. The optional instruction is
// appended to the user prompt as extra guidance.
func (g *OpenAIGenerator) Generate(ctx context.Context, queryText, instruction string) (*Content, error) {
	user := "Query: " + queryText
	if strings.TrimSpace(instruction) != "" {
		user += "\nAdditional instructions: " + instruction
	}

	body, err := json.Marshal(map[string]any{
		"model": g.Model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": user},
		},
		"temperature": 0.2,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(g.Endpoint, "/")+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("brief generator: unexpected status %d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Choices) == 0 {
		return nil, errors.New("brief generator: empty response")
	}

	raw := strings.TrimSpace(out.Choices[0].Message.Content)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var c Content
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &c); err != nil {
		return nil, fmt.Errorf("brief generator: malformed payload: %w", err)
	}
	return &c, nil
}
