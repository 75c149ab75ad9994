package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type hostedClient struct {
	apiKey string
	model  string
	base   string
	client *http.Client
}

func (c *hostedClient) Name() string {
	return fmt.Sprintf("Hosted (%s)", c.model)
}

func (c *hostedClient) GeneratePost(ctx context.Context, rawContent, excerpt string) (string, error) {
	if strings.TrimSpace(rawContent) == "" {
		return "", fmt.Errorf("document is empty; nothing to generate from")
	}
	prompt := buildPostPrompt(rawContent, excerpt)
	return c.chat(ctx, prompt)
}

func (c *hostedClient) chat(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.7,
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/chat/completions", c.base)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("generation API error: %s (%s)", resp.Status, string(body))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("generation API returned no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
