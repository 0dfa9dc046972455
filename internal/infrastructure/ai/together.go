package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"maintenance-genie.backend/internal/domain/entities"
)

const (
	defaultBaseURL = "https://api.together.xyz/v1/completions"
	defaultModel   = "mistralai/Mistral-7B-Instruct-v0.1"

	completionMaxTokens = 150
)

// Client calls the Together completions API to generate maintenance
// recommendations for an item.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type completionRequest struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

type completionError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// NewClient creates a new Together client. baseURL and model fall back
// to the production defaults when empty.
func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// GenerateItemRecommendations produces service intervals for any item and,
// for premium accounts only, forum suggestions as well.
func (c *Client) GenerateItemRecommendations(ctx context.Context, item *entities.Item, premium bool) (serviceIntervals, forumSuggestions []string, err error) {
	intervalText, err := c.complete(ctx, serviceIntervalPrompt(item))
	if err != nil {
		return nil, nil, err
	}
	serviceIntervals = splitLines(intervalText)

	forumSuggestions = []string{}
	if premium {
		forumText, err := c.complete(ctx, forumSuggestionPrompt(item))
		if err != nil {
			return nil, nil, err
		}
		forumSuggestions = splitLines(forumText)
	}

	return serviceIntervals, forumSuggestions, nil
}

func serviceIntervalPrompt(item *entities.Item) string {
	var b strings.Builder
	b.WriteString("Based on the following item details, generate recommended service intervals:\n")
	fmt.Fprintf(&b, "- Category: %s\n", item.Category)
	fmt.Fprintf(&b, "- Brand: %s\n", item.Brand)
	fmt.Fprintf(&b, "- Model: %s\n", item.Model)
	if item.TotalMileage.Valid {
		fmt.Fprintf(&b, "- Total Mileage: %.0f\n", item.TotalMileage.Float64)
	}
	if item.PurchaseDate.Valid {
		fmt.Fprintf(&b, "- Purchase Date: %s\n", item.PurchaseDate.Time.Format("2006-01-02"))
	}
	b.WriteString("Please provide a list of recommended service intervals (e.g., every X miles or every Y months).")
	return b.String()
}

func forumSuggestionPrompt(item *entities.Item) string {
	var b strings.Builder
	b.WriteString("Based on the following item details, suggest related forums:\n")
	fmt.Fprintf(&b, "- Category: %s\n", item.Category)
	fmt.Fprintf(&b, "- Brand: %s\n", item.Brand)
	fmt.Fprintf(&b, "- Model: %s\n", item.Model)
	b.WriteString("Please suggest 3-5 forum suggestions for discussions related to this item.")
	return b.String()
}

func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("together api key not set")
	}

	body, err := json.Marshal(completionRequest{
		Model:     c.model,
		Prompt:    prompt,
		MaxTokens: completionMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr completionError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("together api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("together api error (%d): %s", resp.StatusCode, string(respBody))
	}

	var completion completionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}

	return completion.Choices[0].Text, nil
}

// splitLines turns a completion into a clean list, dropping blank lines.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if lines == nil {
		lines = []string{}
	}
	return lines
}
