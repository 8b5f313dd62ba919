// Package llm provides the optional Ollama client behind the chronicle.
// Unconfigured, everything falls back to templates; the simulation never
// depends on a model being present.
// See design doc Section 8.5.
package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

const defaultModel = "llama3.2"

// Client wraps the Ollama chat API.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client

	// Rate limiting: max calls per minute.
	mu        sync.Mutex
	callCount int
	resetAt   time.Time
	maxPerMin int
}

// NewClient creates an Ollama client for the given base URL (e.g.
// http://localhost:11434). Returns nil if baseURL is empty (LLM features
// disabled).
func NewClient(baseURL, model string) *Client {
	if baseURL == "" {
		return nil
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		maxPerMin: 20,
	}
}

// Enabled returns true if the client is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// request is the /api/chat request body.
type request struct {
	Model    string         `json:"model"`
	Stream   bool           `json:"stream"`
	Messages []Message      `json:"messages"`
	Options  map[string]any `json:"options,omitempty"`
}

// response is the /api/chat response body.
type response struct {
	Message         Message `json:"message"`
	PromptEvalCount int     `json:"prompt_eval_count"`
	EvalCount       int     `json:"eval_count"`
}

// Complete sends a prompt to the model and returns the response text.
func (c *Client) Complete(system, userPrompt string, maxTokens int) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("LLM client not configured")
	}

	// Rate limiting.
	c.mu.Lock()
	now := time.Now()
	if now.After(c.resetAt) {
		c.callCount = 0
		c.resetAt = now.Add(time.Minute)
	}
	if c.callCount >= c.maxPerMin {
		c.mu.Unlock()
		return "", fmt.Errorf("rate limit exceeded (%d calls/min)", c.maxPerMin)
	}
	c.callCount++
	c.mu.Unlock()

	req := request{
		Model:  c.model,
		Stream: false,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: userPrompt},
		},
		Options: map[string]any{
			"num_predict": maxTokens,
			"temperature": 0.7,
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequest("POST", c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("ollama call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama error %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	text := strings.TrimSpace(apiResp.Message.Content)
	if text == "" {
		return "", fmt.Errorf("empty response")
	}

	slog.Debug("ollama call",
		"model", c.model,
		"prompt_tokens", apiResp.PromptEvalCount,
		"output_tokens", apiResp.EvalCount,
	)

	return text, nil
}
