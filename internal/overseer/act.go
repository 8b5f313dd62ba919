package overseer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ActionResult is the response from the admin endpoints.
type ActionResult struct {
	Success bool   `json:"success"`
	Details string `json:"details"`
}

// Actor executes directives via the admin API.
type Actor struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewActor creates an Actor targeting the given API base URL with admin auth.
func NewActor(baseURL, token string) *Actor {
	return &Actor{
		BaseURL: baseURL,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Act executes a directive against the matching admin endpoint.
func (a *Actor) Act(d *Directive) (*ActionResult, error) {
	switch d.Action {
	case "ease":
		return a.post("/api/v1/admin/relations", map[string]any{
			"a":     d.A,
			"b":     d.B,
			"value": d.Value,
		})
	case "stir":
		return a.post("/api/v1/admin/incident", map[string]any{
			"perpetrator": d.A,
			"victim":      d.B,
			"severity":    d.Severity,
			"cause":       d.Cause,
		})
	default:
		return nil, fmt.Errorf("unknown directive action %q", d.Action)
	}
}

func (a *Actor) post(path string, payload map[string]any) (*ActionResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequest("POST", a.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.Token)

	resp, err := a.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directive failed (%d): %s", resp.StatusCode, string(respBody))
	}

	var result ActionResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &result, nil
}
