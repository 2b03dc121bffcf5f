package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"aura/internal/aura"
)

const (
	DefaultURL   = "http://localhost:11434"
	DefaultModel = "mistral"
)

// Client talks to a local Ollama server over its generate endpoint.
type Client struct {
	url   string
	model string
	http  *http.Client
}

// New builds a client for the given server URL and model. Empty arguments
// fall back to the defaults; a nil http client gets a plain one. Request
// deadlines come from the caller's context.
func New(url, model string, hc *http.Client) *Client {
	if url == "" {
		url = DefaultURL
	}
	if model == "" {
		model = DefaultModel
	}
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		url:   strings.TrimSuffix(url, "/"),
		model: model,
		http:  hc,
	}
}

var _ aura.LLM = (*Client)(nil)

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate asks the model for one non-streamed completion. The reply text
// comes back exactly as the server sent it.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			return "", err
		case errors.Is(err, context.DeadlineExceeded):
			return "", aura.ErrLLMTimeout
		default:
			return "", fmt.Errorf("%w: %v", aura.ErrLLMUnreachable, err)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &aura.LLMStatusError{Code: resp.StatusCode}
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return out.Response, nil
}
