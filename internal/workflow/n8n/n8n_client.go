package n8n

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"failfast/internal/config"
	"failfast/internal/port"
)

type n8nClient struct {
	httpClient *http.Client
	apiKey     string
}

// NewN8NClient creates a WorkflowTrigger that posts JSON payloads to n8n
// webhook URLs. Requests are bounded by the configured timeout and carry a
// Bearer token when an API key is set.
func NewN8NClient(cfg *config.N8NConfig) port.WorkflowTrigger {
	return &n8nClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSecs) * time.Second,
		},
		apiKey: cfg.APIKey,
	}
}

func (c *n8nClient) Invoke(ctx context.Context, webhookURL string, payload map[string]interface{}) (map[string]interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("n8n marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("n8n build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("n8n request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("n8n webhook returned status %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("n8n read response: %w", err)
	}

	// Some workflows reply with an empty body or plain text acknowledgment.
	var result map[string]interface{}
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &result); err != nil {
			result = map[string]interface{}{"raw": string(respBody)}
		}
	}
	return result, nil
}
