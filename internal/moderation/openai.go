package moderation

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

// Client calls the OpenAI moderation endpoint.
type Client struct {
	APIKey  string
	BaseURL string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Check reports whether the text is flagged. Errors mean the verdict is
// unknown; the caller decides what that implies.
func (c *Client) Check(ctx context.Context, text string) (bool, error) {
	if c.APIKey == "" {
		return false, errors.New("missing OPENAI_API_KEY")
	}
	payload := map[string]any{"input": text}
	b, _ := json.Marshal(payload)
	req, _ := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/v1/moderations", bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return false, fmt.Errorf("moderation status %d", resp.StatusCode)
	}
	var out struct {
		Results []struct {
			Flagged bool `json:"flagged"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, err
	}
	if len(out.Results) == 0 {
		return false, errors.New("no moderation results")
	}
	return out.Results[0].Flagged, nil
}
