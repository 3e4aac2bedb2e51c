package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// QuotingClient talks to the external AI quoting backend. The backend
// receives a free-form request and answers with a markdown quotation
// document, which callers feed into QuoteParser.
type QuotingClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewQuotingClient builds a client for the given backend base URL.
func NewQuotingClient(baseURL, apiKey string) *QuotingClient {
	return &QuotingClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

// NewQuotingClientFromEnv builds a client from QUOTING_API_URL and
// QUOTING_API_KEY.
func NewQuotingClientFromEnv() *QuotingClient {
	return NewQuotingClient(os.Getenv("QUOTING_API_URL"), os.Getenv("QUOTING_API_KEY"))
}

// QuoteRequest is what the generation endpoint forwards to the backend.
type QuoteRequest struct {
	Prompt     string   `json:"prompt"`
	ClientName string   `json:"client_name,omitempty"`
	Products   []string `json:"products,omitempty"`
}

type quoteResponse struct {
	Markdown string `json:"markdown"`
}

// GenerateQuote asks the backend for a quotation and returns the raw
// markdown document.
func (c *QuotingClient) GenerateQuote(ctx context.Context, req QuoteRequest) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("quoting backend not configured (QUOTING_API_URL)")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal quote request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/quotations/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build quote request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call quoting backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("quoting backend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var parsed quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode quote response: %w", err)
	}
	if parsed.Markdown == "" {
		return "", fmt.Errorf("quoting backend returned an empty document")
	}
	return parsed.Markdown, nil
}
