package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"alphahunter/internal/config"
	"alphahunter/internal/ports"
)

const (
	// Free-tier Gemini allows 15 requests per minute; stay under it.
	restRateLimit  = 15.0 / 60.0
	restBurst      = 3
	restMaxRetries = 3
	restTimeout    = 30 * time.Second
	restBaseWait   = time.Second
)

// GeminiRESTClient implements ports.LLMClient against the public
// generateContent REST endpoint. It is the fallback when the SDK client
// cannot be constructed.
type GeminiRESTClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
}

var _ ports.LLMClient = (*GeminiRESTClient)(nil)

// NewGeminiRESTClient builds a REST client from configuration.
func NewGeminiRESTClient(cfg config.GeminiConfig) *GeminiRESTClient {
	return &GeminiRESTClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: restTimeout,
		},
		limiter:    rate.NewLimiter(rate.Limit(restRateLimit), restBurst),
		maxRetries: restMaxRetries,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string `json:"response_mime_type,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent        `json:"contents"`
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// Generate posts the prompt to one model and returns the concatenated text
// parts of the first candidate. Rate-limit and server errors are retried
// with exponential backoff.
func (c *GeminiRESTClient) Generate(ctx context.Context, model, systemInstruction, prompt string) (string, error) {
	if c == nil || c.apiKey == "" || c.baseURL == "" {
		return "", fmt.Errorf("gemini rest client is not configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemInstruction}},
		},
		GenerationConfig: geminiGenerationConfig{
			ResponseMimeType: "application/json",
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := restBaseWait * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		text, retryable, err := c.doRequest(ctx, url, body)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}

	return "", fmt.Errorf("retries exhausted: %w", lastErr)
}

func (c *GeminiRESTClient) doRequest(ctx context.Context, url string, body []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("post generate content: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", true, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return "", true, fmt.Errorf("gemini %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("gemini %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var decoded geminiResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return "", false, fmt.Errorf("decode response: %w", err)
	}
	if decoded.Error != nil {
		return "", false, fmt.Errorf("gemini api error %d: %s", decoded.Error.Code, decoded.Error.Message)
	}
	if len(decoded.Candidates) == 0 {
		return "", false, fmt.Errorf("no candidates in response")
	}

	var out strings.Builder
	for _, part := range decoded.Candidates[0].Content.Parts {
		out.WriteString(part.Text)
	}
	if out.Len() == 0 {
		return "", false, fmt.Errorf("candidate contained no text")
	}

	return out.String(), false, nil
}
