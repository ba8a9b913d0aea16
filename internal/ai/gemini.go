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

	"github.com/connectin/connectin/internal/observability"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiClient talks to the Gemini REST generateContent endpoint.
type GeminiClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
	prom       *observability.Prom
}

func NewGeminiClient(apiKey, model string, prom *observability.Prom) *GeminiClient {
	if model == "" {
		model = "gemini-2.0-flash"
	}

	return &GeminiClient{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		prom: prom,
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})

	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent", geminiBaseURL, c.model)

	var out geminiResponse

	err = c.observe("generate", func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))

		if err != nil {
			return err
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", c.apiKey)

		resp, err := c.httpClient.Do(req)

		if err != nil {
			return fmt.Errorf("http generate: %w", err)
		}

		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)

		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("gemini api responded with status %d", resp.StatusCode)
		}

		return json.Unmarshal(body, &out)
	})

	if err != nil {
		return "", err
	}

	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder

	for _, part := range out.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	return sb.String(), nil
}

func (c *GeminiClient) observe(op string, fn func() error) error {
	if c.prom == nil {
		return fn()
	}

	return c.prom.ObserveProvider("gemini", op, fn)
}
