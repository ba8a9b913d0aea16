package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/connectin/connectin/internal/observability"
)

const (
	tokenURL = "https://github.com/login/oauth/access_token"
	userURL  = "https://api.github.com/user"
)

// Client exchanges OAuth codes and fetches user data on behalf of the
// frontend. Responses are passed through verbatim as raw JSON.
type Client struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
	prom         *observability.Prom
}

func NewClient(clientID, clientSecret string, prom *observability.Prom) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		prom: prom,
	}
}

func (c *Client) ExchangeCode(ctx context.Context, code string) (json.RawMessage, error) {
	payload, err := json.Marshal(map[string]string{
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"code":          code,
	})

	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, bytes.NewReader(payload))

	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	return c.do("exchange_code", req)
}

func (c *Client) FetchUser(ctx context.Context, accessToken string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userURL, nil)

	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	return c.do("fetch_user", req)
}

func (c *Client) do(op string, req *http.Request) (json.RawMessage, error) {
	var body []byte

	err := c.observe(op, func() error {
		resp, err := c.httpClient.Do(req)

		if err != nil {
			return fmt.Errorf("http %s: %w", op, err)
		}

		defer resp.Body.Close()

		body, err = io.ReadAll(resp.Body)

		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("github api responded with status %d", resp.StatusCode)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return json.RawMessage(body), nil
}

func (c *Client) observe(op string, fn func() error) error {
	if c.prom == nil {
		return fn()
	}

	return c.prom.ObserveProvider("github", op, fn)
}
