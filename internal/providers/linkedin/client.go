package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/connectin/connectin/internal/observability"
)

const (
	tokenURL     = "https://www.linkedin.com/oauth/v2/accessToken"
	userInfoURL  = "https://api.linkedin.com/v2/userinfo"
	meURL        = "https://api.linkedin.com/v2/me?projection=(id,firstName,lastName,profilePicture(displayImage~:playableStreams))"
	positionsURL = "https://api.linkedin.com/v2/positions?q=memberPositions&memberIdentity=(id:%s)"
)

type Client struct {
	clientID     string
	clientSecret string
	redirectURI  string
	httpClient   *http.Client
	prom         *observability.Prom
}

func NewClient(clientID, clientSecret, redirectURI string, prom *observability.Prom) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		prom: prom,
	}
}

// ExchangeCode trades an authorization code for an access token. LinkedIn
// wants the form-encoded grant, unlike GitHub's JSON exchange.
func (c *Client) ExchangeCode(ctx context.Context, code string) (json.RawMessage, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("redirect_uri", c.redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))

	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do("exchange_code", req)
}

func (c *Client) FetchUserInfo(ctx context.Context, accessToken string) (json.RawMessage, error) {
	req, err := c.authorizedGet(ctx, userInfoURL, accessToken)

	if err != nil {
		return nil, err
	}

	return c.do("fetch_userinfo", req)
}

type ProfileDetails struct {
	Profile   json.RawMessage `json:"profile"`
	Positions json.RawMessage `json:"positions"`
}

// FetchProfileDetails loads the basic profile and, best effort, the member's
// positions. A failed positions call degrades to an empty list rather than
// failing the whole request.
func (c *Client) FetchProfileDetails(ctx context.Context, accessToken string) (ProfileDetails, error) {
	req, err := c.authorizedGet(ctx, meURL, accessToken)

	if err != nil {
		return ProfileDetails{}, err
	}

	profileRaw, err := c.do("fetch_profile", req)

	if err != nil {
		return ProfileDetails{}, err
	}

	details := ProfileDetails{
		Profile:   profileRaw,
		Positions: json.RawMessage("[]"),
	}

	var profileID struct {
		ID string `json:"id"`
	}

	if err := json.Unmarshal(profileRaw, &profileID); err != nil || profileID.ID == "" {
		return details, nil
	}

	posReq, err := c.authorizedGet(ctx, fmt.Sprintf(positionsURL, profileID.ID), accessToken)

	if err != nil {
		return details, nil
	}

	posRaw, err := c.do("fetch_positions", posReq)

	if err != nil {
		return details, nil
	}

	var positions struct {
		Elements json.RawMessage `json:"elements"`
	}

	if err := json.Unmarshal(posRaw, &positions); err == nil && positions.Elements != nil {
		details.Positions = positions.Elements
	}

	return details, nil
}

func (c *Client) authorizedGet(ctx context.Context, rawURL, accessToken string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)

	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	return req, nil
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
			return fmt.Errorf("linkedin api responded with status %d: %s", resp.StatusCode, string(body))
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

	return c.prom.ObserveProvider("linkedin", op, fn)
}
