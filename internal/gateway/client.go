package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client is the remote data gateway: a thin typed wrapper over the
// backend REST API. It owns no state beyond the HTTP client and the
// bearer token; all collection bookkeeping lives in the services.
type Client struct {
	logger     zerolog.Logger
	httpClient *http.Client
	baseURL    string
	tokens     *TokenStore
}

func NewClient(
	logger zerolog.Logger,
	baseURL string,
	requestTimeout time.Duration,
	tokens *TokenStore,
) *Client {
	return &Client{
		logger: logger,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
	}
}

// Tokens exposes the token store so the auth service and the realtime
// channel share the same credentials.
func (c *Client) Tokens() *TokenStore {
	return c.tokens
}

// envelope is the documented response shape. Some endpoints return the
// bare entity or a {data} wrapper instead; normalize handles all three
// so callers only ever see the payload.
type envelope struct {
	StatusCode *int            `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Timestamp  string          `json:"timestamp"`
}

func normalize(raw []byte) json.RawMessage {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		return env.Data
	}
	return raw
}

// doRaw issues a single request and returns the response body after
// status handling. Requests are single-shot: failures are returned to
// the caller, never retried here.
func (c *Client) doRaw(
	ctx context.Context,
	method, path string,
	query url.Values,
	body any,
) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.tokens.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Msg("sending request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("method", method).
			Str("path", path).
			Msg("request failed")
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("path", path).
			Msg("failed to read response body")
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, c.statusError(resp.StatusCode, path, raw)
	}
	return raw, nil
}

// do issues a request and decodes the normalized payload into out.
func (c *Client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	body, out any,
) error {
	raw, err := c.doRaw(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}

	if err = json.Unmarshal(normalize(raw), out); err != nil {
		c.logger.Error().
			Err(err).
			Str("path", path).
			Msg("failed to decode response body")
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// doPaged is like do but for listings that carry a meta block alongside
// data. Endpoints answering with a bare array yield a zero PageMeta.
func (c *Client) doPaged(
	ctx context.Context,
	path string,
	query url.Values,
	out any,
) (PageMeta, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return PageMeta{}, err
	}

	var paged struct {
		Data json.RawMessage `json:"data"`
		Meta PageMeta        `json:"meta"`
	}
	if err = json.Unmarshal(raw, &paged); err == nil && len(paged.Data) > 0 {
		if err = json.Unmarshal(paged.Data, out); err != nil {
			return PageMeta{}, fmt.Errorf("failed to decode paged response: %w", err)
		}
		return paged.Meta, nil
	}

	if err = json.Unmarshal(normalize(raw), out); err != nil {
		c.logger.Error().
			Err(err).
			Str("path", path).
			Msg("failed to decode response body")
		return PageMeta{}, fmt.Errorf("failed to decode response body: %w", err)
	}
	return PageMeta{}, nil
}

// PageMeta describes a paginated task listing.
type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}
