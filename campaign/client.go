// Copyright 2025 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package campaign implements a client for the campaign HTTP API
package campaign

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blinklabs-io/velocity/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/ratelimit"
)

const (
	// ApiKeyHeader carries the campaign API key on every request
	ApiKeyHeader = "jetplane-api-key"

	DefaultTimeout = 30 * time.Second

	maxResponseSize = 16 << 20
)

type ClientOptionFunc func(*Client)

// WithBaseURL specifies the campaign API base URL
func WithBaseURL(baseURL string) ClientOptionFunc {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithApiKey specifies the API key sent with every request
func WithApiKey(apiKey string) ClientOptionFunc {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

// WithHTTPClient specifies the HTTP client. It takes precedence over WithTimeout
func WithHTTPClient(httpClient *http.Client) ClientOptionFunc {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout specifies the timeout of the default HTTP client
func WithTimeout(timeout time.Duration) ClientOptionFunc {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger specifies the logger
func WithLogger(logger *slog.Logger) ClientOptionFunc {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit limits requests to the given number per second. Values less
// than 1 disable rate limiting
func WithRateLimit(rps int) ClientOptionFunc {
	return func(c *Client) {
		c.rateLimit = rps
	}
}

// WithMetricsRegisterer registers request metrics with reg
func WithMetricsRegisterer(reg prometheus.Registerer) ClientOptionFunc {
	return func(c *Client) {
		c.registerer = reg
	}
}

// Client talks to the campaign API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
	rateLimit  int
	limiter    ratelimit.Limiter
	registerer prometheus.Registerer
	metrics    *metrics.CampaignClient
}

func NewClient(opts ...ClientOptionFunc) (*Client, error) {
	c := &Client{
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.baseURL == "" {
		return nil, errors.New("campaign API base URL not specified")
	}
	if _, err := url.Parse(c.baseURL); err != nil {
		return nil, fmt.Errorf("invalid campaign API base URL: %w", err)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	if c.rateLimit > 0 {
		c.limiter = ratelimit.New(c.rateLimit)
	} else {
		c.limiter = ratelimit.NewUnlimited()
	}
	m, err := metrics.NewCampaignClient(c.registerer)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	c.metrics = m
	return c, nil
}

// BaseURL returns the campaign API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

type request struct {
	operation   string
	campaign    string
	method      string
	path        string
	query       url.Values
	contentType string
	body        io.Reader
}

type response struct {
	statusCode int
	body       []byte
}

func (r *response) ok() bool {
	return r.statusCode == http.StatusOK
}

// decode unmarshals the response body into dest
func (r *response) decode(dest any) error {
	if err := json.Unmarshal(r.body, dest); err != nil {
		return fmt.Errorf("failed to decode response (HTTP %d): %w", r.statusCode, err)
	}
	return nil
}

// apiError builds the error for a failed response. Unprocessable responses
// carry the server message
func (r *response) apiError() error {
	ret := APIError{
		StatusCode: r.statusCode,
		Message:    unknownErrorMessage,
	}
	if r.statusCode == http.StatusUnprocessableEntity {
		var tmp struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(r.body, &tmp); err == nil && tmp.Message != "" {
			ret.Message = tmp.Message
		}
	}
	return ret
}

func (c *Client) do(ctx context.Context, r request) (*response, error) {
	started := time.Now()
	resp, err := c.doRequest(ctx, r)
	observeErr := err
	if err == nil && resp.statusCode >= http.StatusInternalServerError {
		observeErr = resp.apiError()
	}
	c.metrics.Observe(r.operation, r.campaign, observeErr, started)
	if err != nil {
		c.logger.DebugContext(
			ctx,
			"campaign API request failed",
			"component", "campaign",
			"operation", r.operation,
			"campaign", r.campaign,
			"error", err,
		)
		return nil, err
	}
	c.logger.DebugContext(
		ctx,
		"campaign API request",
		"component", "campaign",
		"operation", r.operation,
		"campaign", r.campaign,
		"status", resp.statusCode,
		"duration", time.Since(started),
	)
	return resp, nil
}

func (c *Client) doRequest(ctx context.Context, r request) (*response, error) {
	c.limiter.Take()
	reqUrl := c.baseURL + r.path
	if len(r.query) > 0 {
		reqUrl += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, reqUrl, r.body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(ApiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return &response{statusCode: resp.StatusCode, body: data}, nil
}

func (c *Client) postJSON(ctx context.Context, operation string, campaign string, path string, body any) (*response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return c.do(
		ctx,
		request{
			operation:   operation,
			campaign:    campaign,
			method:      http.MethodPost,
			path:        path,
			contentType: "application/json",
			body:        bytes.NewReader(data),
		},
	)
}

func campaignPath(key string, parts ...string) string {
	var sb strings.Builder
	sb.WriteString("/campaign/")
	sb.WriteString(url.PathEscape(key))
	for _, part := range parts {
		sb.WriteString("/")
		sb.WriteString(url.PathEscape(part))
	}
	return sb.String()
}
