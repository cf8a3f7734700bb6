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

package campaign

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// Default snapshot page
const (
	DefaultSnapshotLimit = 100
	DefaultSnapshotPage  = 1
)

type CheckOptions struct {
	IncludeItems bool
	Tag          string
}

// Check fetches the campaign config and the wallet's status. A non-OK
// response is not an error: the result has Ok set to false and carries
// whatever config the server returned
func (c *Client) Check(
	ctx context.Context,
	key string,
	stakeKey string,
	opts CheckOptions,
) (*CheckResult, error) {
	if err := ValidateStakeKey(stakeKey); err != nil {
		return nil, err
	}
	var query url.Values
	if opts.IncludeItems || opts.Tag != "" {
		query = url.Values{
			"includeItems": {strconv.FormatBool(opts.IncludeItems)},
			"tag":          {opts.Tag},
		}
	}
	resp, err := c.do(
		ctx,
		request{
			operation: "check",
			campaign:  key,
			method:    http.MethodGet,
			path:      campaignPath(key, "check", stakeKey),
			query:     query,
		},
	)
	if err != nil {
		return nil, err
	}
	var tmp struct {
		Status *Status `json:"status"`
		Config *Config `json:"config"`
	}
	if err := resp.decode(&tmp); err != nil {
		if !resp.ok() {
			return nil, resp.apiError()
		}
		return nil, err
	}
	ret := &CheckResult{
		Ok:     resp.ok(),
		Config: tmp.Config,
	}
	if tmp.Status != nil {
		ret.Status = *tmp.Status
	}
	if ret.Config != nil {
		if err := ret.Config.Validate(); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

// Quote requests a price for an action. Requests rejected by the server
// return an APIError carrying the server message. Any other failure is an
// APIError with a generic message
func (c *Client) Quote(ctx context.Context, key string, req QuoteRequest) (*Quote, error) {
	if req.InputUnits == nil {
		req.InputUnits = []string{}
	}
	resp, err := c.postJSON(ctx, "quote", key, campaignPath(key, "quote"), req)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, resp.apiError()
	}
	var ret Quote
	if err := resp.decode(&ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

// SetUserDefinedInput uploads user content for a user-defined input
func (c *Client) SetUserDefinedInput(
	ctx context.Context,
	key string,
	input UserDefinedInput,
) (*UserDefinedInputResult, error) {
	content, err := json.Marshal(input.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to encode content: %w", err)
	}
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := [][2]string{
		{"inputId", input.InputId},
		{"planId", input.PlanId},
		{"content", string(content)},
	}
	for _, field := range fields {
		if err := mw.WriteField(field[0], field[1]); err != nil {
			return nil, fmt.Errorf("failed to build form: %w", err)
		}
	}
	if input.File != nil {
		fw, err := mw.CreateFormFile("file", input.File.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to build form: %w", err)
		}
		if _, err := io.Copy(fw, input.File.Data); err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	resp, err := c.do(
		ctx,
		request{
			operation:   "set_user_defined_input",
			campaign:    key,
			method:      http.MethodPost,
			path:        campaignPath(key, "setUserDefinedInput"),
			contentType: mw.FormDataContentType(),
			body:        &buf,
		},
	)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, resp.apiError()
	}
	var ret UserDefinedInputResult
	if err := resp.decode(&ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

// Snapshot queries a page of the campaign snapshot
func (c *Client) Snapshot(ctx context.Context, key string, query SnapshotQuery) (json.RawMessage, error) {
	if query.Limit <= 0 {
		query.Limit = DefaultSnapshotLimit
	}
	if query.Page <= 0 {
		query.Page = DefaultSnapshotPage
	}
	return c.snapshot(ctx, "snapshot", key, query)
}

// SnapshotItem fetches a single snapshot entry
func (c *Client) SnapshotItem(ctx context.Context, key string, itemId string) (json.RawMessage, error) {
	body := struct {
		ItemId string `json:"itemId"`
	}{
		ItemId: itemId,
	}
	return c.snapshot(ctx, "snapshot_item", key, body)
}

// SnapshotState fetches the snapshot state summary
func (c *Client) SnapshotState(ctx context.Context, key string) (json.RawMessage, error) {
	body := struct {
		State bool `json:"state"`
	}{
		State: true,
	}
	return c.snapshot(ctx, "snapshot_state", key, body)
}

func (c *Client) snapshot(ctx context.Context, operation string, key string, body any) (json.RawMessage, error) {
	resp, err := c.postJSON(ctx, operation, key, campaignPath(key, "snapshot"), body)
	if err != nil {
		return nil, err
	}
	return resp.raw()
}

// Item fetches a campaign item
func (c *Client) Item(ctx context.Context, key string, itemId string) (json.RawMessage, error) {
	resp, err := c.do(
		ctx,
		request{
			operation: "item",
			campaign:  key,
			method:    http.MethodGet,
			path:      campaignPath(key, "item", itemId),
		},
	)
	if err != nil {
		return nil, err
	}
	return resp.raw()
}

// Leaderboard fetches the project leaderboard
func (c *Client) Leaderboard(ctx context.Context) (json.RawMessage, error) {
	resp, err := c.do(
		ctx,
		request{
			operation: "leaderboard",
			method:    http.MethodGet,
			path:      "/leaderboard",
		},
	)
	if err != nil {
		return nil, err
	}
	return resp.raw()
}

// Activity fetches project activity, limited to a wallet when stakeKey is set
func (c *Client) Activity(ctx context.Context, stakeKey string) (json.RawMessage, error) {
	path := "/activity"
	if stakeKey != "" {
		if err := ValidateStakeKey(stakeKey); err != nil {
			return nil, err
		}
		path += "/" + url.PathEscape(stakeKey)
	}
	resp, err := c.do(
		ctx,
		request{
			operation: "activity",
			method:    http.MethodGet,
			path:      path,
		},
	)
	if err != nil {
		return nil, err
	}
	return resp.raw()
}

// raw returns the body of a successful JSON response
func (r *response) raw() (json.RawMessage, error) {
	if !r.ok() {
		return nil, r.apiError()
	}
	if !json.Valid(r.body) {
		return nil, fmt.Errorf("failed to decode response (HTTP %d): invalid JSON", r.statusCode)
	}
	return json.RawMessage(r.body), nil
}
