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

package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/blinklabs-io/velocity/campaign"
	"github.com/blinklabs-io/velocity/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestSnapshotQuery(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(t)
	defer h.Close()
	snapshot, err := session.NewSnapshot(
		session.WithClient(h.client),
		session.WithCampaignKey("snap-1"),
		session.WithLogger(discardLogger()),
	)
	require.NoError(t, err)
	assert.Nil(t, snapshot.Last())

	h.server.SetSnapshot(http.StatusOK, json.RawMessage(`{"items":[{"id":"a"}]}`))
	data, err := snapshot.Query(context.Background(), campaign.SnapshotQuery{Limit: 10, Page: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[{"id":"a"}]}`, string(data))
	assert.JSONEq(t, `{"limit":10,"page":2}`, string(h.server.LastRequest().Body))

	// a failing query returns the last page
	h.server.SetSnapshot(http.StatusServiceUnavailable, nil)
	data, err = snapshot.Query(context.Background(), campaign.SnapshotQuery{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[{"id":"a"}]}`, string(data))

	_, err = snapshot.Item(context.Background(), "a")
	require.Error(t, err)
	h.server.SetSnapshot(http.StatusOK, json.RawMessage(`{"state":"open"}`))
	state, err := snapshot.State(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"open"}`, string(state))
	assert.Equal(t, "/campaign/snap-1/snapshot", h.server.LastRequest().Path)
}

func TestSnapshotQueryWithoutFallback(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(t)
	defer h.Close()
	snapshot, err := session.NewSnapshot(
		session.WithClient(h.client),
		session.WithCampaignKey("snap-1"),
	)
	require.NoError(t, err)
	h.server.SetSnapshot(http.StatusServiceUnavailable, nil)
	_, err = snapshot.Query(context.Background(), campaign.SnapshotQuery{})
	var apiErr campaign.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

func TestProject(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(t)
	defer h.Close()
	h.server.SetLeaderboard(json.RawMessage(`[{"rank":1}]`))
	h.server.SetActivity(json.RawMessage(`[{"type":"mint"}]`))
	project, err := session.NewProject(
		session.WithClient(h.client),
		session.WithWallet(h.wallet),
	)
	require.NoError(t, err)

	data, err := project.Leaderboard(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"rank":1}]`, string(data))

	data, err = project.Activity(context.Background(), false)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"mint"}]`, string(data))
	assert.Equal(t, "/activity", h.server.LastRequest().Path)

	_, err = project.Activity(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "/activity/"+testStakeKey, h.server.LastRequest().Path)

	h.wallet.Disconnected = true
	_, err = project.Activity(context.Background(), true)
	require.ErrorIs(t, err, session.ErrWalletNotConnected)
}

func TestProjectRequiresClient(t *testing.T) {
	_, err := session.NewProject()
	require.Error(t, err)
}
