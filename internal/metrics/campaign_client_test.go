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

package metrics_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/blinklabs-io/velocity/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaignClientObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.NewCampaignClient(reg)
	require.NoError(t, err)
	started := time.Now()
	m.Observe("quote", "crafting", nil, started)
	m.Observe("quote", "crafting", nil, started)
	m.Observe("check", "", errors.New("boom"), started)
	expected := `
# HELP velocity_campaign_client_operations_total Count of campaign API operations.
# TYPE velocity_campaign_client_operations_total counter
velocity_campaign_client_operations_total{campaign="crafting",operation="quote",status="success"} 2
velocity_campaign_client_operations_total{campaign="none",operation="check",status="error"} 1
`
	assert.NoError(
		t,
		testutil.GatherAndCompare(
			reg,
			strings.NewReader(expected),
			"velocity_campaign_client_operations_total",
		),
	)
}

func TestCampaignClientSharedRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := metrics.NewCampaignClient(reg)
	require.NoError(t, err)
	second, err := metrics.NewCampaignClient(reg)
	require.NoError(t, err)
	first.Observe("check", "mint", nil, time.Now())
	second.Observe("check", "mint", nil, time.Now())
	count, err := testutil.GatherAndCount(reg, "velocity_campaign_client_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCampaignClientNil(t *testing.T) {
	var m *metrics.CampaignClient
	m.Observe("check", "mint", nil, time.Now())
	unregistered, err := metrics.NewCampaignClient(nil)
	require.NoError(t, err)
	unregistered.Observe("check", "mint", nil, time.Now())
}
