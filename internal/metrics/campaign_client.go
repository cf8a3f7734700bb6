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

package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "velocity"
	subsystem = "campaign_client"

	StatusSuccess = "success"
	StatusError   = "error"
)

// CampaignClient tracks metrics for calls to the campaign API
type CampaignClient struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewCampaignClient constructs a metrics collector for campaign API calls and
// registers it with reg. A nil registerer leaves the collectors unregistered.
// Collectors already registered by another client are shared
func NewCampaignClient(reg prometheus.Registerer) (*CampaignClient, error) {
	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "operations_total",
		Help:      "Count of campaign API operations.",
	}, []string{"operation", "campaign", "status"})
	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "operation_duration_seconds",
		Help:      "Duration of campaign API operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "campaign", "status"})
	if reg != nil {
		var err error
		if requestsTotal, err = register(reg, requestsTotal); err != nil {
			return nil, err
		}
		if requestDuration, err = register(reg, requestDuration); err != nil {
			return nil, err
		}
	}
	return &CampaignClient{
		requestsTotal:   requestsTotal,
		requestDuration: requestDuration,
	}, nil
}

// Observe records a single campaign API call outcome and duration
func (m *CampaignClient) Observe(operation string, campaign string, err error, started time.Time) {
	if m == nil {
		return
	}
	if campaign == "" {
		campaign = "none"
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.requestsTotal.WithLabelValues(operation, campaign, status).Inc()
	m.requestDuration.WithLabelValues(operation, campaign, status).Observe(time.Since(started).Seconds())
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, err
	}
	return c, nil
}
