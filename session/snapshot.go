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

package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/blinklabs-io/velocity/campaign"
)

// Snapshot browses the holder snapshot of a campaign. It needs no wallet
type Snapshot struct {
	config Config
	logger *slog.Logger

	mutex    sync.Mutex
	snapshot json.RawMessage
}

func NewSnapshot(opts ...OptionFunc) (*Snapshot, error) {
	config := NewConfig(opts...)
	if err := config.validate(false); err != nil {
		return nil, err
	}
	return &Snapshot{
		config: config,
		logger: config.Logger.With("component", "session", "campaign", config.CampaignKey),
	}, nil
}

// Query fetches a page of the snapshot. Failures other than rejected requests
// fall back to the last page fetched
func (s *Snapshot) Query(ctx context.Context, query campaign.SnapshotQuery) (json.RawMessage, error) {
	data, err := s.config.Client.Snapshot(ctx, s.config.CampaignKey, query)
	if err != nil {
		var apiErr campaign.APIError
		if errors.As(err, &apiErr) && !apiErr.Unprocessable() {
			if last := s.Last(); last != nil {
				s.logger.WarnContext(ctx, "snapshot query failed, using last snapshot", "error", err)
				return last, nil
			}
		}
		return nil, err
	}
	s.mutex.Lock()
	s.snapshot = slices.Clone(data)
	s.mutex.Unlock()
	return data, nil
}

// Last returns the last snapshot page fetched
func (s *Snapshot) Last() json.RawMessage {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.snapshot == nil {
		return nil
	}
	return slices.Clone(s.snapshot)
}

// Item fetches a single snapshot entry
func (s *Snapshot) Item(ctx context.Context, itemId string) (json.RawMessage, error) {
	return s.config.Client.SnapshotItem(ctx, s.config.CampaignKey, itemId)
}

// State fetches the snapshot state summary
func (s *Snapshot) State(ctx context.Context) (json.RawMessage, error) {
	return s.config.Client.SnapshotState(ctx, s.config.CampaignKey)
}
