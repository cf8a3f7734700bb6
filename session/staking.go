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

	"github.com/blinklabs-io/velocity/asset"
	"github.com/blinklabs-io/velocity/campaign"
	"github.com/google/uuid"
)

// Staking registers a wallet with a staking campaign and claims its rewards
type Staking struct {
	*base
}

func NewStaking(opts ...OptionFunc) (*Staking, error) {
	config := NewConfig(opts...)
	if err := config.validate(true); err != nil {
		return nil, err
	}
	return &Staking{
		base: newBase(config, StakingStateMap),
	}, nil
}

// Check fetches the campaign config and wallet status. Registered wallets
// move to STAKED, all others to UNSTAKED
func (s *Staking) Check(ctx context.Context) error {
	return s.check(
		ctx,
		false,
		false,
		func(result *campaign.CheckResult) Event {
			if result.Ok {
				return EventStaked
			}
			return EventUnstaked
		},
	)
}

// Register pays the registration fee and returns the transaction hash
func (s *Staking) Register(ctx context.Context) (string, error) {
	logger := s.logger.With("action", "register", "action_id", uuid.NewString())
	return s.transition(EventRegister, func() (string, error) {
		return s.payFee(ctx, logger, func(config *campaign.Config) uint64 {
			return config.RegistrationFee
		})
	})
}

// Claim pays the claim fee for staking rewards and returns the transaction hash
func (s *Staking) Claim(ctx context.Context) (string, error) {
	logger := s.logger.With("action", "claim", "action_id", uuid.NewString())
	return s.transition(EventClaim, func() (string, error) {
		return s.payFee(ctx, logger, func(config *campaign.Config) uint64 {
			return asset.AdaToLovelace(config.ClaimFee)
		})
	})
}
