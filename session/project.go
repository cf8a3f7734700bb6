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
	"fmt"

	"github.com/blinklabs-io/velocity/tx"
)

// Project reads project-wide data that is not tied to a campaign
type Project struct {
	config Config
}

// NewProject returns a project session. A wallet is only needed for wallet
// activity
func NewProject(opts ...OptionFunc) (*Project, error) {
	config := NewConfig(opts...)
	if config.Client == nil {
		return nil, errors.New("session: campaign client not specified")
	}
	return &Project{config: config}, nil
}

func (p *Project) Leaderboard(ctx context.Context) (json.RawMessage, error) {
	return p.config.Client.Leaderboard(ctx)
}

// Activity fetches project activity, limited to the wallet's first reward
// address when forWallet is set
func (p *Project) Activity(ctx context.Context, forWallet bool) (json.RawMessage, error) {
	var stakeKey string
	if forWallet {
		if !tx.IsConnected(p.config.Wallet) {
			return nil, ErrWalletNotConnected
		}
		addresses, err := p.config.Wallet.GetRewardAddresses(ctx)
		if err != nil {
			return nil, fmt.Errorf("get reward addresses: %w", err)
		}
		if len(addresses) == 0 {
			return nil, ErrNoRewardAddress
		}
		stakeKey = addresses[0]
	}
	return p.config.Client.Activity(ctx, stakeKey)
}
