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
	"fmt"
	"log/slog"

	"github.com/blinklabs-io/velocity/asset"
	"github.com/blinklabs-io/velocity/campaign"
	"github.com/blinklabs-io/velocity/tx"
	"github.com/blinklabs-io/velocity/utxo"
	"github.com/google/uuid"
)

// ActionRequest describes a plan-based campaign action
type ActionRequest struct {
	PlanId string
	Inputs []SelectedInput
	// Concurrent defaults to 1
	Concurrent uint64
	TokenSplit uint64
	// Strategy overrides the session strategy when set
	Strategy utxo.Strategy
}

// actionSession implements the craft, mint, upgrade and compile workflows,
// which differ only in their campaign type and the state entered while the
// action is in progress
type actionSession struct {
	*base
	campaignType string
	actionType   string
	startEvent   Event
}

func newActionSession(
	campaignType string,
	actionType string,
	startEvent Event,
	opts ...OptionFunc,
) (*actionSession, error) {
	config := NewConfig(opts...)
	if err := config.validate(true); err != nil {
		return nil, err
	}
	return &actionSession{
		base:         newBase(config, ActionStateMap),
		campaignType: campaignType,
		actionType:   actionType,
		startEvent:   startEvent,
	}, nil
}

// Check fetches the campaign config, the wallet status and the available
// boarding pass
func (s *actionSession) Check(ctx context.Context, includeItems bool) error {
	return s.check(
		ctx,
		includeItems,
		true,
		func(*campaign.CheckResult) Event { return EventReady },
	)
}

// Quote requests the price of an action on a plan
func (s *actionSession) Quote(
	ctx context.Context,
	planId string,
	inputUnits []string,
	concurrent uint64,
	tokenSplit uint64,
) (*campaign.Quote, error) {
	if concurrent == 0 {
		concurrent = 1
	}
	return s.quote(
		ctx,
		campaign.QuoteRequest{
			InputUnits: inputUnits,
			PlanId:     planId,
			Type:       s.campaignType,
			Concurrent: concurrent,
			TokenSplit: tokenSplit,
		},
	)
}

// run performs the action and returns the transaction hash
func (s *actionSession) run(ctx context.Context, req ActionRequest) (string, error) {
	if !tx.IsConnected(s.config.Wallet) {
		return "", ErrWalletNotConnected
	}
	if req.Concurrent == 0 {
		req.Concurrent = 1
	}
	logger := s.logger.With(
		"action", s.actionType,
		"action_id", uuid.NewString(),
		"plan_id", req.PlanId,
	)
	return s.transition(s.startEvent, func() (string, error) {
		return s.execute(ctx, logger, req)
	})
}

func (s *actionSession) execute(ctx context.Context, logger *slog.Logger, req ActionRequest) (string, error) {
	config, _, err := s.validatePlan(req.PlanId, req.Inputs)
	if err != nil {
		return "", err
	}
	quote, err := s.Quote(ctx, req.PlanId, selectedUnits(req.Inputs), req.Concurrent, req.TokenSplit)
	if err != nil {
		if campaign.IsUnprocessable(err) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrQuoteNotFound, err)
	}
	logger.DebugContext(ctx, "received quote", "fee", quote.Fee, "price", quote.Price, "time", quote.Time)
	strategy := req.Strategy
	if strategy == 0 {
		strategy = s.config.Strategy
	}
	builder := s.config.BuilderFunc()
	err = s.config.Assembler.SendAssets(
		ctx,
		s.config.Wallet,
		builder,
		tx.SendRequest{
			AdaAmount:         quote.AdaAmount(),
			NativeTokenAmount: quote.Price,
			NativeTokenAsset:  quote.CurrencyUnit(),
			AssetUnits:        quote.AssetUnits(),
			Address:           config.WalletAddress,
			Strategy:          strategy,
		},
	)
	if err != nil {
		return "", err
	}
	s.config.Assembler.SetActionMetadata(
		builder,
		tx.ActionMetadata{
			Type:       s.actionType,
			PlanId:     req.PlanId,
			Concurrent: req.Concurrent,
			TokenSplit: req.TokenSplit,
		},
	)
	ix := tx.ActionMetadataLabel + 1
	for _, input := range req.Inputs {
		ix = s.config.Assembler.SetAddressMetadata(builder, ix, input.Unit)
	}
	if bp := s.AvailableBoardingPass(); bp != "" {
		s.config.Assembler.SetAddressMetadata(builder, ix, bp)
	}
	return s.config.Assembler.SubmitTx(ctx, builder, s.config.Wallet)
}

// Crafting combines assets into new ones, claimed once crafting completes
type Crafting struct {
	*actionSession
}

func NewCrafting(opts ...OptionFunc) (*Crafting, error) {
	s, err := newActionSession(campaign.TypeCraft, tx.ActionCraft, EventCraft, opts...)
	if err != nil {
		return nil, err
	}
	return &Crafting{actionSession: s}, nil
}

// Craft pays for a craft and returns the transaction hash
func (c *Crafting) Craft(ctx context.Context, req ActionRequest) (string, error) {
	return c.run(ctx, req)
}

// Claim pays the claim fee for a completed craft and returns the craft ID.
// Claims are only accepted while the session is ready
func (c *Crafting) Claim(ctx context.Context, craftId string) (string, error) {
	logger := c.logger.With("action", "claim", "action_id", uuid.NewString(), "craft_id", craftId)
	_, err := c.transition(EventClaim, func() (string, error) {
		return c.payFee(ctx, logger, func(config *campaign.Config) uint64 {
			return asset.AdaToLovelace(config.ClaimFee)
		})
	})
	if err != nil {
		return "", err
	}
	return craftId, nil
}

// Mint pays for new assets minted from a plan
type Mint struct {
	*actionSession
}

func NewMint(opts ...OptionFunc) (*Mint, error) {
	s, err := newActionSession(campaign.TypeMint, tx.ActionMint, EventCraft, opts...)
	if err != nil {
		return nil, err
	}
	return &Mint{actionSession: s}, nil
}

// Mint pays for a mint and returns the transaction hash
func (m *Mint) Mint(ctx context.Context, req ActionRequest) (string, error) {
	return m.run(ctx, req)
}

// Upgrade pays to upgrade existing assets
type Upgrade struct {
	*actionSession
}

func NewUpgrade(opts ...OptionFunc) (*Upgrade, error) {
	s, err := newActionSession(campaign.TypeUpgrade, tx.ActionUpgrade, EventUpgrade, opts...)
	if err != nil {
		return nil, err
	}
	return &Upgrade{actionSession: s}, nil
}

// Upgrade pays for an upgrade and returns the transaction hash
func (u *Upgrade) Upgrade(ctx context.Context, req ActionRequest) (string, error) {
	return u.run(ctx, req)
}

// Compile builds assets from user-defined and pre-defined inputs
type Compile struct {
	*actionSession
}

func NewCompile(opts ...OptionFunc) (*Compile, error) {
	s, err := newActionSession(campaign.TypeCompile, tx.ActionCompile, EventCraft, opts...)
	if err != nil {
		return nil, err
	}
	return &Compile{actionSession: s}, nil
}

// Compile pays for a compile and returns the transaction hash
func (c *Compile) Compile(ctx context.Context, req ActionRequest) (string, error) {
	return c.run(ctx, req)
}

// SetUserDefinedInput uploads user content for an input of a plan
func (c *Compile) SetUserDefinedInput(
	ctx context.Context,
	inputId string,
	planId string,
	content any,
	file *campaign.File,
) (*campaign.UserDefinedInputResult, error) {
	return c.config.Client.SetUserDefinedInput(
		ctx,
		c.config.CampaignKey,
		campaign.UserDefinedInput{
			InputId: inputId,
			PlanId:  planId,
			Content: content,
			File:    file,
		},
	)
}
