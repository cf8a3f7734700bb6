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

// Package session implements the campaign workflows: checking eligibility,
// quoting, and paying for campaign actions through a wallet
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/blinklabs-io/velocity/asset"
	"github.com/blinklabs-io/velocity/campaign"
	"github.com/blinklabs-io/velocity/tx"
	"github.com/blinklabs-io/velocity/utxo"
	"github.com/jinzhu/copier"
)

// BoardingPassPolicy is the policy ID of boarding pass assets, which are
// included with campaign actions when the wallet holds an unlocked one
const BoardingPassPolicy = "d27ed993038c15706d6d403a65bf377163f30d2b989c075bf901d540"

// Client is the campaign API used by sessions
type Client interface {
	Check(ctx context.Context, key string, stakeKey string, opts campaign.CheckOptions) (*campaign.CheckResult, error)
	Quote(ctx context.Context, key string, req campaign.QuoteRequest) (*campaign.Quote, error)
	SetUserDefinedInput(ctx context.Context, key string, input campaign.UserDefinedInput) (*campaign.UserDefinedInputResult, error)
	Snapshot(ctx context.Context, key string, query campaign.SnapshotQuery) (json.RawMessage, error)
	SnapshotItem(ctx context.Context, key string, itemId string) (json.RawMessage, error)
	SnapshotState(ctx context.Context, key string) (json.RawMessage, error)
	Leaderboard(ctx context.Context) (json.RawMessage, error)
	Activity(ctx context.Context, stakeKey string) (json.RawMessage, error)
}

// Compile-time check that the HTTP client can back a session
var _ Client = (*campaign.Client)(nil)

// Config holds the dependencies and settings shared by all sessions
type Config struct {
	Client      Client
	Wallet      tx.Wallet
	Assembler   *tx.Assembler
	BuilderFunc func() tx.Builder
	Logger      *slog.Logger
	CampaignKey string
	Tag         string
	Strategy    utxo.Strategy
}

// OptionFunc is a type that represents functions that modify the session config
type OptionFunc func(*Config)

// NewConfig returns a session config with defaults applied after the provided options
func NewConfig(opts ...OptionFunc) Config {
	c := Config{
		Strategy: utxo.StrategyIsolated,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Assembler == nil {
		c.Assembler = tx.NewAssembler(tx.WithLogger(c.Logger))
	}
	if c.BuilderFunc == nil {
		c.BuilderFunc = func() tx.Builder { return tx.NewDraft() }
	}
	return c
}

// WithClient specifies the campaign API client
func WithClient(client Client) OptionFunc {
	return func(c *Config) {
		c.Client = client
	}
}

// WithWallet specifies the wallet that pays for campaign actions
func WithWallet(wallet tx.Wallet) OptionFunc {
	return func(c *Config) {
		c.Wallet = wallet
	}
}

// WithAssembler specifies the transaction assembler
func WithAssembler(assembler *tx.Assembler) OptionFunc {
	return func(c *Config) {
		c.Assembler = assembler
	}
}

// WithBuilderFunc specifies the function that creates a transaction builder for
// each action. The default builds a tx.Draft
func WithBuilderFunc(builderFunc func() tx.Builder) OptionFunc {
	return func(c *Config) {
		c.BuilderFunc = builderFunc
	}
}

// WithLogger specifies the logger
func WithLogger(logger *slog.Logger) OptionFunc {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithCampaignKey specifies the campaign key used in API paths
func WithCampaignKey(key string) OptionFunc {
	return func(c *Config) {
		c.CampaignKey = key
	}
}

// WithTag specifies the tag sent with check requests
func WithTag(tag string) OptionFunc {
	return func(c *Config) {
		c.Tag = tag
	}
}

// WithStrategy specifies the default UTxO selection strategy
func WithStrategy(strategy utxo.Strategy) OptionFunc {
	return func(c *Config) {
		c.Strategy = strategy
	}
}

func (c *Config) validate(needWallet bool) error {
	if c.Client == nil {
		return errors.New("session: campaign client not specified")
	}
	if c.CampaignKey == "" {
		return errors.New("session: campaign key not specified")
	}
	if needWallet && c.Wallet == nil {
		return errors.New("session: wallet not specified")
	}
	if !c.Strategy.Valid() {
		return fmt.Errorf("session: invalid strategy %d", c.Strategy)
	}
	return nil
}

// SelectedInput is an asset offered as an input to a campaign action
type SelectedInput struct {
	Unit string
	// PolicyId is checked against the campaign inputs unless empty or off-chain
	PolicyId string
}

// NewSelectedInput returns the selected input for a unit
func NewSelectedInput(unit string) SelectedInput {
	return SelectedInput{
		Unit:     unit,
		PolicyId: asset.Unit(unit).PolicyId(),
	}
}

func selectedUnits(inputs []SelectedInput) []string {
	ret := make([]string, 0, len(inputs))
	for _, input := range inputs {
		ret = append(ret, input.Unit)
	}
	return ret
}

// base holds the state shared by the wallet-backed sessions
type base struct {
	config  Config
	logger  *slog.Logger
	machine *stateMachine

	mutex          sync.Mutex
	campaignConfig *campaign.Config
	status         campaign.Status
	boardingPass   string
	lastQuote      *campaign.Quote
}

func newBase(config Config, stateMap StateMap) *base {
	return &base{
		config:  config,
		logger:  config.Logger.With("component", "session", "campaign", config.CampaignKey),
		machine: newStateMachine(stateMap),
	}
}

// State returns the current session state
func (b *base) State() State {
	return b.machine.State()
}

// CampaignConfig returns a copy of the campaign config from the last check, or
// nil before a check has returned one
func (b *base) CampaignConfig() *campaign.Config {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.campaignConfig == nil {
		return nil
	}
	var ret campaign.Config
	if err := copier.CopyWithOption(&ret, b.campaignConfig, copier.Option{DeepCopy: true}); err != nil {
		b.logger.Error("failed to copy campaign config", "error", err)
		return nil
	}
	return &ret
}

// Data returns a copy of the wallet status from the last check
func (b *base) Data() campaign.Status {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	var ret campaign.Status
	if err := copier.CopyWithOption(&ret, &b.status, copier.Option{DeepCopy: true}); err != nil {
		b.logger.Error("failed to copy campaign status", "error", err)
	}
	return ret
}

// AvailableBoardingPass returns the unit of the boarding pass included with
// actions, or an empty string when the wallet has none available
func (b *base) AvailableBoardingPass() string {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.boardingPass
}

// LastQuote returns the last quote received from the campaign API
func (b *base) LastQuote() *campaign.Quote {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.lastQuote == nil {
		return nil
	}
	ret := *b.lastQuote
	ret.AssetsToInclude = slices.Clone(b.lastQuote.AssetsToInclude)
	return &ret
}

func (b *base) stakeKey(ctx context.Context) (string, error) {
	addresses, err := b.config.Wallet.GetRewardAddresses(ctx)
	if err != nil {
		return "", fmt.Errorf("get reward addresses: %w", err)
	}
	if len(addresses) == 0 {
		return "", ErrNoRewardAddress
	}
	return addresses[0], nil
}

// check fetches the campaign config and wallet status. The result event is
// picked by resolve from the check result
func (b *base) check(
	ctx context.Context,
	includeItems bool,
	withBoardingPass bool,
	resolve func(*campaign.CheckResult) Event,
) error {
	if !tx.IsConnected(b.config.Wallet) {
		return ErrWalletNotConnected
	}
	if _, err := b.machine.Fire(EventCheck); err != nil {
		return err
	}
	b.logger.DebugContext(ctx, "checking campaign")
	result, err := b.fetchCheck(ctx, includeItems, withBoardingPass)
	if err != nil {
		_, _ = b.machine.Fire(EventFail)
		return err
	}
	state, err := b.machine.Fire(resolve(result))
	if err != nil {
		return err
	}
	b.logger.DebugContext(ctx, "checked campaign", "ok", result.Ok, "state", state.String())
	return nil
}

func (b *base) fetchCheck(ctx context.Context, includeItems bool, withBoardingPass bool) (*campaign.CheckResult, error) {
	stakeKey, err := b.stakeKey(ctx)
	if err != nil {
		return nil, err
	}
	result, err := b.config.Client.Check(
		ctx,
		b.config.CampaignKey,
		stakeKey,
		campaign.CheckOptions{
			IncludeItems: includeItems,
			Tag:          b.config.Tag,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("check campaign: %w", err)
	}
	var boardingPass string
	if withBoardingPass {
		utxos, err := b.config.Wallet.GetUtxos(ctx)
		if err != nil {
			return nil, fmt.Errorf("get wallet UTxOs: %w", err)
		}
		boardingPass = FindBoardingPass(utxos, &result.Status)
	}
	b.mutex.Lock()
	b.status = result.Status
	b.campaignConfig = result.Config
	b.boardingPass = boardingPass
	b.mutex.Unlock()
	return result, nil
}

// FindBoardingPass returns the last boarding pass held in the UTxOs that is
// not locked by an in-progress action, or an empty string
func FindBoardingPass(utxos []utxo.Utxo, status *campaign.Status) string {
	var passes []string
	for _, u := range utxos {
		for _, amount := range u.Output.Amount {
			if !strings.Contains(amount.Unit, BoardingPassPolicy) {
				continue
			}
			if slices.Contains(passes, amount.Unit) || status.IsLocked(amount.Unit) {
				continue
			}
			passes = append(passes, amount.Unit)
		}
	}
	if len(passes) == 0 {
		return ""
	}
	return passes[len(passes)-1]
}

// quote requests a quote, appending the available boarding pass to the input
// units. Failures other than rejected requests fall back to the last quote
func (b *base) quote(ctx context.Context, req campaign.QuoteRequest) (*campaign.Quote, error) {
	req.InputUnits = slices.Clone(req.InputUnits)
	if bp := b.AvailableBoardingPass(); bp != "" {
		req.InputUnits = append(req.InputUnits, bp)
	}
	quote, err := b.config.Client.Quote(ctx, b.config.CampaignKey, req)
	if err != nil {
		var apiErr campaign.APIError
		if errors.As(err, &apiErr) && !apiErr.Unprocessable() {
			if last := b.LastQuote(); last != nil {
				b.logger.WarnContext(ctx, "quote failed, using last quote", "error", err)
				return last, nil
			}
		}
		return nil, err
	}
	b.mutex.Lock()
	b.lastQuote = quote
	b.mutex.Unlock()
	return b.LastQuote(), nil
}

// validateInputs checks selected inputs against the campaign inputs. Inputs
// without a policy ID and off-chain inputs are not checked
func validateInputs(config *campaign.Config, inputs []SelectedInput) error {
	for _, input := range inputs {
		if input.PolicyId == "" || asset.IsPolicyOffChain(input.PolicyId) {
			continue
		}
		if _, ok := config.Input(input.PolicyId); !ok {
			return fmt.Errorf("%w: %s", ErrInputNotFound, input.PolicyId)
		}
	}
	return nil
}

// validatePlan checks the wallet, plan and inputs of an action
func (b *base) validatePlan(planId string, inputs []SelectedInput) (*campaign.Config, campaign.Plan, error) {
	if !tx.IsConnected(b.config.Wallet) {
		return nil, campaign.Plan{}, ErrWalletNotConnected
	}
	config := b.CampaignConfig()
	if config == nil {
		return nil, campaign.Plan{}, ErrNoCampaignConfig
	}
	plan, ok := config.Plan(planId)
	if !ok {
		return nil, campaign.Plan{}, fmt.Errorf("%w: %s", ErrPlanNotFound, planId)
	}
	if err := validateInputs(config, inputs); err != nil {
		return nil, campaign.Plan{}, err
	}
	return config, plan, nil
}

// transition runs fn between the start event and the submitted or fail event
func (b *base) transition(start Event, fn func() (string, error)) (string, error) {
	if _, err := b.machine.Fire(start); err != nil {
		return "", err
	}
	hash, err := fn()
	if err != nil {
		_, _ = b.machine.Fire(EventFail)
		return "", err
	}
	if _, err := b.machine.Fire(EventSubmitted); err != nil {
		return "", err
	}
	return hash, nil
}

// payFee sends the fee picked from the campaign config to the campaign wallet
func (b *base) payFee(
	ctx context.Context,
	logger *slog.Logger,
	fee func(*campaign.Config) uint64,
) (string, error) {
	if !tx.IsConnected(b.config.Wallet) {
		return "", ErrWalletNotConnected
	}
	config := b.CampaignConfig()
	if config == nil {
		return "", ErrNoCampaignConfig
	}
	lovelace := fee(config)
	logger.DebugContext(ctx, "paying fee", "lovelace", lovelace)
	builder := b.config.BuilderFunc()
	builder.SendLovelace(config.WalletAddress, lovelace)
	return b.config.Assembler.SubmitTx(ctx, builder, b.config.Wallet)
}
