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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/blinklabs-io/velocity/asset"
)

// Campaign types sent with quote requests
const (
	TypeCraft    = "craft"
	TypeMint     = "mint"
	TypeUpgrade  = "upgrade"
	TypeCompile  = "compile"
	TypeRecycler = "recycler"
)

type Plan struct {
	Id          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Input is an asset collection accepted by the campaign
type Input struct {
	Id       string `json:"id,omitempty"`
	PolicyId string `json:"policyId"`
	Name     string `json:"name,omitempty"`
	Type     string `json:"type,omitempty"`
}

// Config is the static campaign configuration returned by the check endpoint
type Config struct {
	Plans            []Plan  `json:"plans"`
	Inputs           []Input `json:"inputs"`
	WalletAddress    string  `json:"walletAddress"`
	NativeTokenAsset string  `json:"nativeTokenAsset,omitempty"`
	TokenAssetName   string  `json:"tokenAssetName,omitempty"`
	// ClaimFee is in ADA
	ClaimFee float64 `json:"claimFee,omitempty"`
	// RegistrationFee is in lovelace
	RegistrationFee uint64 `json:"registrationFee,omitempty"`
}

// Validate checks the fields needed to build campaign transactions
func (c *Config) Validate() error {
	if c.WalletAddress == "" {
		return errors.New("campaign config: missing wallet address")
	}
	if _, err := common.NewAddress(c.WalletAddress); err != nil {
		return fmt.Errorf("campaign config: invalid wallet address %q: %w", c.WalletAddress, err)
	}
	for idx, plan := range c.Plans {
		if plan.Id == "" {
			return fmt.Errorf("campaign config: plan %d has no ID", idx)
		}
	}
	return nil
}

// Plan returns the plan with the given ID
func (c *Config) Plan(id string) (Plan, bool) {
	idx := slices.IndexFunc(c.Plans, func(p Plan) bool { return p.Id == id })
	if idx < 0 {
		return Plan{}, false
	}
	return c.Plans[idx], true
}

// Input returns the input accepting the given policy ID
func (c *Config) Input(policyId string) (Input, bool) {
	idx := slices.IndexFunc(c.Inputs, func(i Input) bool { return i.PolicyId == policyId })
	if idx < 0 {
		return Input{}, false
	}
	return c.Inputs[idx], true
}

// Action is a craft, mint, upgrade or recycle recorded for the wallet
type Action struct {
	Id        string `json:"id"`
	PlanId    string `json:"planId,omitempty"`
	Status    string `json:"status,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// LockedAsset is an asset committed to an in-progress action
type LockedAsset struct {
	Unit string `json:"unit"`
}

// Status is the wallet's activity within a campaign
type Status struct {
	Crafts   []Action        `json:"crafts"`
	Mints    []Action        `json:"mints"`
	Upgrades []Action        `json:"upgrades,omitempty"`
	Recycles []Action        `json:"recycles,omitempty"`
	Locked   []LockedAsset   `json:"locked"`
	Items    json.RawMessage `json:"items,omitempty"`
}

// IsLocked reports whether the unit is locked by an in-progress action
func (s *Status) IsLocked(unit string) bool {
	return slices.ContainsFunc(s.Locked, func(l LockedAsset) bool { return l.Unit == unit })
}

// CheckResult is the decoded response of the check endpoint. Ok is false when
// the wallet is not eligible or not registered, in which case only Config is
// usually populated
type CheckResult struct {
	Ok     bool
	Status Status
	Config *Config
}

type AssetToInclude struct {
	Asset string `json:"asset"`
}

// Quote is the server-priced cost of an action
type Quote struct {
	// Fee is in ADA
	Fee float64 `json:"fee"`
	// Price is the amount of Currency to pay
	Price    uint64 `json:"price"`
	Currency string `json:"currency,omitempty"`
	// Time until the result can be claimed. 0 means it is claimed immediately
	Time            int64            `json:"time"`
	AssetsToInclude []AssetToInclude `json:"assetsToInclude,omitempty"`
}

// CurrencyUnit returns the unit the price is paid in
func (q *Quote) CurrencyUnit() string {
	if q.Currency == "" {
		return asset.LovelaceUnit
	}
	return q.Currency
}

// AssetUnits returns the units of the assets to include in the payment
func (q *Quote) AssetUnits() []string {
	ret := make([]string, 0, len(q.AssetsToInclude))
	for _, a := range q.AssetsToInclude {
		ret = append(ret, a.Asset)
	}
	return ret
}

// AdaAmount returns the ADA to pay with the action. The fee is paid up front
// for actions claimed immediately. Otherwise 1 ADA is sent when the payment
// would carry no assets, and nothing when it does
func (q *Quote) AdaAmount() float64 {
	if q.Time == 0 {
		return q.Fee
	}
	if len(q.AssetsToInclude) == 0 && q.Price == 0 {
		return 1
	}
	return 0
}

type QuoteRequest struct {
	InputUnits   []string `json:"inputUnits"`
	RecycleUnits []string `json:"recycleUnits,omitempty"`
	PlanId       string   `json:"planId,omitempty"`
	Type         string   `json:"type"`
	Concurrent   uint64   `json:"concurrent,omitempty"`
	TokenSplit   uint64   `json:"tokenSplit"`
	StakeKey     string   `json:"stakeKey,omitempty"`
}

// File is an upload attached to a user-defined input
type File struct {
	Name string
	Data io.Reader
}

type UserDefinedInput struct {
	InputId string
	PlanId  string
	// Content is sent JSON-encoded
	Content any
	File    *File
}

type UserDefinedInputResult struct {
	Id        string `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// SnapshotQuery selects a page of a campaign snapshot
type SnapshotQuery struct {
	Limit     int    `json:"limit"`
	Page      int    `json:"page"`
	Facet1    string `json:"facet1,omitempty"`
	Facet2    string `json:"facet2,omitempty"`
	Facet3    string `json:"facet3,omitempty"`
	Filter1   string `json:"filter1,omitempty"`
	Filter2   string `json:"filter2,omitempty"`
	SortBy    string `json:"sortBy,omitempty"`
	SortOrder string `json:"sortOrder,omitempty"`
}
