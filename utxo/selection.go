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

package utxo

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/blinklabs-io/velocity/asset"
)

// Fee parameters used to pad an ada-only selection with the largest fee a
// transaction could require
const (
	MaxTxSize = 16384
	MinFeeA   = 44
	MinFeeB   = 155381
	MaxTxFee  = MaxTxSize*MinFeeA + MinFeeB
)

// Source provides the wallet's current UTxO set
type Source interface {
	GetUtxos(ctx context.Context) ([]Utxo, error)
}

// Request describes the value a transaction needs to move
type Request struct {
	Lovelace          uint64
	NativeTokenAmount uint64
	NativeTokenAsset  string
	AssetUnits        []string
}

// HasAssets reports whether the request moves any native assets
func (r Request) HasAssets() bool {
	return r.NativeTokenAmount > 0 || len(r.AssetUnits) > 0
}

// Requirements builds the asset requirement map for the request. The native
// token is required at its amount and every listed unit at quantity 1
func (r Request) Requirements() Requirements {
	ret := Requirements{}
	if r.NativeTokenAmount > 0 {
		ret[r.NativeTokenAsset] = r.NativeTokenAmount
	}
	for _, unit := range r.AssetUnits {
		ret[unit] = 1
	}
	return ret
}

// MinAda returns the min-UTxO value for the request's asset bundle
func (r Request) MinAda() uint64 {
	return MinAda(r.NativeTokenAmount, r.AssetUnits, r.NativeTokenAsset)
}

type SelectorOptionFunc func(*Selector)

// WithLogger specifies the logger used by the selector
func WithLogger(logger *slog.Logger) SelectorOptionFunc {
	return func(s *Selector) {
		s.logger = logger
	}
}

// Selector chooses transaction inputs from a wallet's UTxO set
type Selector struct {
	logger *slog.Logger
}

func NewSelector(opts ...SelectorOptionFunc) *Selector {
	s := &Selector{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Select fetches the wallet's UTxOs and chooses inputs according to the
// strategy. A nil result with a nil error means the transaction builder should
// perform its own input selection. Selection never fails for insufficient
// funds; that is left to the builder and the ledger
func (s *Selector) Select(
	ctx context.Context,
	strategy Strategy,
	source Source,
	req Request,
) ([]Utxo, error) {
	switch strategy {
	case StrategyIsolated:
		utxos, err := source.GetUtxos(ctx)
		if err != nil {
			return nil, fmt.Errorf("get UTxOs: %w", err)
		}
		ret := s.SelectIsolated(utxos, req)
		s.logSelection(ctx, strategy, ret)
		return ret, nil
	case StrategyAdaOnly:
		utxos, err := source.GetUtxos(ctx)
		if err != nil {
			return nil, fmt.Errorf("get UTxOs: %w", err)
		}
		ret := SelectAdaOnly(utxos, req)
		s.logSelection(ctx, strategy, ret)
		return ret, nil
	case StrategyKitchenSink:
		utxos, err := source.GetUtxos(ctx)
		if err != nil {
			return nil, fmt.Errorf("get UTxOs: %w", err)
		}
		ret := SelectKitchenSink(utxos)
		s.logSelection(ctx, strategy, ret)
		return ret, nil
	case StrategyDefault:
		// The wallet contents are only interesting for debugging here
		if s.logger.Enabled(ctx, slog.LevelDebug) {
			utxos, err := source.GetUtxos(ctx)
			if err != nil {
				return nil, fmt.Errorf("get UTxOs: %w", err)
			}
			s.logger.DebugContext(
				ctx,
				"using builder default input selection",
				"component", "utxo",
				"available_utxos", len(utxos),
				"available_lovelace", TotalLovelace(utxos),
			)
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown selection strategy: %s", strategy)
	}
}

// SelectIsolated picks the inputs needed for the request. A request moving
// only ADA uses a largest-first cover. Otherwise the UTxOs relevant to the
// requested assets are chosen along with enough ADA for the output and its
// min-UTxO value, falling back to the full set when they cannot be found
func (s *Selector) SelectIsolated(utxos []Utxo, req Request) []Utxo {
	if !req.HasAssets() {
		if req.Lovelace == 0 {
			return nil
		}
		return LargestFirst(req.Lovelace, utxos, true)
	}
	required := req.Requirements()
	threshold := req.Lovelace + req.MinAda()
	relevant := KeepRelevant(required, utxos, threshold)
	required[asset.LovelaceUnit] = threshold
	if len(relevant) == 0 || !Covers(relevant, required) {
		s.logger.Debug(
			"relevant UTxOs do not cover requirements, using full set",
			"component", "utxo",
			"relevant", len(relevant),
			"available", len(utxos),
		)
		return slices.Clone(utxos)
	}
	return relevant
}

// SelectIsolated is a convenience wrapper using a selector with the default logger
func SelectIsolated(utxos []Utxo, req Request) []Utxo {
	return NewSelector().SelectIsolated(utxos, req)
}

// SelectAdaOnly covers only the ADA amount of the request, ignoring assets
func SelectAdaOnly(utxos []Utxo, req Request) []Utxo {
	return LargestFirst(req.Lovelace, utxos, true)
}

// SelectKitchenSink returns every UTxO in the wallet
func SelectKitchenSink(utxos []Utxo) []Utxo {
	return slices.Clone(utxos)
}

// LargestFirst greedily selects ada-only UTxOs with the most lovelace until the
// target is reached. The target grows by MaxTxFee when includeTxFees is set.
// The full set is returned when the ada-only UTxOs cannot cover the target
func LargestFirst(lovelace uint64, utxos []Utxo, includeTxFees bool) []Utxo {
	target := lovelace
	if includeTxFees {
		target += MaxTxFee
	}
	candidates := make([]Utxo, 0, len(utxos))
	for _, u := range utxos {
		if isAdaOnly(u) {
			candidates = append(candidates, u)
		}
	}
	sortByQuantity(candidates, asset.LovelaceUnit)
	var ret []Utxo
	var selected uint64
	for _, u := range candidates {
		if selected >= target {
			break
		}
		ret = append(ret, u)
		selected += u.Lovelace()
	}
	if selected < target {
		return slices.Clone(utxos)
	}
	return ret
}

// KeepRelevant selects the UTxOs holding each required native asset, largest
// holding first until the unit's quantity is covered, then tops up with the
// largest remaining UTxOs (ada-only first) until the selected lovelace reaches
// the required lovelace plus threshold. The result is nil when nothing is selected
func KeepRelevant(required Requirements, utxos []Utxo, threshold uint64) []Utxo {
	var ret []Utxo
	picked := make(map[Input]bool)
	pick := func(u Utxo) {
		picked[u.Input] = true
		ret = append(ret, u)
	}
	for _, unit := range required.Units() {
		if unit == asset.LovelaceUnit {
			continue
		}
		holders := make([]Utxo, 0)
		for _, u := range utxos {
			if u.Has(unit) {
				holders = append(holders, u)
			}
		}
		sortByQuantity(holders, unit)
		var have uint64
		for _, u := range ret {
			have += u.Quantity(unit)
		}
		for _, u := range holders {
			if have >= required[unit] {
				break
			}
			if picked[u.Input] {
				continue
			}
			pick(u)
			have += u.Quantity(unit)
		}
	}
	target := required[asset.LovelaceUnit] + threshold
	remaining := make([]Utxo, 0, len(utxos))
	for _, u := range utxos {
		if !picked[u.Input] {
			remaining = append(remaining, u)
		}
	}
	slices.SortStableFunc(remaining, func(a, b Utxo) int {
		aAdaOnly, bAdaOnly := isAdaOnly(a), isAdaOnly(b)
		if aAdaOnly != bAdaOnly {
			if aAdaOnly {
				return -1
			}
			return 1
		}
		return cmp.Compare(b.Lovelace(), a.Lovelace())
	})
	selected := TotalLovelace(ret)
	for _, u := range remaining {
		if selected >= target {
			break
		}
		pick(u)
		selected += u.Lovelace()
	}
	return ret
}

func (s *Selector) logSelection(ctx context.Context, strategy Strategy, utxos []Utxo) {
	if !s.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	inputs := make([]string, 0, len(utxos))
	for _, u := range utxos {
		inputs = append(inputs, u.String())
	}
	s.logger.DebugContext(
		ctx,
		"selected inputs",
		"component", "utxo",
		"strategy", strategy.String(),
		"inputs", inputs,
		"lovelace", TotalLovelace(utxos),
	)
}

func isAdaOnly(u Utxo) bool {
	for _, amount := range u.Output.Amount {
		if amount.Unit != asset.LovelaceUnit && amount.Quantity > 0 {
			return false
		}
	}
	return true
}

// sortByQuantity orders UTxOs by descending quantity of unit, keeping the
// wallet order for ties
func sortByQuantity(utxos []Utxo, unit string) {
	slices.SortStableFunc(utxos, func(a, b Utxo) int {
		return cmp.Compare(b.Quantity(unit), a.Quantity(unit))
	})
}
