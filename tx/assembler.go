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

package tx

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/blinklabs-io/velocity/asset"
	"github.com/blinklabs-io/velocity/utxo"
)

type AssemblerOptionFunc func(*Assembler)

// WithLogger specifies the logger used by the assembler and its selector
func WithLogger(logger *slog.Logger) AssemblerOptionFunc {
	return func(a *Assembler) {
		a.logger = logger
	}
}

// WithSelector specifies the UTxO selector
func WithSelector(selector *utxo.Selector) AssemblerOptionFunc {
	return func(a *Assembler) {
		a.selector = selector
	}
}

// Assembler populates a transaction builder with inputs, outputs and metadata
type Assembler struct {
	logger   *slog.Logger
	selector *utxo.Selector
}

func NewAssembler(opts ...AssemblerOptionFunc) *Assembler {
	a := &Assembler{}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.selector == nil {
		a.selector = utxo.NewSelector(utxo.WithLogger(a.logger))
	}
	return a
}

// SendRequest describes the value paid to a campaign wallet
type SendRequest struct {
	// AdaAmount is paid as a separate lovelace output when positive
	AdaAmount         float64
	NativeTokenAmount uint64
	// NativeTokenAsset defaults to lovelace, in which case the amount is
	// added to the ADA payment
	NativeTokenAsset string
	AssetUnits       []string
	Address          string
	// Strategy defaults to utxo.StrategyDefault
	Strategy utxo.Strategy
}

// SendAssets selects inputs according to the request's strategy and adds the
// ADA and asset outputs to the builder. For strategies other than DEFAULT, a
// selection whose lovelace cannot cover the ADA amount plus the min-UTxO value
// of the bundle (including the assets the selected inputs carry) is redone
// once with the ISOLATED strategy over the enlarged asset set
func (a *Assembler) SendAssets(
	ctx context.Context,
	w Wallet,
	b Builder,
	req SendRequest,
) error {
	strategy := req.Strategy
	if strategy == 0 {
		strategy = utxo.StrategyDefault
	}
	selReq := utxo.Request{
		Lovelace:          asset.AdaToLovelace(req.AdaAmount),
		NativeTokenAmount: req.NativeTokenAmount,
		NativeTokenAsset:  req.NativeTokenAsset,
		AssetUnits:        slices.Clone(req.AssetUnits),
	}
	if selReq.NativeTokenAmount > 0 &&
		(selReq.NativeTokenAsset == "" || asset.Unit(selReq.NativeTokenAsset).IsLovelace()) {
		selReq.Lovelace += selReq.NativeTokenAmount
		selReq.NativeTokenAmount = 0
		selReq.NativeTokenAsset = ""
	}
	inputs, err := a.selector.Select(ctx, strategy, w, selReq)
	if err != nil {
		return fmt.Errorf("select inputs: %w", err)
	}
	if strategy != utxo.StrategyDefault {
		bundle := append(slices.Clone(selReq.AssetUnits), utxo.AssetUnits(inputs)...)
		required := selReq.Lovelace + utxo.MinAda(
			selReq.NativeTokenAmount,
			bundle,
			selReq.NativeTokenAsset,
		)
		available := utxo.TotalLovelace(inputs)
		if available < required {
			a.logger.DebugContext(
				ctx,
				"selected inputs do not cover output min-UTxO, reselecting",
				"component", "tx",
				"strategy", strategy.String(),
				"available", available,
				"required", required,
			)
			enlarged := selReq
			enlarged.AssetUnits = bundle
			inputs, err = a.selector.Select(ctx, utxo.StrategyIsolated, w, enlarged)
			if err != nil {
				return fmt.Errorf("select inputs: %w", err)
			}
		}
		if len(inputs) > 0 {
			b.SetTxInputs(inputs)
		}
	}
	if selReq.Lovelace > 0 {
		a.logger.DebugContext(
			ctx,
			"send lovelace",
			"component", "tx",
			"address", req.Address,
			"lovelace", selReq.Lovelace,
		)
		b.SendLovelace(req.Address, selReq.Lovelace)
	}
	if selReq.HasAssets() {
		assets := make([]utxo.Amount, 0, len(selReq.AssetUnits)+1)
		for _, unit := range selReq.AssetUnits {
			assets = append(assets, utxo.Amount{Unit: unit, Quantity: 1})
		}
		if selReq.NativeTokenAmount > 0 {
			assets = append(
				assets,
				utxo.Amount{
					Unit:     selReq.NativeTokenAsset,
					Quantity: selReq.NativeTokenAmount,
				},
			)
		}
		a.logger.DebugContext(
			ctx,
			"send assets",
			"component", "tx",
			"address", req.Address,
			"assets", assets,
		)
		b.SendAssets(req.Address, assets)
	}
	return nil
}

// SubmitTx builds the transaction, has the wallet sign it and submits it,
// returning the transaction hash
func (a *Assembler) SubmitTx(ctx context.Context, b Builder, w Wallet) (string, error) {
	unsignedTx, err := b.Build(ctx)
	if err != nil {
		return "", fmt.Errorf("build transaction: %w", err)
	}
	a.logger.DebugContext(ctx, "built transaction", "component", "tx", "unsigned_tx", unsignedTx)
	signedTx, err := w.SignTx(ctx, unsignedTx)
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}
	hash, err := w.SubmitTx(ctx, signedTx)
	if err != nil {
		return "", fmt.Errorf("submit transaction: %w", err)
	}
	a.logger.InfoContext(ctx, "submitted transaction", "component", "tx", "hash", hash)
	return hash, nil
}
