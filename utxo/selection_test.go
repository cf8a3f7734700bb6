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

package utxo_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/blinklabs-io/velocity/asset"
	"github.com/blinklabs-io/velocity/utxo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	unitX = testUnit(0xa, "01")
	unitY = testUnit(0xb, "02")
)

func newUtxo(idx uint32, lovelace uint64, units ...string) utxo.Utxo {
	amounts := []utxo.Amount{
		{Unit: asset.LovelaceUnit, Quantity: lovelace},
	}
	for _, unit := range units {
		amounts = append(amounts, utxo.Amount{Unit: unit, Quantity: 1})
	}
	return utxo.Utxo{
		Input: utxo.Input{
			TxHash:      "9e3a4c1c5d3e7f0b2a6b7c8d9e0f1a2b3c4d5e6f708192a3b4c5d6e7f8091a2b",
			OutputIndex: idx,
		},
		Output: utxo.Output{
			Address: "addr_test1vz...",
			Amount:  amounts,
		},
	}
}

func testWallet() []utxo.Utxo {
	return []utxo.Utxo{
		newUtxo(0, 2_000_000, unitX),
		newUtxo(1, 3_000_000),
		newUtxo(2, 1_500_000, unitY),
		newUtxo(3, 10_000_000),
		newUtxo(4, 1_000_000),
	}
}

func indexes(utxos []utxo.Utxo) []uint32 {
	ret := make([]uint32, 0, len(utxos))
	for _, u := range utxos {
		ret = append(ret, u.Input.OutputIndex)
	}
	return ret
}

type fakeSource struct {
	utxos []utxo.Utxo
	err   error
	calls int
}

func (f *fakeSource) GetUtxos(ctx context.Context) ([]utxo.Utxo, error) {
	f.calls++
	return f.utxos, f.err
}

func discardSelector() *utxo.Selector {
	return utxo.NewSelector(
		utxo.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func TestLargestFirst(t *testing.T) {
	testDefs := []struct {
		name            string
		lovelace        uint64
		includeTxFees   bool
		expectedIndexes []uint32
	}{
		{
			name:            "single largest covers",
			lovelace:        5_000_000,
			includeTxFees:   true,
			expectedIndexes: []uint32{3},
		},
		{
			name:            "fee margin needs a second input",
			lovelace:        9_500_000,
			includeTxFees:   true,
			expectedIndexes: []uint32{3, 1},
		},
		{
			name:            "exact without fee margin",
			lovelace:        10_000_000,
			expectedIndexes: []uint32{3},
		},
		{
			name:            "ada-only inputs cannot cover",
			lovelace:        14_000_000,
			includeTxFees:   true,
			expectedIndexes: []uint32{0, 1, 2, 3, 4},
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			selected := utxo.LargestFirst(testDef.lovelace, testWallet(), testDef.includeTxFees)
			assert.Equal(t, testDef.expectedIndexes, indexes(selected))
		})
	}
}

func TestKeepRelevant(t *testing.T) {
	selected := utxo.KeepRelevant(
		utxo.Requirements{unitX: 1},
		testWallet(),
		6_000_000,
	)
	assert.Equal(t, []uint32{0, 3}, indexes(selected))
	// Nothing required and no threshold
	assert.Nil(t, utxo.KeepRelevant(utxo.Requirements{}, testWallet(), 0))
	// Required asset missing, lovelace still topped up
	selected = utxo.KeepRelevant(
		utxo.Requirements{testUnit(0xc, "03"): 1},
		testWallet(),
		1_000_000,
	)
	assert.Equal(t, []uint32{3}, indexes(selected))
}

func TestSelectIsolatedAdaOnlyCoversTarget(t *testing.T) {
	for _, ada := range []float64{0.5, 1, 2.5, 5, 9, 12} {
		req := utxo.Request{Lovelace: asset.AdaToLovelace(ada)}
		selected := utxo.SelectIsolated(testWallet(), req)
		assert.GreaterOrEqual(t, utxo.TotalLovelace(selected), req.Lovelace, "ada=%v", ada)
	}
}

func TestSelectIsolatedAssets(t *testing.T) {
	selector := discardSelector()
	req := utxo.Request{
		Lovelace:   5_000_000,
		AssetUnits: []string{unitX},
	}
	selected := selector.SelectIsolated(testWallet(), req)
	assert.Equal(t, []uint32{0, 3}, indexes(selected))
	assert.True(t, utxo.Covers(selected, utxo.Requirements{unitX: 1}))
	assert.GreaterOrEqual(t, utxo.TotalLovelace(selected), req.Lovelace+req.MinAda())
	// Missing asset falls back to the full set
	req.AssetUnits = []string{testUnit(0xc, "03")}
	selected = selector.SelectIsolated(testWallet(), req)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4}, indexes(selected))
	// Nothing to move
	assert.Nil(t, selector.SelectIsolated(testWallet(), utxo.Request{}))
}

func TestSelectIsolatedNativeToken(t *testing.T) {
	wallet := append(testWallet(), utxo.Utxo{
		Input: utxo.Input{TxHash: "aa", OutputIndex: 9},
		Output: utxo.Output{
			Amount: []utxo.Amount{
				{Unit: asset.LovelaceUnit, Quantity: 1_200_000},
				{Unit: unitY, Quantity: 500},
			},
		},
	})
	req := utxo.Request{
		NativeTokenAmount: 300,
		NativeTokenAsset:  unitY,
	}
	selected := discardSelector().SelectIsolated(wallet, req)
	assert.True(t, utxo.Covers(selected, utxo.Requirements{unitY: 300}))
	assert.Equal(t, uint32(9), selected[0].Input.OutputIndex)
}

func TestSelectKitchenSink(t *testing.T) {
	wallet := testWallet()
	for _, req := range []utxo.Request{
		{},
		{Lovelace: 1},
		{Lovelace: 1_000_000_000, AssetUnits: []string{unitX, unitY}},
	} {
		source := &fakeSource{utxos: wallet}
		selected, err := discardSelector().Select(
			context.Background(),
			utxo.StrategyKitchenSink,
			source,
			req,
		)
		require.NoError(t, err)
		assert.Equal(t, wallet, selected)
	}
}

func TestSelectAdaOnlyIgnoresAssets(t *testing.T) {
	selected := utxo.SelectAdaOnly(
		testWallet(),
		utxo.Request{Lovelace: 2_000_000, AssetUnits: []string{unitX}},
	)
	assert.Equal(t, []uint32{3}, indexes(selected))
}

func TestSelectDefault(t *testing.T) {
	source := &fakeSource{utxos: testWallet()}
	selected, err := discardSelector().Select(
		context.Background(),
		utxo.StrategyDefault,
		source,
		utxo.Request{Lovelace: 5_000_000},
	)
	require.NoError(t, err)
	assert.Nil(t, selected)
	assert.Equal(t, 0, source.calls)
}

func TestSelectSourceError(t *testing.T) {
	errWallet := errors.New("wallet locked")
	source := &fakeSource{err: errWallet}
	for _, strategy := range []utxo.Strategy{
		utxo.StrategyIsolated,
		utxo.StrategyAdaOnly,
		utxo.StrategyKitchenSink,
	} {
		_, err := discardSelector().Select(context.Background(), strategy, source, utxo.Request{})
		assert.ErrorIs(t, err, errWallet)
	}
	_, err := discardSelector().Select(context.Background(), utxo.Strategy(0), source, utxo.Request{})
	assert.Error(t, err)
}

func TestStrategyText(t *testing.T) {
	for _, strategy := range []utxo.Strategy{
		utxo.StrategyIsolated,
		utxo.StrategyKitchenSink,
		utxo.StrategyAdaOnly,
		utxo.StrategyDefault,
	} {
		parsed, err := utxo.ParseStrategy(strategy.String())
		require.NoError(t, err)
		assert.Equal(t, strategy, parsed)
	}
	parsed, err := utxo.ParseStrategy("kitchen-sink")
	require.NoError(t, err)
	assert.Equal(t, utxo.StrategyKitchenSink, parsed)
	_, err = utxo.ParseStrategy("greedy")
	assert.Error(t, err)
	var cfg struct {
		Strategy utxo.Strategy `json:"strategy"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"strategy":"ada_only"}`), &cfg))
	assert.Equal(t, utxo.StrategyAdaOnly, cfg.Strategy)
	_, err = json.Marshal(utxo.Strategy(42))
	assert.Error(t, err)
}

func TestUtxoJSON(t *testing.T) {
	data := []byte(`{"input":{"txHash":"abcd","outputIndex":1},"output":{"address":"addr1","amount":[{"unit":"lovelace","quantity":"1500000"},{"unit":"` + unitX + `","quantity":"1"}]}}`)
	var u utxo.Utxo
	require.NoError(t, json.Unmarshal(data, &u))
	assert.Equal(t, uint64(1_500_000), u.Lovelace())
	assert.True(t, u.Has(unitX))
	assert.Equal(t, "abcd#1", u.String())
	assert.Equal(t, []string{unitX}, utxo.AssetUnits([]utxo.Utxo{u}))
}
