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

package session_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/blinklabs-io/velocity/asset"
	"github.com/blinklabs-io/velocity/campaign"
	"github.com/blinklabs-io/velocity/internal/test"
	"github.com/blinklabs-io/velocity/session"
	"github.com/blinklabs-io/velocity/tx"
	"github.com/blinklabs-io/velocity/utxo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestRecycle(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(t)
	defer h.Close()
	h.server.SetQuote(http.StatusOK, &campaign.Quote{Fee: 4}, "")
	recycler, err := session.NewRecycler(h.options(session.WithStrategy(utxo.StrategyAdaOnly))...)
	require.NoError(t, err)
	require.NoError(t, recycler.Check(context.Background()))
	assert.Equal(t, session.StateReady, recycler.State())

	offChainUnit := asset.ToOffChainUnit("gem", "col-1")
	onChainUnit := test.Unit(0xee, "scrap")
	hash, err := recycler.Recycle(
		context.Background(),
		[]session.SelectedInput{session.NewSelectedInput(unitA)},
		[]string{offChainUnit, onChainUnit},
	)
	require.NoError(t, err)
	assert.Len(t, hash, 64)
	assert.Equal(t, session.StateRecyclePending, recycler.State())

	req := h.quoteRequest(t)
	assert.Equal(t, campaign.TypeRecycler, req["type"])
	assert.Equal(t, []any{unitA, boardingPass1}, req["inputUnits"])
	assert.Equal(t, []any{offChainUnit, onChainUnit}, req["recycleUnits"])

	draft := h.lastDraft(t)
	// ADA_ONLY picks the ada-only UTxO
	inputs := draft.Inputs()
	require.Len(t, inputs, 1)
	assert.Equal(t, uint32(0), inputs[0].Input.OutputIndex)
	assert.Equal(
		t,
		[]tx.DraftOutput{{Address: testWalletAddress, Lovelace: 4_000_000}},
		draft.Outputs(),
	)
	meta, ok := draft.Metadata(tx.ActionMetadataLabel)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"t": tx.ActionRecycle}, meta)
	// selected input, off-chain recycle unit, boarding pass
	assert.Equal(t, []uint64{0, 1, 2, 3, 4, 5, 6}, draft.MetadataLabels())
	policyId, ok := draft.Metadata(3)
	require.True(t, ok)
	assert.Equal(t, asset.Unit(offChainUnit).PolicyId(), policyId)
	assert.True(t, asset.IsPolicyOffChain(policyId.(string)))
}

func TestRecycleInputNotFound(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(t)
	defer h.Close()
	recycler, err := session.NewRecycler(h.options()...)
	require.NoError(t, err)
	require.NoError(t, recycler.Check(context.Background()))
	_, err = recycler.Recycle(
		context.Background(),
		[]session.SelectedInput{session.NewSelectedInput(test.Unit(0xdd, "shield"))},
		nil,
	)
	require.ErrorIs(t, err, session.ErrInputNotFound)
	assert.Equal(t, session.StateReady, recycler.State())
}

func TestRecyclerQuoteFallback(t *testing.T) {
	defer goleak.VerifyNone(t)
	h := newHarness(t)
	defer h.Close()
	recycler, err := session.NewRecycler(h.options()...)
	require.NoError(t, err)
	h.server.SetQuote(http.StatusOK, &campaign.Quote{Fee: 1, Price: 7}, "")
	_, err = recycler.Quote(context.Background(), []string{unitA}, nil)
	require.NoError(t, err)
	h.server.SetQuote(http.StatusBadGateway, nil, "")
	quote, err := recycler.Quote(context.Background(), []string{unitA}, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), quote.Price)
}
