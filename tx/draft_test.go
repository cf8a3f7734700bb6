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

package tx_test

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/blinklabs-io/gouroboros/cbor"
	"github.com/blinklabs-io/velocity/asset"
	"github.com/blinklabs-io/velocity/internal/test"
	"github.com/blinklabs-io/velocity/tx"
	"github.com/blinklabs-io/velocity/utxo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

func decodeDraft(t *testing.T, txHex string) ([]cbor.RawMessage, map[uint64]any) {
	t.Helper()
	txBytes, err := hex.DecodeString(txHex)
	require.NoError(t, err)
	var parts []cbor.RawMessage
	_, err = cbor.Decode(txBytes, &parts)
	require.NoError(t, err)
	require.Len(t, parts, 4)
	var body map[uint64]any
	_, err = cbor.Decode(parts[0], &body)
	require.NoError(t, err)
	return parts, body
}

func TestDraftBuild(t *testing.T) {
	draft := tx.NewDraft()
	draft.SetTxInputs([]utxo.Utxo{
		test.NewUtxo(0x20, 3, 10_000_000),
	})
	draft.SendLovelace(campaignAddress, 5_000_000)
	draft.SendAssets(
		campaignAddress,
		[]utxo.Amount{
			{Unit: unitX, Quantity: 1},
			{Unit: unitY, Quantity: 2},
		},
	)
	draft.SetMetadata(0, tx.ActionMetadata{Type: tx.ActionMint, PlanId: "plan-a", Concurrent: 1}.Value())
	draft.SetMetadata(1, unitX[:asset.PolicyIdHexLength])
	txHex, err := draft.Build(context.Background())
	require.NoError(t, err)
	parts, body := decodeDraft(t, txHex)
	inputs, ok := body[0].([]any)
	require.True(t, ok)
	require.Len(t, inputs, 1)
	input := inputs[0].([]any)
	assert.Equal(t, test.DecodeHexString(test.TxHash(0x20)), input[0])
	assert.Equal(t, uint64(3), input[1])
	outputs, ok := body[1].([]any)
	require.True(t, ok)
	assert.Len(t, outputs, 2)
	assert.Equal(t, uint64(0), body[2])
	auxHash := blake2b.Sum256(parts[3])
	assert.Equal(t, auxHash[:], body[7])
	// Witness set is empty and the transaction is marked valid
	assert.Equal(t, []byte{0xa0}, []byte(parts[1]))
	assert.Equal(t, []byte{0xf5}, []byte(parts[2]))
}

func TestDraftBuildDeterministic(t *testing.T) {
	build := func() string {
		draft := tx.NewDraft()
		draft.SendAssets(campaignAddress, []utxo.Amount{{Unit: unitY, Quantity: 1}, {Unit: unitX, Quantity: 1}})
		draft.SetMetadata(2, "b")
		draft.SetMetadata(1, "a")
		draft.SetMetadata(0, map[string]any{"t": "recycle"})
		txHex, err := draft.Build(context.Background())
		require.NoError(t, err)
		return txHex
	}
	assert.Equal(t, build(), build())
}

func TestDraftNoMetadata(t *testing.T) {
	draft := tx.NewDraft()
	draft.SendLovelace(campaignAddress, 1_000_000)
	txHex, err := draft.Build(context.Background())
	require.NoError(t, err)
	parts, body := decodeDraft(t, txHex)
	_, ok := body[7]
	assert.False(t, ok)
	assert.Equal(t, []byte{0xf6}, []byte(parts[3]))
}

func TestDraftSendAssetsMinAda(t *testing.T) {
	draft := tx.NewDraft()
	draft.SendAssets(campaignAddress, []utxo.Amount{{Unit: unitX, Quantity: 1}})
	draft.SendAssets(
		campaignAddress,
		[]utxo.Amount{
			{Unit: unitX, Quantity: 1},
			{Unit: asset.LovelaceUnit, Quantity: 5_000_000},
		},
	)
	outputs := draft.Outputs()
	require.Len(t, outputs, 2)
	assert.Equal(t, utxo.MinAda(0, []string{unitX}, ""), outputs[0].Lovelace)
	assert.Equal(t, uint64(5_000_000), outputs[1].Lovelace)
	assert.Equal(t, []utxo.Amount{{Unit: unitX, Quantity: 1}}, outputs[1].Assets)
}

func TestDraftMetadataLimits(t *testing.T) {
	testDefs := []struct {
		name  string
		value any
		size  int
	}{
		{name: "text", value: strings.Repeat("a", 65), size: 65},
		{name: "bytes", value: make([]byte, 70), size: 70},
		{name: "nested text", value: map[string]any{"t": strings.Repeat("b", 100)}, size: 100},
		{name: "list", value: []string{"ok", strings.Repeat("c", 80)}, size: 80},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			draft := tx.NewDraft()
			draft.SetMetadata(5, testDef.value)
			_, err := draft.Build(context.Background())
			var tooLong tx.MetadataTooLongError
			require.ErrorAs(t, err, &tooLong)
			assert.Equal(t, uint64(5), tooLong.Label)
			assert.Equal(t, testDef.size, tooLong.Size)
		})
	}
	draft := tx.NewDraft()
	draft.SetMetadata(5, strings.Repeat("a", tx.MaxMetadataStringSize))
	_, err := draft.Build(context.Background())
	assert.NoError(t, err)
}

func TestDraftInvalidOutput(t *testing.T) {
	draft := tx.NewDraft()
	draft.SendLovelace("not-an-address", 1_000_000)
	_, err := draft.Build(context.Background())
	var invalid tx.InvalidOutputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "not-an-address", invalid.Address)
}

func TestDraftInvalidInput(t *testing.T) {
	draft := tx.NewDraft()
	draft.SetTxInputs([]utxo.Utxo{{Input: utxo.Input{TxHash: "zz"}}})
	_, err := draft.Build(context.Background())
	assert.Error(t, err)
}

func TestDraftCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := tx.NewDraft().Build(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
