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
	"encoding/hex"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/blinklabs-io/gouroboros/cbor"
	"github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/blinklabs-io/velocity/asset"
	"github.com/blinklabs-io/velocity/utxo"
	fxcbor "github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// Transaction body map keys
const (
	bodyKeyInputs      = 0
	bodyKeyOutputs     = 1
	bodyKeyFee         = 2
	bodyKeyAuxDataHash = 7
)

// DraftOutput is a pending transaction output
type DraftOutput struct {
	Address  string
	Lovelace uint64
	Assets   []utxo.Amount
}

// Draft is a Builder producing an unbalanced, unsigned transaction. Fee and
// change are left for the wallet to fill in
type Draft struct {
	mutex    sync.Mutex
	inputs   []utxo.Utxo
	outputs  []DraftOutput
	metadata map[uint64]any
}

func NewDraft() *Draft {
	return &Draft{
		metadata: make(map[uint64]any),
	}
}

func (d *Draft) SetTxInputs(inputs []utxo.Utxo) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.inputs = slices.Clone(inputs)
}

func (d *Draft) SendLovelace(address string, lovelace uint64) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.outputs = append(
		d.outputs,
		DraftOutput{Address: address, Lovelace: lovelace},
	)
}

// SendAssets adds an output carrying the given assets. Lovelace amounts are
// added to the output's coin, which is raised to the output's min-UTxO value
// when lower
func (d *Draft) SendAssets(address string, assets []utxo.Amount) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	output := DraftOutput{Address: address}
	var units []string
	for _, amount := range assets {
		if asset.Unit(amount.Unit).IsLovelace() {
			output.Lovelace += amount.Quantity
			continue
		}
		output.Assets = append(output.Assets, amount)
		units = append(units, amount.Unit)
	}
	output.Lovelace = max(output.Lovelace, utxo.MinAda(0, units, ""))
	d.outputs = append(d.outputs, output)
}

func (d *Draft) SetMetadata(label uint64, value any) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.metadata[label] = value
}

// Inputs returns the explicitly selected inputs
func (d *Draft) Inputs() []utxo.Utxo {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return slices.Clone(d.inputs)
}

func (d *Draft) Outputs() []DraftOutput {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return slices.Clone(d.outputs)
}

// Metadata returns the value stored at the metadata label
func (d *Draft) Metadata(label uint64) (any, bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	ret, ok := d.metadata[label]
	return ret, ok
}

// MetadataLabels returns the used metadata labels in ascending order
func (d *Draft) MetadataLabels() []uint64 {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return slices.Sorted(maps.Keys(d.metadata))
}

// Build validates the draft and encodes it as a hex CBOR transaction
// [body, witnesses, valid, auxiliary data]
func (d *Draft) Build(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()
	for label, value := range d.metadata {
		if err := validateMetadatum(label, value, 0); err != nil {
			return "", err
		}
	}
	body := map[uint]any{
		bodyKeyFee: uint64(0),
	}
	inputs := make([]any, 0, len(d.inputs))
	for _, input := range d.inputs {
		txHash, err := hex.DecodeString(input.Input.TxHash)
		if err != nil {
			return "", fmt.Errorf("invalid input %s: %w", input.Input, err)
		}
		inputs = append(inputs, []any{txHash, input.Input.OutputIndex})
	}
	body[bodyKeyInputs] = inputs
	outputs := make([]any, 0, len(d.outputs))
	for _, output := range d.outputs {
		tmpOutput, err := encodeOutput(output)
		if err != nil {
			return "", err
		}
		outputs = append(outputs, tmpOutput)
	}
	body[bodyKeyOutputs] = outputs
	var auxData any
	if len(d.metadata) > 0 {
		auxCbor, err := encodeAuxData(d.metadata)
		if err != nil {
			return "", err
		}
		auxHash := blake2b.Sum256(auxCbor)
		body[bodyKeyAuxDataHash] = auxHash[:]
		auxData = cbor.RawMessage(auxCbor)
	}
	txCbor, err := cbor.Encode(
		[]any{
			body,
			map[uint]any{},
			true,
			auxData,
		},
	)
	if err != nil {
		return "", fmt.Errorf("encode transaction: %w", err)
	}
	return hex.EncodeToString(txCbor), nil
}

func encodeOutput(output DraftOutput) ([]any, error) {
	addr, err := common.NewAddress(output.Address)
	if err != nil {
		return nil, InvalidOutputError{Address: output.Address, Err: err}
	}
	if len(output.Assets) == 0 {
		return []any{&addr, output.Lovelace}, nil
	}
	multiAsset := make(map[fxcbor.ByteString]map[fxcbor.ByteString]uint64)
	for _, amount := range output.Assets {
		policyIdHex, assetNameHex := asset.Unit(amount.Unit).Split()
		policyId, err := hex.DecodeString(policyIdHex)
		if err != nil || len(policyId) != asset.PolicyIdSize {
			return nil, fmt.Errorf("invalid asset unit %q", amount.Unit)
		}
		assetName, err := hex.DecodeString(assetNameHex)
		if err != nil {
			return nil, fmt.Errorf("invalid asset unit %q: %w", amount.Unit, err)
		}
		policyKey := fxcbor.ByteString(policyId)
		if _, ok := multiAsset[policyKey]; !ok {
			multiAsset[policyKey] = make(map[fxcbor.ByteString]uint64)
		}
		multiAsset[policyKey][fxcbor.ByteString(assetName)] += amount.Quantity
	}
	return []any{
		&addr,
		[]any{output.Lovelace, multiAsset},
	}, nil
}

// encodeAuxData encodes the metadata map with the core deterministic encoding
// so the auxiliary data hash matches the bytes carried in the transaction
func encodeAuxData(metadata map[uint64]any) ([]byte, error) {
	em, err := fxcbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	ret, err := em.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	return ret, nil
}
