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

package test

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/blinklabs-io/velocity/asset"
	"github.com/blinklabs-io/velocity/utxo"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// PaymentAddress returns a testnet enterprise address built from a key hash
// filled with the seed byte
func PaymentAddress(seed byte) string {
	addr, err := common.NewAddressFromParts(
		common.AddressTypeKeyNone,
		common.AddressNetworkTestnet,
		bytes.Repeat([]byte{seed}, common.Blake2b224Size),
		nil,
	)
	if err != nil {
		panic(fmt.Sprintf("error building payment address: %s", err))
	}
	return addr.String()
}

// StakeAddress returns a testnet stake address built from a key hash filled
// with the seed byte
func StakeAddress(seed byte) string {
	addr, err := common.NewAddressFromParts(
		common.AddressTypeNoneKey,
		common.AddressNetworkTestnet,
		nil,
		bytes.Repeat([]byte{seed}, common.Blake2b224Size),
	)
	if err != nil {
		panic(fmt.Sprintf("error building stake address: %s", err))
	}
	return addr.String()
}

// TxHash returns a transaction hash filled with the seed byte
func TxHash(seed byte) string {
	return hex.EncodeToString(bytes.Repeat([]byte{seed}, common.Blake2b256Size))
}

// Unit returns an asset unit with a policy ID filled with the seed byte and
// the given ASCII asset name
func Unit(seed byte, name string) string {
	return hex.EncodeToString(bytes.Repeat([]byte{seed}, asset.PolicyIdSize)) +
		asset.ToAssetName(name)
}

// NewUtxo returns a UTxO at the given output index holding the lovelace
// amount and one of each unit
func NewUtxo(txSeed byte, idx uint32, lovelace uint64, units ...string) utxo.Utxo {
	amounts := []utxo.Amount{
		{Unit: asset.LovelaceUnit, Quantity: lovelace},
	}
	for _, unit := range units {
		amounts = append(amounts, utxo.Amount{Unit: unit, Quantity: 1})
	}
	return utxo.Utxo{
		Input: utxo.Input{
			TxHash:      TxHash(txSeed),
			OutputIndex: idx,
		},
		Output: utxo.Output{
			Address: PaymentAddress(0x01),
			Amount:  amounts,
		},
	}
}
