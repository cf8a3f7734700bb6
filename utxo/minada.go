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
	"github.com/blinklabs-io/velocity/asset"
)

// Mary-era min-UTxO sizing constants
const (
	MinUtxoValue            = 1_000_000
	coinSize                = 2
	utxoEntrySizeWithoutVal = 27
	adaOnlyUtxoSize         = utxoEntrySizeWithoutVal + coinSize
	assetEntrySize          = 12
	valueBaseSize           = 6
)

// MinAda returns the minimum lovelace an output must carry to hold the given
// assets. The native token asset is included when nativeTokenAmount > 0. An
// output without native assets needs exactly MinUtxoValue.
//
// NOTE: asset name lengths only contribute when the name portion of a unit
// is longer than a policy ID (56 hex characters)
func MinAda(
	nativeTokenAmount uint64,
	assetUnits []string,
	nativeTokenAsset string,
) uint64 {
	assets := make([]string, 0, len(assetUnits)+1)
	assets = append(assets, assetUnits...)
	if nativeTokenAmount > 0 {
		assets = append(assets, nativeTokenAsset)
	}
	if len(assets) == 0 {
		return MinUtxoValue
	}
	policyIds := make(map[string]struct{})
	var sumAssetNameLengths uint64
	for _, unit := range assets {
		policyIds[asset.Unit(unit).PolicyId()] = struct{}{}
		nameLen := uint64(len(asset.Unit(unit).AssetNameHex()))
		if nameLen > asset.PolicyIdHexLength {
			sumAssetNameLengths += nameLen
		}
	}
	numPolicies := uint64(len(policyIds))
	policyIdSize := numPolicies * asset.PolicyIdSize
	size := valueBaseSize + roundupBytesToWords(
		uint64(len(assets))*assetEntrySize+
			sumAssetNameLengths+
			numPolicies*policyIdSize,
	)
	return max(
		MinUtxoValue,
		(MinUtxoValue/adaOnlyUtxoSize)*(utxoEntrySizeWithoutVal+size),
	)
}

func roundupBytesToWords(b uint64) uint64 {
	return (b + 7) / 8
}
