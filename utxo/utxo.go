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
	"fmt"
	"maps"
	"slices"

	"github.com/blinklabs-io/velocity/asset"
)

// Amount is a quantity of a single asset unit
type Amount struct {
	Unit     string `json:"unit"`
	Quantity uint64 `json:"quantity,string"`
}

// Input references the transaction output that a UTxO came from
type Input struct {
	TxHash      string `json:"txHash"`
	OutputIndex uint32 `json:"outputIndex"`
}

func (i Input) String() string {
	return fmt.Sprintf("%s#%d", i.TxHash, i.OutputIndex)
}

type Output struct {
	Address string   `json:"address"`
	Amount  []Amount `json:"amount"`
}

// Utxo is an unspent transaction output owned by the wallet
type Utxo struct {
	Input  Input  `json:"input"`
	Output Output `json:"output"`
}

func (u Utxo) String() string {
	return u.Input.String()
}

// Lovelace returns the base currency held by the UTxO
func (u Utxo) Lovelace() uint64 {
	return u.Quantity(asset.LovelaceUnit)
}

// Quantity returns the total quantity of the given unit held by the UTxO
func (u Utxo) Quantity(unit string) uint64 {
	var ret uint64
	for _, amount := range u.Output.Amount {
		if amount.Unit == unit {
			ret += amount.Quantity
		}
	}
	return ret
}

// Has reports whether the UTxO carries a non-zero quantity of the given unit
func (u Utxo) Has(unit string) bool {
	return u.Quantity(unit) > 0
}

// Requirements maps asset units (including lovelace) to required quantities
type Requirements map[string]uint64

// Units returns the required units in sorted order
func (r Requirements) Units() []string {
	return slices.Sorted(maps.Keys(r))
}

// TotalLovelace sums the base currency of the given UTxOs
func TotalLovelace(utxos []Utxo) uint64 {
	var ret uint64
	for _, u := range utxos {
		ret += u.Lovelace()
	}
	return ret
}

// AssetUnits returns every native asset unit carried by the given UTxOs, in
// order and including repeats
func AssetUnits(utxos []Utxo) []string {
	var ret []string
	for _, u := range utxos {
		for _, amount := range u.Output.Amount {
			if amount.Unit == asset.LovelaceUnit {
				continue
			}
			ret = append(ret, amount.Unit)
		}
	}
	return ret
}

// Covers reports whether the combined value of the UTxOs satisfies every requirement
func Covers(utxos []Utxo, required Requirements) bool {
	for unit, quantity := range required {
		var total uint64
		for _, u := range utxos {
			total += u.Quantity(unit)
		}
		if total < quantity {
			return false
		}
	}
	return true
}
