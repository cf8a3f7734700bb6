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
	"github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

const (
	stakeHrpMainnet = "stake"
	stakeHrpTestnet = "stake_test"
	// header byte plus the stake credential hash
	stakeAddressLength = 1 + common.Blake2b224Size
)

// ValidateStakeKey checks that stakeKey is a bech32 reward address
func ValidateStakeKey(stakeKey string) error {
	if stakeKey == "" {
		return InvalidStakeKeyError{StakeKey: stakeKey, Reason: "empty"}
	}
	hrp, data, err := bech32.DecodeNoLimit(stakeKey)
	if err != nil {
		return InvalidStakeKeyError{StakeKey: stakeKey, Reason: err.Error()}
	}
	if hrp != stakeHrpMainnet && hrp != stakeHrpTestnet {
		return InvalidStakeKeyError{StakeKey: stakeKey, Reason: "unexpected prefix " + hrp}
	}
	decoded, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return InvalidStakeKeyError{StakeKey: stakeKey, Reason: err.Error()}
	}
	if len(decoded) != stakeAddressLength {
		return InvalidStakeKeyError{StakeKey: stakeKey, Reason: "unexpected length"}
	}
	addrType := decoded[0] >> 4
	if addrType != common.AddressTypeNoneKey && addrType != common.AddressTypeNoneScript {
		return InvalidStakeKeyError{StakeKey: stakeKey, Reason: "not a reward address"}
	}
	return nil
}
