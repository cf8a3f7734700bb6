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

package asset

import (
	"encoding/hex"
	"fmt"

	"github.com/blinklabs-io/gouroboros/ledger/common"
)

// LovelaceUnit is the unit name used for the base currency in asset lists
const LovelaceUnit = "lovelace"

// Unit is an asset unit: a hex policy ID followed by a hex asset name
type Unit string

// NewUnit builds a Unit from a hex policy ID and hex asset name
func NewUnit(policyIdHex string, assetNameHex string) Unit {
	return Unit(policyIdHex + assetNameHex)
}

func (u Unit) String() string {
	return string(u)
}

// IsLovelace reports whether the unit refers to the base currency
func (u Unit) IsLovelace() bool {
	return string(u) == LovelaceUnit
}

// PolicyId returns the policy ID portion of the unit. Units shorter than a
// policy ID are returned unchanged
func (u Unit) PolicyId() string {
	if len(u) < PolicyIdHexLength {
		return string(u)
	}
	return string(u[:PolicyIdHexLength])
}

// AssetNameHex returns the hex asset name portion of the unit
func (u Unit) AssetNameHex() string {
	if len(u) <= PolicyIdHexLength {
		return ""
	}
	return string(u[PolicyIdHexLength:])
}

// Split returns the policy ID and hex asset name of the unit
func (u Unit) Split() (string, string) {
	return u.PolicyId(), u.AssetNameHex()
}

// AssetName returns the decoded asset name
func (u Unit) AssetName() ([]byte, error) {
	return hex.DecodeString(u.AssetNameHex())
}

// Fingerprint returns the CIP-14 asset fingerprint for the unit
func (u Unit) Fingerprint() (string, error) {
	if u.IsLovelace() {
		return "", fmt.Errorf("no fingerprint for %s", LovelaceUnit)
	}
	policyId, err := hex.DecodeString(u.PolicyId())
	if err != nil {
		return "", fmt.Errorf("decode policy ID: %w", err)
	}
	if len(policyId) != PolicyIdSize {
		return "", fmt.Errorf("invalid policy ID length: %d", len(policyId))
	}
	assetName, err := u.AssetName()
	if err != nil {
		return "", fmt.Errorf("decode asset name: %w", err)
	}
	return common.NewAssetFingerprint(policyId, assetName).String(), nil
}
