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
	"strconv"

	"github.com/blinklabs-io/velocity/asset"
)

const (
	// MaxMetadataStringSize is the ledger limit for metadata text and byte strings
	MaxMetadataStringSize = 64
	maxMetadataDepth      = 100

	// ActionMetadataLabel holds the action description
	ActionMetadataLabel uint64 = 0
)

// Action types written to the action metadata
const (
	ActionCraft   = "craft"
	ActionMint    = "mint"
	ActionUpgrade = "upgrade"
	ActionCompile = "compile"
	ActionRecycle = "recycle"
)

// ActionMetadata describes the campaign action performed by a transaction
type ActionMetadata struct {
	Type       string
	PlanId     string
	Concurrent uint64
	TokenSplit uint64
}

// Value returns the metadata map. Actions without a plan only carry their type
func (m ActionMetadata) Value() map[string]any {
	ret := map[string]any{
		"t": m.Type,
	}
	if m.PlanId == "" {
		return ret
	}
	ret["p"] = m.PlanId
	ret["c"] = m.Concurrent
	ret["s"] = strconv.FormatUint(m.TokenSplit, 10)
	return ret
}

// SetActionMetadata writes the action description at label 0
func (a *Assembler) SetActionMetadata(b Builder, m ActionMetadata) {
	b.SetMetadata(ActionMetadataLabel, m.Value())
}

// SetAddressMetadata writes an asset unit as two consecutive metadata entries,
// the policy ID followed by the asset name, starting at label ix. It returns
// the next free label. Units that are not longer than a policy ID are
// skipped with a warning and ix is returned unchanged
func (a *Assembler) SetAddressMetadata(b Builder, ix uint64, unit string) uint64 {
	if len(unit) <= asset.PolicyIdHexLength {
		a.logger.Warn(
			"skipping metadata for asset unit without asset name",
			"component", "tx",
			"label", ix,
			"unit", unit,
		)
		return ix
	}
	policyId, assetName := asset.Unit(unit).Split()
	b.SetMetadata(ix, policyId)
	a.logger.Debug("metadata policy", "component", "tx", "label", ix, "policy_id", policyId)
	ix++
	b.SetMetadata(ix, assetName)
	a.logger.Debug("metadata asset name", "component", "tx", "label", ix, "asset_name", assetName)
	ix++
	return ix
}

func validateMetadatum(label uint64, value any, depth int) error {
	if depth >= maxMetadataDepth {
		return MetadataDepthError{Label: label}
	}
	switch v := value.(type) {
	case string:
		if len(v) > MaxMetadataStringSize {
			return MetadataTooLongError{Label: label, Kind: "text", Size: len(v)}
		}
	case []byte:
		if len(v) > MaxMetadataStringSize {
			return MetadataTooLongError{Label: label, Kind: "byte string", Size: len(v)}
		}
	case []string:
		for _, item := range v {
			if err := validateMetadatum(label, item, depth+1); err != nil {
				return err
			}
		}
	case []any:
		for _, item := range v {
			if err := validateMetadatum(label, item, depth+1); err != nil {
				return err
			}
		}
	case map[string]any:
		for key, item := range v {
			if err := validateMetadatum(label, key, depth+1); err != nil {
				return err
			}
			if err := validateMetadatum(label, item, depth+1); err != nil {
				return err
			}
		}
	case map[string]string:
		for key, item := range v {
			if err := validateMetadatum(label, key, depth+1); err != nil {
				return err
			}
			if err := validateMetadatum(label, item, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
