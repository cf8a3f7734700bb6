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
	"log/slog"
	"strings"

	"github.com/blinklabs-io/gouroboros/ledger/common"
)

const (
	// PolicyIdSize is the size in bytes of a policy ID
	PolicyIdSize = common.Blake2b224Size
	// PolicyIdHexLength is the length of a hex-encoded policy ID
	PolicyIdHexLength = PolicyIdSize * 2

	policyPadChar = "0"
)

// Category identifies one of the reserved pseudo-policies used by campaigns to
// reference things that don't live on-chain as real native assets
type Category string

const (
	CategoryOffChain    Category = "ocp"
	CategoryPreDefined  Category = "pd"
	CategoryUserDefined Category = "ud"
	CategoryPreCompiled Category = "pc"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) prefix() string {
	return string(c) + "://"
}

// EncodePolicy builds the pseudo-policy ID for the given category and ID. The
// template "<tag>://<id>//" is right-padded with ASCII '0' to the policy ID
// size and hex-encoded.
//
// NOTE: the ID length is not bounds-checked. A template that doesn't fit in the
// policy ID size produces a policy made up entirely of padding.
func EncodePolicy(category Category, id string) string {
	policy := category.prefix() + id + "//"
	fill := PolicyIdSize - len(policy)
	if fill < 0 {
		return hex.EncodeToString(
			[]byte(strings.Repeat(policyPadChar, PolicyIdSize)),
		)
	}
	return hex.EncodeToString(
		[]byte(policy + strings.Repeat(policyPadChar, fill)),
	)
}

// EncodeUnit returns the asset unit (policy ID + hex asset name) for the given
// category, ID and asset name
func EncodeUnit(category Category, id string, name string) string {
	return EncodePolicy(category, id) + ToAssetName(name)
}

// ToAssetName hex-encodes an asset name
func ToAssetName(name string) string {
	return hex.EncodeToString([]byte(name))
}

// Codec performs category checks on policy IDs, logging decode failures
type Codec struct {
	logger *slog.Logger
}

// NewCodec returns a Codec using the provided logger. A nil logger falls back to
// slog.Default()
func NewCodec(logger *slog.Logger) *Codec {
	if logger == nil {
		logger = slog.Default()
	}
	return &Codec{
		logger: logger,
	}
}

// IsCategory reports whether the hex-encoded policy (or full unit) decodes to a
// string starting with the category prefix. It is a prefix test only: the ID
// cannot be reliably recovered from the policy.
func (c *Codec) IsCategory(category Category, policyHex string) bool {
	if policyHex == "" {
		return false
	}
	decoded, err := hex.DecodeString(policyHex)
	if err != nil {
		c.logger.Error(
			"failed to decode policy",
			"category", category.String(),
			"policy", policyHex,
			"error", err,
		)
		return false
	}
	return strings.HasPrefix(string(decoded), category.prefix())
}

var defaultCodec = NewCodec(nil)

// IsCategory is a convenience wrapper around Codec.IsCategory using the default logger
func IsCategory(category Category, policyHex string) bool {
	return defaultCodec.IsCategory(category, policyHex)
}

func ToOffChainPolicy(collectionId string) string {
	return EncodePolicy(CategoryOffChain, collectionId)
}

func ToOffChainUnit(assetName string, collectionId string) string {
	return EncodeUnit(CategoryOffChain, collectionId, assetName)
}

func IsPolicyOffChain(policyId string) bool {
	return IsCategory(CategoryOffChain, policyId)
}

func ToPreDefinedPolicy(inputId string) string {
	return EncodePolicy(CategoryPreDefined, inputId)
}

func ToPreDefinedUnit(optionId string, inputId string) string {
	return EncodeUnit(CategoryPreDefined, inputId, optionId)
}

func IsPolicyPreDefined(policyId string) bool {
	return IsCategory(CategoryPreDefined, policyId)
}

func ToUserDefinedPolicy(inputId string) string {
	return EncodePolicy(CategoryUserDefined, inputId)
}

func ToUserDefinedUnit(optionId string, inputId string) string {
	return EncodeUnit(CategoryUserDefined, inputId, optionId)
}

func IsPolicyUserDefined(policyId string) bool {
	return IsCategory(CategoryUserDefined, policyId)
}

func ToPrecompileInputPolicy(campaignId string) string {
	return EncodePolicy(CategoryPreCompiled, campaignId)
}

func ToPrecompileInputUnit(campaignId string, imageId string) string {
	return EncodeUnit(CategoryPreCompiled, campaignId, imageId)
}

func IsPolicyPreCompiled(policyId string) bool {
	return IsCategory(CategoryPreCompiled, policyId)
}
