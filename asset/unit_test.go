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

package asset_test

import (
	"testing"

	"github.com/blinklabs-io/velocity/asset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitParts(t *testing.T) {
	unit := asset.NewUnit(
		"29a8fb8318718bd756124f0c144f56d4b4579dc5edf2dd42d669ac61",
		"6675726e697368613239686e",
	)
	policyId, assetName := unit.Split()
	assert.Equal(t, "29a8fb8318718bd756124f0c144f56d4b4579dc5edf2dd42d669ac61", policyId)
	assert.Equal(t, "6675726e697368613239686e", assetName)
	name, err := unit.AssetName()
	require.NoError(t, err)
	assert.Equal(t, "furnisha29hn", string(name))
	assert.False(t, unit.IsLovelace())
	assert.True(t, asset.Unit(asset.LovelaceUnit).IsLovelace())
	assert.Equal(t, "", asset.Unit("abcd").AssetNameHex())
	assert.Equal(t, "abcd", asset.Unit("abcd").PolicyId())
}

func TestUnitFingerprint(t *testing.T) {
	testDefs := []struct {
		unit                asset.Unit
		expectedFingerprint string
	}{
		{
			unit:                "29a8fb8318718bd756124f0c144f56d4b4579dc5edf2dd42d669ac616675726e697368613239686e",
			expectedFingerprint: "asset1jdu2xcrwlqsjqqjger6kj2szddz8dcpvcg4ksz",
		},
		{
			unit:                "eaf8042c1d8203b1c585822f54ec32c4c1bb4d3914603e2cca20bbd5426f7764757261436f6e63657074733638",
			expectedFingerprint: "asset1kp7hdhqc7chmyqvtqrsljfdrdt6jz8mg5culpe",
		},
	}
	for _, testDef := range testDefs {
		fp, err := testDef.unit.Fingerprint()
		require.NoError(t, err)
		assert.Equal(t, testDef.expectedFingerprint, fp)
	}
	_, err := asset.Unit(asset.LovelaceUnit).Fingerprint()
	assert.Error(t, err)
	_, err = asset.Unit("abcd").Fingerprint()
	assert.Error(t, err)
}

func TestAdaConversions(t *testing.T) {
	assert.Equal(t, uint64(5_000_000), asset.AdaToLovelace(5))
	assert.Equal(t, uint64(2_500_000), asset.AdaToLovelace(2.5))
	assert.Equal(t, uint64(300_000), asset.AdaToLovelace(0.1+0.2))
	assert.Equal(t, uint64(0), asset.AdaToLovelace(-1))
	assert.InDelta(t, 1.5, asset.LovelaceToAda(1_500_000), 0.000001)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "1,234.5", asset.FormatNumber(1234.5, 2))
	assert.Equal(t, "5 ₳", asset.ToAda(5_000_000, 0))
	assert.Equal(t, "1,500 ₳", asset.ToAda(1_500_000_000, 0))
	assert.Equal(t, "0", asset.ToAda(0, 0))
}

func TestValidateInitialValue(t *testing.T) {
	testDefs := []struct {
		input    any
		expected int
	}{
		{input: 7, expected: 7},
		{input: int64(-3), expected: -3},
		{input: "42", expected: 42},
		{input: " 12abc", expected: 12},
		{input: "abc", expected: 0},
		{input: 3.9, expected: 3},
		{input: nil, expected: 0},
		{input: []int{1}, expected: 0},
	}
	for _, testDef := range testDefs {
		assert.Equal(t, testDef.expected, asset.ValidateInitialValue(testDef.input), "%#v", testDef.input)
	}
}
