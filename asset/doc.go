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

/*
Package asset handles asset units and the pseudo-policies used by campaigns.

Campaigns reference off-chain collections, pre-defined options, user-defined
content and pre-compiled images as if they were native assets. Each of these
is encoded into a 28-byte policy ID by embedding an ASCII tag
("ocp", "pd", "ud" or "pc") followed by the ID, padded with '0' characters.

	unit := asset.ToOffChainUnit("item-1", "collection-a")
	asset.IsPolicyOffChain(asset.Unit(unit).PolicyId()) // true

The package also carries the ADA/lovelace conversions and formatting helpers.
*/
package asset
