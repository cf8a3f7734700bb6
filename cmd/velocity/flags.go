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

package main

import (
	"github.com/blinklabs-io/velocity/campaign"
	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to the config file",
		EnvVars: []string{"VELOCITY_CONFIG"},
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "enable debug logging",
	}
	campaignFlag = &cli.StringFlag{
		Name:  "campaign",
		Usage: "campaign key, defaults to the configured key for the command",
	}
	stakeKeyFlag = &cli.StringFlag{
		Name:  "stake-key",
		Usage: "bech32 reward address of the wallet",
	}
	includeItemsFlag = &cli.BoolFlag{
		Name:  "include-items",
		Usage: "include the wallet's items in the check result",
	}
	tagFlag = &cli.StringFlag{
		Name:  "tag",
		Usage: "campaign tag",
	}
	typeFlag = &cli.StringFlag{
		Name:  "type",
		Usage: "campaign type (craft, mint, upgrade, compile, recycler)",
		Value: campaign.TypeCraft,
	}
	planFlag = &cli.StringFlag{
		Name:  "plan",
		Usage: "plan ID",
	}
	inputsFlag = &cli.StringSliceFlag{
		Name:  "input",
		Usage: "input asset unit, may be repeated",
	}
	recycleFlag = &cli.StringSliceFlag{
		Name:  "recycle",
		Usage: "asset unit to recycle, may be repeated",
	}
	concurrentFlag = &cli.Uint64Flag{
		Name:  "concurrent",
		Usage: "number of concurrent actions",
	}
	tokenSplitFlag = &cli.Uint64Flag{
		Name:  "token-split",
		Usage: "token split",
	}
	limitFlag = &cli.IntFlag{
		Name:  "limit",
		Usage: "snapshot page size",
		Value: campaign.DefaultSnapshotLimit,
	}
	pageFlag = &cli.IntFlag{
		Name:  "page",
		Usage: "snapshot page",
		Value: campaign.DefaultSnapshotPage,
	}
	facetFlag = &cli.StringFlag{
		Name:  "facet",
		Usage: "snapshot facet",
	}
	filterFlag = &cli.StringFlag{
		Name:  "filter",
		Usage: "snapshot filter",
	}
	sortByFlag = &cli.StringFlag{
		Name:  "sort-by",
		Usage: "snapshot sort field",
	}
	sortOrderFlag = &cli.StringFlag{
		Name:  "sort-order",
		Usage: "snapshot sort order",
	}
	stateFlag = &cli.BoolFlag{
		Name:  "state",
		Usage: "fetch the snapshot state instead of a page",
	}
	idFlag = &cli.StringFlag{
		Name:     "id",
		Usage:    "item ID",
		Required: true,
	}
	snapshotItemFlag = &cli.BoolFlag{
		Name:  "snapshot",
		Usage: "fetch the item from the campaign snapshot",
	}
	categoryFlag = &cli.StringFlag{
		Name:     "category",
		Usage:    "pseudo-policy category (ocp, pd, ud, pc)",
		Required: true,
	}
	nameFlag = &cli.StringFlag{
		Name:  "name",
		Usage: "asset name",
	}
	unitsFlag = &cli.StringSliceFlag{
		Name:  "unit",
		Usage: "asset unit held by the output, may be repeated",
	}
	nativeTokenFlag = &cli.StringFlag{
		Name:  "native-token",
		Usage: "native token unit",
	}
	nativeAmountFlag = &cli.Uint64Flag{
		Name:  "native-amount",
		Usage: "native token amount",
	}
)
