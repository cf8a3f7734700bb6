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
	"fmt"
	"strings"

	"github.com/blinklabs-io/velocity/asset"
	"github.com/blinklabs-io/velocity/campaign"
	"github.com/blinklabs-io/velocity/config"
	"github.com/blinklabs-io/velocity/utxo"
	"github.com/urfave/cli/v2"
)

var (
	checkCommand = cli.Command{
		Name:  "check",
		Usage: "Fetch a campaign config and the wallet status",
		Flags: []cli.Flag{
			campaignFlag,
			stakeKeyFlag,
			includeItemsFlag,
			tagFlag,
		},
		Action: check,
	}
	quoteCommand = cli.Command{
		Name:  "quote",
		Usage: "Request a quote for a campaign action",
		Flags: []cli.Flag{
			campaignFlag,
			typeFlag,
			planFlag,
			inputsFlag,
			recycleFlag,
			concurrentFlag,
			tokenSplitFlag,
			stakeKeyFlag,
		},
		Action: quote,
	}
	snapshotCommand = cli.Command{
		Name:  "snapshot",
		Usage: "Query a campaign snapshot",
		Flags: []cli.Flag{
			campaignFlag,
			limitFlag,
			pageFlag,
			facetFlag,
			filterFlag,
			sortByFlag,
			sortOrderFlag,
			stateFlag,
		},
		Action: snapshot,
	}
	itemCommand = cli.Command{
		Name:   "item",
		Usage:  "Fetch a campaign item",
		Flags:  []cli.Flag{campaignFlag, idFlag, snapshotItemFlag},
		Action: item,
	}
	leaderboardCommand = cli.Command{
		Name:   "leaderboard",
		Usage:  "Show the project leaderboard",
		Action: leaderboard,
	}
	activityCommand = cli.Command{
		Name:   "activity",
		Usage:  "Show project activity, optionally for a single wallet",
		Flags:  []cli.Flag{stakeKeyFlag},
		Action: activity,
	}
	encodeUnitCommand = cli.Command{
		Name:  "encode-unit",
		Usage: "Encode a pseudo-policy, or a unit when a name is given",
		Flags: []cli.Flag{categoryFlag, idFlag, nameFlag},
		Action: func(ctx *cli.Context) error {
			category, err := parseCategory(ctx.String(categoryFlag.Name))
			if err != nil {
				return err
			}
			id := ctx.String(idFlag.Name)
			if !ctx.IsSet(nameFlag.Name) {
				fmt.Println(asset.EncodePolicy(category, id))
				return nil
			}
			fmt.Println(asset.EncodeUnit(category, id, ctx.String(nameFlag.Name)))
			return nil
		},
	}
	minAdaCommand = cli.Command{
		Name:  "min-ada",
		Usage: "Compute the minimum ADA for an output holding the given assets",
		Flags: []cli.Flag{unitsFlag, nativeTokenFlag, nativeAmountFlag},
		Action: func(ctx *cli.Context) error {
			lovelace := utxo.MinAda(
				ctx.Uint64(nativeAmountFlag.Name),
				ctx.StringSlice(unitsFlag.Name),
				ctx.String(nativeTokenFlag.Name),
			)
			return printJSON(map[string]any{
				"lovelace": lovelace,
				"ada":      asset.ToAda(lovelace, 6),
			})
		},
	}
)

func check(ctx *cli.Context) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	key, err := campaignKey(ctx, config.CampaignCraft)
	if err != nil {
		return err
	}
	result, err := client.Check(
		ctx.Context,
		key,
		ctx.String(stakeKeyFlag.Name),
		campaign.CheckOptions{
			IncludeItems: ctx.Bool(includeItemsFlag.Name),
			Tag:          ctx.String(tagFlag.Name),
		},
	)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func quote(ctx *cli.Context) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	campaignType := ctx.String(typeFlag.Name)
	key, err := campaignKey(ctx, quoteCampaignKind(campaignType))
	if err != nil {
		return err
	}
	inputs := ctx.StringSlice(inputsFlag.Name)
	if inputs == nil {
		inputs = []string{}
	}
	result, err := client.Quote(
		ctx.Context,
		key,
		campaign.QuoteRequest{
			InputUnits:   inputs,
			RecycleUnits: ctx.StringSlice(recycleFlag.Name),
			PlanId:       ctx.String(planFlag.Name),
			Type:         campaignType,
			Concurrent:   ctx.Uint64(concurrentFlag.Name),
			TokenSplit:   ctx.Uint64(tokenSplitFlag.Name),
			StakeKey:     ctx.String(stakeKeyFlag.Name),
		},
	)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func snapshot(ctx *cli.Context) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	key, err := campaignKey(ctx, config.CampaignSnapshot)
	if err != nil {
		return err
	}
	if ctx.Bool(stateFlag.Name) {
		data, err := client.SnapshotState(ctx.Context, key)
		if err != nil {
			return err
		}
		return printJSON(data)
	}
	data, err := client.Snapshot(
		ctx.Context,
		key,
		campaign.SnapshotQuery{
			Limit:     ctx.Int(limitFlag.Name),
			Page:      ctx.Int(pageFlag.Name),
			Facet1:    ctx.String(facetFlag.Name),
			Filter1:   ctx.String(filterFlag.Name),
			SortBy:    ctx.String(sortByFlag.Name),
			SortOrder: ctx.String(sortOrderFlag.Name),
		},
	)
	if err != nil {
		return err
	}
	return printJSON(data)
}

func item(ctx *cli.Context) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	if ctx.Bool(snapshotItemFlag.Name) {
		key, err := campaignKey(ctx, config.CampaignSnapshot)
		if err != nil {
			return err
		}
		data, err := client.SnapshotItem(ctx.Context, key, ctx.String(idFlag.Name))
		if err != nil {
			return err
		}
		return printJSON(data)
	}
	key, err := campaignKey(ctx, config.CampaignCraft)
	if err != nil {
		return err
	}
	data, err := client.Item(ctx.Context, key, ctx.String(idFlag.Name))
	if err != nil {
		return err
	}
	return printJSON(data)
}

func leaderboard(ctx *cli.Context) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	data, err := client.Leaderboard(ctx.Context)
	if err != nil {
		return err
	}
	return printJSON(data)
}

func activity(ctx *cli.Context) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	data, err := client.Activity(ctx.Context, ctx.String(stakeKeyFlag.Name))
	if err != nil {
		return err
	}
	return printJSON(data)
}

func quoteCampaignKind(campaignType string) string {
	switch campaignType {
	case campaign.TypeMint:
		return config.CampaignMint
	case campaign.TypeUpgrade:
		return config.CampaignUpgrade
	case campaign.TypeCompile:
		return config.CampaignCompile
	case campaign.TypeRecycler:
		return config.CampaignRecycle
	default:
		return config.CampaignCraft
	}
}

func parseCategory(name string) (asset.Category, error) {
	category := asset.Category(strings.ToLower(strings.TrimSpace(name)))
	switch category {
	case asset.CategoryOffChain,
		asset.CategoryPreDefined,
		asset.CategoryUserDefined,
		asset.CategoryPreCompiled:
		return category, nil
	}
	return "", fmt.Errorf("unknown category: %q", name)
}
