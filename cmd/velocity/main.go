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
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/blinklabs-io/velocity/campaign"
	"github.com/blinklabs-io/velocity/config"
	"github.com/urfave/cli/v2"
)

var Version = "devel"

var (
	cfg    *config.Config
	logger *slog.Logger
)

func main() {
	app := cli.NewApp()
	app.Name = "velocity"
	app.Version = Version
	app.Usage = "campaign API and asset encoding tool"
	app.Flags = []cli.Flag{configFlag, debugFlag}
	app.Commands = append(
		app.Commands,
		&checkCommand,
		&quoteCommand,
		&snapshotCommand,
		&itemCommand,
		&leaderboardCommand,
		&activityCommand,
		&encodeUnitCommand,
		&minAdaCommand,
	)
	app.Before = func(ctx *cli.Context) error {
		var err error
		cfg, err = config.Load(ctx.String(configFlag.Name))
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if ctx.Bool(debugFlag.Name) {
			cfg.Debug = true
		}
		logger = cfg.Logger(os.Stderr)
		slog.SetDefault(logger)
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func newClient() (*campaign.Client, error) {
	if cfg.ApiUrl == "" {
		return nil, errors.New("campaign API URL not configured, set VELOCITY_API_URL or api_url")
	}
	return campaign.NewClient(cfg.ClientOptions(logger)...)
}

// campaignKey returns the --campaign flag value, falling back to the
// configured key for kind
func campaignKey(ctx *cli.Context, kind string) (string, error) {
	if key := ctx.String(campaignFlag.Name); key != "" {
		return key, nil
	}
	if key := cfg.CampaignKey(kind); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("no campaign key given and none configured for %s", kind)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
