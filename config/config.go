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

// Package config loads velocity settings from an optional config file and
// VELOCITY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/blinklabs-io/velocity/campaign"
	"github.com/blinklabs-io/velocity/utxo"
	"github.com/spf13/viper"
)

const EnvPrefix = "VELOCITY"

const (
	KeyApiUrl    = "api_url"
	KeyApiKey    = "api_key"
	KeyDebug     = "debug"
	KeyRateLimit = "rate_limit"
	KeyTimeout   = "timeout"
	KeyStrategy  = "strategy"

	campaignKeyPrefix = "campaign."
)

// Campaign session kinds with a configurable default campaign key
const (
	CampaignCraft    = "craft"
	CampaignMint     = "mint"
	CampaignRecycle  = "recycle"
	CampaignStake    = "stake"
	CampaignUpgrade  = "upgrade"
	CampaignCompile  = "compile"
	CampaignSnapshot = "snapshot"
)

var campaignKinds = []string{
	CampaignCraft,
	CampaignMint,
	CampaignRecycle,
	CampaignStake,
	CampaignUpgrade,
	CampaignCompile,
	CampaignSnapshot,
}

// envReplacer maps a key like `campaign.craft` to VELOCITY_CAMPAIGN_CRAFT
var envReplacer = strings.NewReplacer(".", "_", "-", "_")

type Config struct {
	ApiUrl    string
	ApiKey    string
	Campaigns map[string]string
	Debug     bool
	RateLimit int
	Timeout   time.Duration
	Strategy  utxo.Strategy
}

// Load reads the configuration. An empty file name skips the config file and
// uses the defaults and environment only
func Load(file string) (*Config, error) {
	return load(newViper(), file)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()
	v.SetDefault(KeyApiUrl, "")
	v.SetDefault(KeyApiKey, "")
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyRateLimit, 0)
	v.SetDefault(KeyTimeout, campaign.DefaultTimeout)
	v.SetDefault(KeyStrategy, utxo.StrategyIsolated.String())
	for _, kind := range campaignKinds {
		v.SetDefault(campaignKeyPrefix+kind, "")
	}
	return v
}

func load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	cfg := &Config{
		ApiUrl:    strings.TrimSpace(v.GetString(KeyApiUrl)),
		ApiKey:    v.GetString(KeyApiKey),
		Campaigns: make(map[string]string),
		Debug:     v.GetBool(KeyDebug),
		RateLimit: v.GetInt(KeyRateLimit),
		Timeout:   v.GetDuration(KeyTimeout),
	}
	for _, kind := range campaignKinds {
		if key := v.GetString(campaignKeyPrefix + kind); key != "" {
			cfg.Campaigns[kind] = key
		}
	}
	strategy, err := utxo.ParseStrategy(v.GetString(KeyStrategy))
	if err != nil {
		return nil, err
	}
	cfg.Strategy = strategy
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.RateLimit < 0 {
		return errors.New("rate limit must not be negative")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}

// CampaignKey returns the configured campaign key for a session kind
func (c *Config) CampaignKey(kind string) string {
	return c.Campaigns[kind]
}

// Logger builds a text logger writing to w, at debug level when enabled
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.Debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ClientOptions returns the campaign client options for this configuration
func (c *Config) ClientOptions(logger *slog.Logger) []campaign.ClientOptionFunc {
	opts := []campaign.ClientOptionFunc{
		campaign.WithBaseURL(c.ApiUrl),
		campaign.WithTimeout(c.Timeout),
	}
	if c.ApiKey != "" {
		opts = append(opts, campaign.WithApiKey(c.ApiKey))
	}
	if c.RateLimit > 0 {
		opts = append(opts, campaign.WithRateLimit(c.RateLimit))
	}
	if logger != nil {
		opts = append(opts, campaign.WithLogger(logger))
	}
	return opts
}
