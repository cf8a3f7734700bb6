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

package utxo

import (
	"fmt"
	"strings"
)

// Strategy controls which UTxOs are chosen as transaction inputs
type Strategy uint8

const (
	StrategyIsolated Strategy = iota + 1
	StrategyKitchenSink
	StrategyAdaOnly
	StrategyDefault
)

var strategyNames = map[Strategy]string{
	StrategyIsolated:    "ISOLATED",
	StrategyKitchenSink: "KITCHEN_SINK",
	StrategyAdaOnly:     "ADA_ONLY",
	StrategyDefault:     "DEFAULT",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// Valid reports whether s is one of the known strategies
func (s Strategy) Valid() bool {
	_, ok := strategyNames[s]
	return ok
}

// ParseStrategy parses a strategy name. Matching is case-insensitive and
// accepts '-' in place of '_'
func ParseStrategy(name string) (Strategy, error) {
	normalized := strings.ReplaceAll(
		strings.ToUpper(strings.TrimSpace(name)),
		"-",
		"_",
	)
	for strategy, strategyName := range strategyNames {
		if strategyName == normalized {
			return strategy, nil
		}
	}
	return 0, fmt.Errorf("unknown selection strategy: %q", name)
}

func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown selection strategy: %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(data []byte) error {
	tmp, err := ParseStrategy(string(data))
	if err != nil {
		return err
	}
	*s = tmp
	return nil
}
