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
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	LovelaceMultiplier = 1_000_000
	AdaSymbol          = "₳"
)

// AdaToLovelace converts an ADA amount to lovelace, rounding to the nearest
// lovelace. Negative and NaN amounts yield 0
func AdaToLovelace(ada float64) uint64 {
	if math.IsNaN(ada) || ada <= 0 {
		return 0
	}
	return uint64(math.Round(ada * LovelaceMultiplier))
}

// LovelaceToAda converts lovelace to ADA
func LovelaceToAda(lovelace uint64) float64 {
	return float64(lovelace) / LovelaceMultiplier
}

var numberPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatNumber formats a number with en-US digit grouping and at most
// maxFractionDigits fraction digits
func FormatNumber(input float64, maxFractionDigits int) string {
	return numberPrinter.Sprint(
		number.Decimal(
			input,
			number.MaxFractionDigits(maxFractionDigits),
		),
	)
}

// ToAda formats a lovelace amount as ADA, e.g. "1,500 ₳"
func ToAda(lovelace uint64, maxFractionDigits int) string {
	if lovelace == 0 {
		return "0"
	}
	return FormatNumber(LovelaceToAda(lovelace), maxFractionDigits) + " " + AdaSymbol
}

// ValidateInitialValue coerces an arbitrary value to an int. Integers pass
// through, strings are parsed from their leading base-10 digits and anything
// else yields 0
func ValidateInitialValue(initialValue any) int {
	switch v := initialValue.(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint:
		return int(v)
	case uint32:
		return int(v)
	case uint64:
		return int(v)
	case float32:
		return floatToInt(float64(v))
	case float64:
		return floatToInt(v)
	case string:
		return parseLeadingInt(v)
	}
	return 0
}

func floatToInt(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(v)
}

func parseLeadingInt(s string) int {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	ret, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return ret
}
