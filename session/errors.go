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

package session

import "errors"

var (
	ErrWalletNotConnected = errors.New("wallet not connected")
	ErrPlanNotFound       = errors.New("plan not found")
	ErrInputNotFound      = errors.New("input not found")
	ErrQuoteNotFound      = errors.New("quote not found")
	// ErrNoCampaignConfig is returned by actions attempted before a check
	// returned the campaign config
	ErrNoCampaignConfig = errors.New("campaign config not loaded")
	ErrNoRewardAddress  = errors.New("wallet has no reward address")
)
