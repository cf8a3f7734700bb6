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

// Package tx assembles campaign transactions: input selection, ADA and asset
// outputs, and action metadata. Signing and submission are delegated to an
// external wallet.
package tx

import (
	"context"

	"github.com/blinklabs-io/velocity/utxo"
)

// Wallet is the external wallet that owns the UTxOs and signs transactions
type Wallet interface {
	GetUtxos(ctx context.Context) ([]utxo.Utxo, error)
	// GetRewardAddresses returns the wallet's bech32 stake addresses
	GetRewardAddresses(ctx context.Context) ([]string, error)
	// SignTx returns the signed transaction for the hex-encoded unsigned transaction
	SignTx(ctx context.Context, unsignedTx string) (string, error)
	// SubmitTx submits a signed transaction and returns its hash
	SubmitTx(ctx context.Context, signedTx string) (string, error)
}

// ConnectedWallet is implemented by wallets that can report their connection state
type ConnectedWallet interface {
	Wallet
	Connected() bool
}

// IsConnected reports whether the wallet is usable. Wallets that do not
// report a connection state are considered connected
func IsConnected(w Wallet) bool {
	if w == nil {
		return false
	}
	if cw, ok := w.(ConnectedWallet); ok {
		return cw.Connected()
	}
	return true
}

// Builder accumulates a transaction before it is built into its unsigned form
type Builder interface {
	SetTxInputs(inputs []utxo.Utxo)
	SendLovelace(address string, lovelace uint64)
	SendAssets(address string, assets []utxo.Amount)
	SetMetadata(label uint64, value any)
	// Build returns the hex-encoded unsigned transaction
	Build(ctx context.Context) (string, error)
}
