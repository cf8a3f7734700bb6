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

package test_wallet

import (
	"context"
	"encoding/hex"
	"errors"
	"slices"
	"sync"

	"github.com/blinklabs-io/gouroboros/ledger/common"
	"github.com/blinklabs-io/velocity/tx"
	"github.com/blinklabs-io/velocity/utxo"
)

// Compile-time check that MockWallet implements the wallet contract
var _ tx.ConnectedWallet = (*MockWallet)(nil)

// MockWallet is an in-memory wallet for tests. Configure the exported fields
// to control behavior. Signing returns the transaction unchanged and
// submission returns the blake2b-256 hash of the transaction bytes unless
// overridden
type MockWallet struct {
	Utxos           []utxo.Utxo
	RewardAddresses []string
	Disconnected    bool
	// GetUtxosErr is returned from GetUtxos when set
	GetUtxosErr  error
	SignTxFunc   func(string) (string, error)
	SubmitTxFunc func(string) (string, error)

	mutex         sync.Mutex
	getUtxosCalls int
	signed        []string
	submitted     []string
}

func (w *MockWallet) Connected() bool {
	return !w.Disconnected
}

func (w *MockWallet) GetUtxos(ctx context.Context) ([]utxo.Utxo, error) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	w.getUtxosCalls++
	if w.GetUtxosErr != nil {
		return nil, w.GetUtxosErr
	}
	return slices.Clone(w.Utxos), nil
}

func (w *MockWallet) GetRewardAddresses(ctx context.Context) ([]string, error) {
	if len(w.RewardAddresses) == 0 {
		return nil, errors.New("wallet has no reward addresses")
	}
	return slices.Clone(w.RewardAddresses), nil
}

func (w *MockWallet) SignTx(ctx context.Context, unsignedTx string) (string, error) {
	w.mutex.Lock()
	w.signed = append(w.signed, unsignedTx)
	w.mutex.Unlock()
	if w.SignTxFunc != nil {
		return w.SignTxFunc(unsignedTx)
	}
	return unsignedTx, nil
}

func (w *MockWallet) SubmitTx(ctx context.Context, signedTx string) (string, error) {
	w.mutex.Lock()
	w.submitted = append(w.submitted, signedTx)
	w.mutex.Unlock()
	if w.SubmitTxFunc != nil {
		return w.SubmitTxFunc(signedTx)
	}
	txBytes, err := hex.DecodeString(signedTx)
	if err != nil {
		return "", err
	}
	return common.Blake2b256Hash(txBytes).String(), nil
}

// GetUtxosCalls returns the number of times the UTxO set was queried
func (w *MockWallet) GetUtxosCalls() int {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return w.getUtxosCalls
}

// Submitted returns the submitted transactions in order
func (w *MockWallet) Submitted() []string {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return slices.Clone(w.submitted)
}

func (w *MockWallet) Signed() []string {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	return slices.Clone(w.signed)
}
