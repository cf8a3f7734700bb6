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

import (
	"context"
	"fmt"

	"github.com/blinklabs-io/velocity/asset"
	"github.com/blinklabs-io/velocity/campaign"
	"github.com/blinklabs-io/velocity/tx"
	"github.com/google/uuid"
)

// Recycler trades assets back to the campaign
type Recycler struct {
	*base
}

func NewRecycler(opts ...OptionFunc) (*Recycler, error) {
	config := NewConfig(opts...)
	if err := config.validate(true); err != nil {
		return nil, err
	}
	return &Recycler{
		base: newBase(config, RecyclerStateMap),
	}, nil
}

// Check fetches the campaign config, the wallet status and the available
// boarding pass
func (r *Recycler) Check(ctx context.Context) error {
	return r.check(
		ctx,
		false,
		true,
		func(*campaign.CheckResult) Event { return EventReady },
	)
}

// Quote requests the price of recycling the input units. Recycle units are
// the off-chain assets given up in the trade
func (r *Recycler) Quote(ctx context.Context, inputUnits []string, recycleUnits []string) (*campaign.Quote, error) {
	if recycleUnits == nil {
		recycleUnits = []string{}
	}
	return r.quote(
		ctx,
		campaign.QuoteRequest{
			InputUnits:   inputUnits,
			RecycleUnits: recycleUnits,
			Type:         campaign.TypeRecycler,
		},
	)
}

// Recycle pays for a recycle and returns the transaction hash
func (r *Recycler) Recycle(ctx context.Context, inputs []SelectedInput, recycleUnits []string) (string, error) {
	if !tx.IsConnected(r.config.Wallet) {
		return "", ErrWalletNotConnected
	}
	logger := r.logger.With("action", tx.ActionRecycle, "action_id", uuid.NewString())
	return r.transition(EventRecycle, func() (string, error) {
		config := r.CampaignConfig()
		if config == nil {
			return "", ErrNoCampaignConfig
		}
		if err := validateInputs(config, inputs); err != nil {
			return "", err
		}
		quote, err := r.Quote(ctx, selectedUnits(inputs), recycleUnits)
		if err != nil {
			if campaign.IsUnprocessable(err) {
				return "", err
			}
			return "", fmt.Errorf("%w: %w", ErrQuoteNotFound, err)
		}
		logger.DebugContext(ctx, "received quote", "fee", quote.Fee, "price", quote.Price)
		nativeTokenAsset := config.NativeTokenAsset
		if nativeTokenAsset == "" {
			nativeTokenAsset = quote.CurrencyUnit()
		}
		builder := r.config.BuilderFunc()
		err = r.config.Assembler.SendAssets(
			ctx,
			r.config.Wallet,
			builder,
			tx.SendRequest{
				AdaAmount:         quote.Fee,
				NativeTokenAmount: quote.Price,
				NativeTokenAsset:  nativeTokenAsset,
				AssetUnits:        quote.AssetUnits(),
				Address:           config.WalletAddress,
				Strategy:          r.config.Strategy,
			},
		)
		if err != nil {
			return "", err
		}
		r.config.Assembler.SetActionMetadata(builder, tx.ActionMetadata{Type: tx.ActionRecycle})
		ix := tx.ActionMetadataLabel + 1
		for _, input := range inputs {
			ix = r.config.Assembler.SetAddressMetadata(builder, ix, input.Unit)
		}
		for _, unit := range recycleUnits {
			if asset.IsPolicyOffChain(unit) {
				ix = r.config.Assembler.SetAddressMetadata(builder, ix, unit)
			}
		}
		if bp := r.AvailableBoardingPass(); bp != "" {
			r.config.Assembler.SetAddressMetadata(builder, ix, bp)
		}
		return r.config.Assembler.SubmitTx(ctx, builder, r.config.Wallet)
	})
}
