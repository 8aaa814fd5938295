package keeper

import (
	"strconv"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundmanager/types"
)

// SetInterestFeeRate changes the fee taken on future interest. Fees already
// generated at the old rate are locked in first.
func (k *Keeper) SetInterestFeeRate(ctx sdk.Context, caller string, rateBps uint64) error {
	state, err := k.requireOwner(ctx, caller)
	if err != nil {
		return err
	}
	if rateBps > fundtypes.BpsDenominator {
		return types.ErrInvalidFeeRate.Wrapf("got %d", rateBps)
	}
	if rateBps == state.InterestFeeRateBps {
		return nil
	}

	err = fundtypes.RunAtomic(ctx, func(ctx sdk.Context) error {
		s, err := k.checkpoint(ctx)
		if err != nil {
			return err
		}
		s.acc.FeesGeneratedAtRateChange = s.feesGenerated
		s.acc.RawInterestAtRateChange = s.highWater
		k.setAccounting(ctx, s.acc)

		state.InterestFeeRateBps = rateBps
		k.setState(ctx, state)
		return nil
	})
	if err != nil {
		return err
	}

	k.emit(ctx, types.EventTypeFeeRateChanged, sdk.NewAttribute(types.AttributeKeyRateBps, strconv.FormatUint(rateBps, 10)))
	k.logger.Info("Interest fee rate changed", "rate_bps", rateBps)
	return nil
}

// SetInterestFeeMasterBeneficiary sets who receives claimed fees
func (k *Keeper) SetInterestFeeMasterBeneficiary(ctx sdk.Context, caller, beneficiary string) error {
	return k.setRole(ctx, caller, "fee beneficiary", beneficiary, func(s *types.ManagerState) {
		s.FeeMasterBeneficiary = beneficiary
	})
}

func (k *Keeper) requireBeneficiary(state types.ManagerState) error {
	if state.FeeMasterBeneficiary == "" {
		return types.ErrNoBeneficiary
	}
	return nil
}

// DepositFees reinvests unclaimed fees: the beneficiary receives claim tokens
// priced before the fees are marked claimed, so other holders keep their value.
func (k *Keeper) DepositFees(ctx sdk.Context, caller string) (fees, shares math.Int, err error) {
	state, err := k.requireOwner(ctx, caller)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.requireBeneficiary(state); err != nil {
		return math.Int{}, math.Int{}, err
	}

	err = fundtypes.RunAtomic(ctx, func(ctx sdk.Context) error {
		s, err := k.checkpoint(ctx)
		if err != nil {
			return err
		}
		fees = s.feesUnclaimed()
		if fees.IsZero() {
			shares = math.ZeroInt()
			return nil
		}

		supply := k.claimToken.TotalSupply(ctx)
		shares = fees
		if supply.IsPositive() && s.fundBalance.IsPositive() {
			// Priced like any deposit: the remainder stays with the fund.
			shares = fundtypes.MulDivFloor(fees, supply, s.fundBalance)
		}

		s.acc.FeesClaimed = s.acc.FeesClaimed.Add(fees)
		s.acc.NetDeposits = s.acc.NetDeposits.Add(fees)
		k.setAccounting(ctx, s.acc)

		return k.claimToken.Mint(ctx, k.self(), state.FeeMasterBeneficiary, shares)
	})
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if fees.IsZero() {
		return fees, shares, nil
	}

	k.emit(ctx, types.EventTypeFeesDeposited,
		sdk.NewAttribute(types.AttributeKeyAccount, state.FeeMasterBeneficiary),
		sdk.NewAttribute(types.AttributeKeyAmount, fees.String()),
		sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
	)
	k.logger.Info("Fees deposited", "beneficiary", state.FeeMasterBeneficiary, "fees", fees.String(), "shares", shares.String())
	return fees, shares, nil
}

// WithdrawFees pays unclaimed fees to the beneficiary from idle capital
func (k *Keeper) WithdrawFees(ctx sdk.Context, caller string) (math.Int, error) {
	state, err := k.requireOwner(ctx, caller)
	if err != nil {
		return math.Int{}, err
	}
	if err := k.requireBeneficiary(state); err != nil {
		return math.Int{}, err
	}
	controller, err := k.Controller(ctx)
	if err != nil {
		return math.Int{}, err
	}

	var fees math.Int
	err = fundtypes.RunAtomic(ctx, func(ctx sdk.Context) error {
		s, err := k.checkpoint(ctx)
		if err != nil {
			return err
		}
		fees = s.feesUnclaimed()
		if fees.IsZero() {
			return nil
		}

		s.acc.FeesClaimed = s.acc.FeesClaimed.Add(fees)
		k.setAccounting(ctx, s.acc)

		return controller.WithdrawToManager(ctx, k.self(), state.FeeMasterBeneficiary, fees)
	})
	if err != nil {
		return math.Int{}, err
	}
	if fees.IsZero() {
		return fees, nil
	}

	k.emit(ctx, types.EventTypeFeesWithdrawn,
		sdk.NewAttribute(types.AttributeKeyAccount, state.FeeMasterBeneficiary),
		sdk.NewAttribute(types.AttributeKeyAmount, fees.String()),
	)
	k.logger.Info("Fees withdrawn", "beneficiary", state.FeeMasterBeneficiary, "fees", fees.String())
	return fees, nil
}
