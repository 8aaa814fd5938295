package keeper

import (
	"fmt"
	"strconv"

	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundcontroller/types"
)

func (k *Keeper) requireOwner(ctx sdk.Context, caller string) (types.ControllerState, error) {
	state := k.GetState(ctx)
	if err := fundtypes.RequireRole(fundtypes.RoleOwner, caller, state.Owner); err != nil {
		return state, err
	}
	if err := state.Status.RequireNotMigrated(k.name); err != nil {
		return state, err
	}
	return state, nil
}

func (k *Keeper) setRole(ctx sdk.Context, caller string, role fundtypes.Role, addr string, apply func(*types.ControllerState)) error {
	state, err := k.requireOwner(ctx, caller)
	if err != nil {
		return err
	}
	if _, err := fundtypes.ParseAddress(addr); err != nil {
		return err
	}
	apply(&state)
	k.setState(ctx, state)

	k.emit(ctx, types.EventTypeRoleChanged,
		sdk.NewAttribute(types.AttributeKeyRole, string(role)),
		sdk.NewAttribute(types.AttributeKeyAddress, addr),
	)
	k.logger.Info("Role changed", "role", role, "address", addr)
	return nil
}

// SetFundManager sets the only address allowed to draw idle capital
func (k *Keeper) SetFundManager(ctx sdk.Context, caller, fundManager string) error {
	return k.setRole(ctx, caller, fundtypes.RoleFundManager, fundManager, func(s *types.ControllerState) {
		s.FundManager = fundManager
	})
}

// SetFundRebalancer sets the address allowed to move capital between pools
func (k *Keeper) SetFundRebalancer(ctx sdk.Context, caller, rebalancer string) error {
	return k.setRole(ctx, caller, fundtypes.RoleRebalancer, rebalancer, func(s *types.ControllerState) {
		s.Rebalancer = rebalancer
	})
}

// TransferOwnership hands the owner role to newOwner
func (k *Keeper) TransferOwnership(ctx sdk.Context, caller, newOwner string) error {
	return k.setRole(ctx, caller, fundtypes.RoleOwner, newOwner, func(s *types.ControllerState) {
		s.Owner = newOwner
	})
}

// DisableFund stops every pool movement. It is the first step of an upgrade.
func (k *Keeper) DisableFund(ctx sdk.Context, caller string) error {
	state, err := k.requireOwner(ctx, caller)
	if err != nil {
		return err
	}
	if err := state.Status.RequireActive(k.name); err != nil {
		return err
	}
	return k.setStatus(ctx, state, fundtypes.StatusDisabled)
}

// EnableFund resumes pool movements. Enabling an active controller is a no-op.
func (k *Keeper) EnableFund(ctx sdk.Context, caller string) error {
	state, err := k.requireOwner(ctx, caller)
	if err != nil {
		return err
	}
	if state.Status.IsActive() {
		return nil
	}
	return k.setStatus(ctx, state, fundtypes.StatusActive)
}

func (k *Keeper) setStatus(ctx sdk.Context, state types.ControllerState, status fundtypes.Status) error {
	state.Status = status
	k.setState(ctx, state)

	k.emit(ctx, types.EventTypeStatusChanged, sdk.NewAttribute(types.AttributeKeyStatus, string(status)))
	k.logger.Warn("Controller status changed", "status", status)
	return nil
}

// RegisterPool binds poolID to a venue market. Re-registering the same
// binding is a no-op; an id is never rebound to something else.
func (k *Keeper) RegisterPool(ctx sdk.Context, caller string, poolID uint64, venue types.Venue, market string) error {
	if _, err := k.requireOwner(ctx, caller); err != nil {
		return err
	}
	return k.registerPool(ctx, poolID, venue, market)
}

func (k *Keeper) registerPool(ctx sdk.Context, poolID uint64, venue types.Venue, market string) error {
	if err := types.ValidatePoolID(venue, poolID); err != nil {
		return err
	}
	adapter, err := k.adapterFor(venue)
	if err != nil {
		return err
	}
	if err := adapter.ValidateMarket(ctx, market); err != nil {
		return err
	}

	entry := types.PoolEntry{PoolID: poolID, Venue: venue, Market: market, Enabled: true, RegisteredHeight: ctx.BlockHeight()}
	if existing, found := k.GetPool(ctx, poolID); found {
		if existing.SameBinding(entry) {
			return nil
		}
		return types.ErrPoolIDTaken.Wrapf("%s is already registered", existing)
	}
	maxPools := k.GetParams(ctx).MaxPools
	if uint32(len(k.GetAllPools(ctx))) >= maxPools {
		return types.ErrTooManyPools.Wrapf("max %d pools", maxPools)
	}
	k.setPool(ctx, entry)

	k.emit(ctx, types.EventTypePoolRegistered,
		sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(poolID, 10)),
		sdk.NewAttribute(types.AttributeKeyVenue, string(venue)),
		sdk.NewAttribute(types.AttributeKeyMarket, market),
	)
	k.logger.Info("Pool registered", "pool_id", poolID, "venue", venue, "market", market)
	return nil
}

// SetPoolEnabled toggles new deposits into a pool. Withdrawals stay allowed.
func (k *Keeper) SetPoolEnabled(ctx sdk.Context, caller string, poolID uint64, enabled bool) error {
	if _, err := k.requireOwner(ctx, caller); err != nil {
		return err
	}
	pool, found := k.GetPool(ctx, poolID)
	if !found {
		return fundtypes.ErrPoolNotRegistered.Wrapf("pool %d", poolID)
	}
	pool.Enabled = enabled
	k.setPool(ctx, pool)

	k.emit(ctx, types.EventTypePoolEnabled,
		sdk.NewAttribute(types.AttributeKeyPoolID, strconv.FormatUint(poolID, 10)),
		sdk.NewAttribute(types.AttributeKeyStatus, strconv.FormatBool(enabled)),
	)
	return nil
}

// SetAaveReferralCode sets the referral code passed on Aave deposits
func (k *Keeper) SetAaveReferralCode(ctx sdk.Context, caller string, code uint32) error {
	state, err := k.requireOwner(ctx, caller)
	if err != nil {
		return err
	}
	if code > 0xFFFF {
		return fundtypes.ErrInvalidAmount.Wrapf("referral code %d does not fit 16 bits", code)
	}
	state.AaveReferralCode = code
	k.setState(ctx, state)

	k.emit(ctx, types.EventTypeVenueConfigChanged,
		sdk.NewAttribute(types.AttributeKeyVenue, string(types.VenueAave)),
		sdk.NewAttribute("referral_code", fmt.Sprint(code)),
	)
	return nil
}

// SetEnzymeComptroller binds the Enzyme pool to a comptroller. An existing
// binding may only change while the pool holds nothing.
func (k *Keeper) SetEnzymeComptroller(ctx sdk.Context, caller, comptroller string) error {
	if _, err := k.requireOwner(ctx, caller); err != nil {
		return err
	}

	existing, found := k.GetPool(ctx, types.PoolIDEnzyme)
	if !found {
		return k.registerPool(ctx, types.PoolIDEnzyme, types.VenueEnzyme, comptroller)
	}
	if existing.Market == comptroller {
		return nil
	}

	adapter, err := k.adapterFor(types.VenueEnzyme)
	if err != nil {
		return err
	}
	if err := adapter.ValidateMarket(ctx, comptroller); err != nil {
		return err
	}
	balance, err := adapter.GetBalance(ctx, existing, k.Address())
	if err != nil {
		return err
	}
	if !balance.IsZero() {
		return types.ErrPoolNotEmpty.Wrapf("%s holds %s", existing, balance)
	}

	existing.Market = comptroller
	k.setPool(ctx, existing)

	k.emit(ctx, types.EventTypeVenueConfigChanged,
		sdk.NewAttribute(types.AttributeKeyVenue, string(types.VenueEnzyme)),
		sdk.NewAttribute(types.AttributeKeyMarket, comptroller),
	)
	k.logger.Info("Enzyme comptroller rebound", "comptroller", comptroller)
	return nil
}

// AddFuseAsset registers a Fuse market under an id of 100 or above
func (k *Keeper) AddFuseAsset(ctx sdk.Context, caller string, poolID uint64, market string) error {
	return k.RegisterPool(ctx, caller, poolID, types.VenueFuse, market)
}
