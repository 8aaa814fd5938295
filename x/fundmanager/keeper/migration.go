package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundmanager/types"
)

// AuthorizeFundManagerDataSource lets the predecessor at dataSource push its
// ledger into this manager. Called on the new manager by its owner.
func (k *Keeper) AuthorizeFundManagerDataSource(ctx sdk.Context, caller, dataSource string) error {
	return k.setRole(ctx, caller, fundtypes.RoleDataSource, dataSource, func(s *types.ManagerState) {
		s.DataSource = dataSource
	})
}

// SetFundManagerData replaces the ledger. Only the authorized data source may call it.
func (k *Keeper) SetFundManagerData(ctx sdk.Context, caller string, accounting types.Accounting) error {
	state := k.GetState(ctx)
	if err := fundtypes.RequireRole(fundtypes.RoleDataSource, caller, state.DataSource); err != nil {
		return err
	}
	if err := state.Status.RequireNotMigrated(k.name); err != nil {
		return err
	}
	k.setAccounting(ctx, accounting.Normalize())

	k.emit(ctx, types.EventTypeDataImported, sdk.NewAttribute(types.AttributeKeyAddress, caller))
	k.logger.Info("Ledger imported", "source", caller, "net_deposits", accounting.NetDeposits.String())
	return nil
}

// UpgradeFundManager hands the ledger and the claim token minter role to
// newManager. The manager must be disabled first and is retired afterwards.
func (k *Keeper) UpgradeFundManager(ctx sdk.Context, caller, newManager string) error {
	state, err := k.requireOwner(ctx, caller)
	if err != nil {
		return err
	}
	if err := state.Status.RequireDisabled(k.name); err != nil {
		return err
	}
	if newManager == k.self() {
		return fundtypes.ErrInvalidAddress.Wrap("cannot upgrade to self")
	}
	if k.managers == nil {
		return types.ErrUnknownManager.Wrap(newManager)
	}
	successor, ok := k.managers.Manager(newManager)
	if !ok {
		return types.ErrUnknownManager.Wrap(newManager)
	}

	err = fundtypes.RunAtomic(ctx, func(ctx sdk.Context) error {
		s, err := k.checkpoint(ctx)
		if err != nil {
			return err
		}
		if err := successor.SetFundManagerData(ctx, k.self(), s.acc); err != nil {
			return err
		}
		if err := k.claimToken.AddMinter(ctx, k.self(), newManager); err != nil {
			return err
		}
		if err := k.claimToken.RenounceMinter(ctx, k.self()); err != nil {
			return err
		}

		state.Status = fundtypes.StatusMigratedOut
		state.Successor = newManager
		k.setState(ctx, state)
		return nil
	})
	if err != nil {
		return err
	}

	k.emit(ctx, types.EventTypeMigrated, sdk.NewAttribute(types.AttributeKeyAddress, newManager))
	k.logger.Info("Manager migrated", "successor", newManager)
	return nil
}
