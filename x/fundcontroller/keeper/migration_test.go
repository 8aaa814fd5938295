package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openalpha/yieldfund/testutil"
	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundcontroller/types"
)

func TestUpgradeRequiresDisabled(t *testing.T) {
	f := testutil.Setup(t)
	next := f.NextController.Address().String()

	_, err := f.Controller.UpgradeFundController(f.Ctx, f.Owner, next)
	require.ErrorIs(t, err, fundtypes.ErrFundDisabled)

	require.NoError(t, f.Controller.DisableFund(f.Ctx, f.Owner))
	_, err = f.Controller.UpgradeFundController(f.Ctx, f.Rebalancer, next)
	require.ErrorIs(t, err, fundtypes.ErrUnauthorized)
	_, err = f.Controller.UpgradeFundController(f.Ctx, f.Owner, f.Controller.Address().String())
	require.ErrorIs(t, err, fundtypes.ErrInvalidAddress)
}

func TestUpgradeMovesEverything(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Controller
	seedIdle(f, units(65))

	require.NoError(t, k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDCompound, units(10)))
	require.NoError(t, k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDAave, units(20)))
	require.NoError(t, k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDKeeperDAO, units(30)))
	require.NoError(t, k.ApprovePool(f.Ctx, f.Owner, types.PoolIDKeeperDAO, units(100)))
	f.Accrue(string(types.VenueCompound), "ceth", units(1))

	before, err := k.GetTotalBalance(f.Ctx)
	require.NoError(t, err)

	require.NoError(t, k.DisableFund(f.Ctx, f.Owner))
	transferred, err := k.UpgradeFundController(f.Ctx, f.Owner, f.NextController.Address().String())
	require.NoError(t, err)
	require.Equal(t, before, transferred)

	require.Equal(t, transferred, f.NextController.GetIdleBalance(f.Ctx))
	after, err := k.GetTotalBalance(f.Ctx)
	require.NoError(t, err)
	require.True(t, after.IsZero())

	state := k.GetState(f.Ctx)
	require.Equal(t, fundtypes.StatusMigratedOut, state.Status)
	require.Equal(t, f.NextController.Address().String(), state.Successor)

	require.ErrorIs(t, k.EnableFund(f.Ctx, f.Owner), fundtypes.ErrMigratedOut)
	_, err = k.UpgradeFundController(f.Ctx, f.Owner, f.NextController.Address().String())
	require.ErrorIs(t, err, fundtypes.ErrMigratedOut)
	require.ErrorIs(t, k.WithdrawToManager(f.Ctx, f.Manager.Address().String(), f.Alice, units(1)), fundtypes.ErrMigratedOut)
}

func TestUpgradeMovesEveryVenue(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Controller
	pools := []uint64{
		types.PoolIDDydx, types.PoolIDCompound, types.PoolIDKeeperDAO, types.PoolIDAave,
		types.PoolIDAlpha, types.PoolIDEnzyme, types.FirstFusePoolID,
	}
	seedIdle(f, units(7*int64(len(pools))))
	require.NoError(t, k.ApprovePool(f.Ctx, f.Owner, types.PoolIDDydx, units(7)))
	require.NoError(t, k.ApprovePool(f.Ctx, f.Owner, types.PoolIDEnzyme, units(7)))
	for _, id := range pools {
		require.NoError(t, k.DepositToPool(f.Ctx, f.Rebalancer, id, units(7)), "pool %d", id)
	}
	require.NoError(t, k.ApprovePool(f.Ctx, f.Owner, types.PoolIDKeeperDAO, units(100)))

	f.Accrue(string(types.VenueCompound), "ceth", fundtypes.MustUnits("0.3"))
	f.Accrue(string(types.VenueAave), "eth", fundtypes.MustUnits("0.07"))
	f.Accrue(string(types.VenueKeeperDAO), "eth", fundtypes.MustUnits("0.011"))
	f.Accrue(string(types.VenueAlpha), "ibeth", fundtypes.MustUnits("1.5"))
	f.Accrue(string(types.VenueEnzyme), "comptroller-1", fundtypes.MustUnits("0.25"))
	f.Accrue(string(types.VenueFuse), "fuse-18-eth", fundtypes.MustUnits("0.003"))

	balances, err := k.GetPoolBalances(f.Ctx)
	require.NoError(t, err)
	require.Len(t, balances, len(pools))
	for _, pb := range balances {
		require.True(t, pb.Balance.IsPositive(), "pool %d", pb.Pool.PoolID)
	}
	before, err := k.GetTotalBalance(f.Ctx)
	require.NoError(t, err)

	require.NoError(t, k.DisableFund(f.Ctx, f.Owner))
	transferred, err := k.UpgradeFundController(f.Ctx, f.Owner, f.NextController.Address().String())
	require.NoError(t, err)
	require.Equal(t, before, transferred)
	require.Equal(t, transferred, f.NextController.GetIdleBalance(f.Ctx))

	for _, id := range pools {
		balance, err := k.GetPoolBalance(f.Ctx, id)
		require.NoError(t, err)
		require.True(t, balance.IsZero(), "pool %d", id)
	}
	require.True(t, k.GetIdleBalance(f.Ctx).IsZero())
}

func TestUpgradeAbortsOnExcessLoss(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Controller
	seedIdle(f, units(10))
	require.NoError(t, k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDCompound, units(10)))

	// An undeclared 1% exit fee is far above the dust allowance.
	require.NoError(t, f.App.VenueKeeper.SetFees(f.Ctx, string(types.VenueCompound), "ceth", 0, 100))

	require.NoError(t, k.DisableFund(f.Ctx, f.Owner))
	_, err := k.UpgradeFundController(f.Ctx, f.Owner, f.NextController.Address().String())
	require.ErrorIs(t, err, types.ErrMigrationLoss)

	require.Equal(t, fundtypes.StatusDisabled, k.Status(f.Ctx))
	balance, err := k.GetPoolBalance(f.Ctx, types.PoolIDCompound)
	require.NoError(t, err)
	require.Equal(t, units(10), balance)
	require.True(t, k.GetIdleBalance(f.Ctx).IsZero())
	require.True(t, f.NextController.GetIdleBalance(f.Ctx).IsZero())
}

func TestUpgradeAbortsOnAdapterFailure(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Controller
	seedIdle(f, units(10))
	require.NoError(t, k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDCompound, units(5)))
	require.NoError(t, k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDAlpha, units(5)))
	require.NoError(t, f.App.VenueKeeper.SetPaused(f.Ctx, string(types.VenueAlpha), "ibeth", true))

	require.NoError(t, k.DisableFund(f.Ctx, f.Owner))
	_, err := k.UpgradeFundController(f.Ctx, f.Owner, f.NextController.Address().String())
	require.EqualError(t, err, "market is paused")

	// The compound withdrawal that ran before the failure is rolled back.
	balance, err := k.GetPoolBalance(f.Ctx, types.PoolIDCompound)
	require.NoError(t, err)
	require.Equal(t, units(5), balance)
	require.True(t, k.GetIdleBalance(f.Ctx).IsZero())
}
