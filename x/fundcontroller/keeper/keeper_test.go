package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/openalpha/yieldfund/testutil"
	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundcontroller/types"
	venuesimtypes "github.com/openalpha/yieldfund/x/venuesim/types"
)

func units(n int64) math.Int { return fundtypes.Units(n) }

// seedIdle gives the live controller idle capital without going through a manager.
func seedIdle(f *testutil.Fixture, amount math.Int) {
	f.Mint(f.Controller.Address().String(), amount)
}

func TestGenesisRegistersDefaultPools(t *testing.T) {
	f := testutil.Setup(t)

	pools := f.Controller.GetAllPools(f.Ctx)
	require.Len(t, pools, 7)
	for i, id := range []uint64{0, 1, 2, 3, 4, 5, 100} {
		require.Equal(t, id, pools[i].PoolID)
		require.True(t, pools[i].Enabled)
	}

	total, err := f.Controller.GetTotalBalance(f.Ctx)
	require.NoError(t, err)
	require.True(t, total.IsZero())
	require.Equal(t, fundtypes.StatusActive, f.Controller.Status(f.Ctx))
}

func TestRegisterPool(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Controller

	t.Run("same binding is a no-op", func(t *testing.T) {
		require.NoError(t, k.RegisterPool(f.Ctx, f.Owner, types.PoolIDCompound, types.VenueCompound, "ceth"))
		require.Len(t, k.GetAllPools(f.Ctx), 7)
	})

	t.Run("taken id cannot be rebound", func(t *testing.T) {
		require.NoError(t, f.App.VenueKeeper.CreateMarket(f.Ctx, venuesimtypes.Market{
			Venue: string(types.VenueCompound), Market: "cusdc", Denom: f.BaseDenom(),
		}))
		err := k.RegisterPool(f.Ctx, f.Owner, types.PoolIDCompound, types.VenueCompound, "cusdc")
		require.ErrorIs(t, err, types.ErrPoolIDTaken)
		pool, found := k.GetPool(f.Ctx, types.PoolIDCompound)
		require.True(t, found)
		require.Equal(t, "ceth", pool.Market)
	})

	t.Run("id must match venue", func(t *testing.T) {
		err := k.RegisterPool(f.Ctx, f.Owner, 7, types.VenueAave, "eth")
		require.ErrorIs(t, err, types.ErrInvalidPoolID)
	})

	t.Run("unknown market", func(t *testing.T) {
		err := k.AddFuseAsset(f.Ctx, f.Owner, 101, "fuse-6-eth")
		require.ErrorIs(t, err, types.ErrInvalidMarket)
	})

	t.Run("owner only", func(t *testing.T) {
		err := k.RegisterPool(f.Ctx, f.Alice, types.PoolIDCompound, types.VenueCompound, "ceth")
		require.ErrorIs(t, err, fundtypes.ErrUnauthorized)
		require.Equal(t, fundtypes.CategoryAuthorization, fundtypes.Categorize(err))
	})
}

func TestAddFuseAsset(t *testing.T) {
	f := testutil.Setup(t)
	require.NoError(t, f.App.VenueKeeper.CreateMarket(f.Ctx, venuesimtypes.Market{
		Venue: string(types.VenueFuse), Market: "fuse-6-eth", Denom: f.BaseDenom(),
	}))

	require.ErrorIs(t, f.Controller.AddFuseAsset(f.Ctx, f.Owner, 5, "fuse-6-eth"), types.ErrInvalidPoolID)
	require.NoError(t, f.Controller.AddFuseAsset(f.Ctx, f.Owner, 101, "fuse-6-eth"))

	seedIdle(f, units(3))
	require.NoError(t, f.Controller.DepositToPool(f.Ctx, f.Rebalancer, 101, units(3)))
	balance, err := f.Controller.GetPoolBalance(f.Ctx, 101)
	require.NoError(t, err)
	require.Equal(t, units(3), balance)
}

func TestDepositAndWithdrawDispatch(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Controller
	seedIdle(f, units(10))

	require.NoError(t, k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDCompound, units(10)))
	require.True(t, k.GetIdleBalance(f.Ctx).IsZero())
	balance, err := k.GetPoolBalance(f.Ctx, types.PoolIDCompound)
	require.NoError(t, err)
	require.Equal(t, units(10), balance)

	require.NoError(t, k.WithdrawFromPool(f.Ctx, f.Rebalancer, types.PoolIDCompound, units(4)))
	require.Equal(t, units(4), k.GetIdleBalance(f.Ctx))

	withdrawn, err := k.WithdrawAllFromPool(f.Ctx, f.Rebalancer, types.PoolIDCompound)
	require.NoError(t, err)
	require.True(t, withdrawn)
	require.Equal(t, units(10), k.GetIdleBalance(f.Ctx))

	withdrawn, err = k.WithdrawAllFromPool(f.Ctx, f.Rebalancer, types.PoolIDCompound)
	require.NoError(t, err)
	require.False(t, withdrawn)
}

func TestYieldShowsInPoolBalance(t *testing.T) {
	f := testutil.Setup(t)
	seedIdle(f, units(20))
	require.NoError(t, f.Controller.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDAave, units(20)))

	f.Accrue(string(types.VenueAave), "eth", units(1))

	total, err := f.Controller.GetTotalBalance(f.Ctx)
	require.NoError(t, err)
	require.Equal(t, units(21), total)
}

func TestDepositRequiresVenueApproval(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Controller
	seedIdle(f, units(5))

	err := k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDDydx, units(5))
	require.EqualError(t, err, "transfer amount exceeds allowance")
	require.Equal(t, fundtypes.CategoryAdapter, fundtypes.Categorize(err))
	require.Equal(t, units(5), k.GetIdleBalance(f.Ctx))

	require.NoError(t, k.ApprovePool(f.Ctx, f.Owner, types.PoolIDDydx, units(5)))
	require.Equal(t, units(5), k.GetApproval(f.Ctx, types.PoolIDDydx))
	require.NoError(t, k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDDydx, units(5)))

	balance, err := k.GetPoolBalance(f.Ctx, types.PoolIDDydx)
	require.NoError(t, err)
	require.Equal(t, units(5), balance)
}

func TestKeeperDaoDepositFeeAndShareApproval(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Controller
	seedIdle(f, units(100))

	require.NoError(t, k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDKeeperDAO, units(100)))
	balance, err := k.GetPoolBalance(f.Ctx, types.PoolIDKeeperDAO)
	require.NoError(t, err)
	require.Equal(t, fundtypes.MustUnits("99.36"), balance)

	_, err = k.WithdrawAllFromPool(f.Ctx, f.Rebalancer, types.PoolIDKeeperDAO)
	require.EqualError(t, err, "transfer amount exceeds allowance")

	require.NoError(t, k.ApprovePool(f.Ctx, f.Rebalancer, types.PoolIDKeeperDAO, units(1_000)))
	withdrawn, err := k.WithdrawAllFromPool(f.Ctx, f.Rebalancer, types.PoolIDKeeperDAO)
	require.NoError(t, err)
	require.True(t, withdrawn)
	require.Equal(t, fundtypes.MustUnits("99.36"), k.GetIdleBalance(f.Ctx))
}

func TestKeeperDaoFeeAboveDeclared(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Controller
	seedIdle(f, units(10))
	venue := string(types.VenueKeeperDAO)

	require.NoError(t, f.App.VenueKeeper.CreateMarket(f.Ctx, venuesimtypes.Market{
		Venue: venue, Market: "eth-hifee", Denom: f.BaseDenom(), DepositFeeBps: 100,
	}))
	err := k.RegisterPool(f.Ctx, f.Owner, types.PoolIDKeeperDAO, types.VenueKeeperDAO, "eth-hifee")
	require.ErrorIs(t, err, types.ErrInvalidMarket)

	require.NoError(t, f.App.VenueKeeper.SetFees(f.Ctx, venue, "eth", 100, 0))
	err = k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDKeeperDAO, units(10))
	require.ErrorIs(t, err, types.ErrInvalidMarket)
	require.Equal(t, fundtypes.CategoryAdapter, fundtypes.Categorize(err))
	require.Equal(t, units(10), k.GetIdleBalance(f.Ctx))

	// A cheaper pool is fine.
	require.NoError(t, f.App.VenueKeeper.SetFees(f.Ctx, venue, "eth", 10, 0))
	require.NoError(t, k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDKeeperDAO, units(10)))
	balance, err := k.GetPoolBalance(f.Ctx, types.PoolIDKeeperDAO)
	require.NoError(t, err)
	require.Equal(t, fundtypes.MustUnits("9.99"), balance)
}

func TestWithdrawBeyondPositionFails(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Controller
	pools := []uint64{
		types.PoolIDDydx, types.PoolIDCompound, types.PoolIDKeeperDAO, types.PoolIDAave,
		types.PoolIDAlpha, types.PoolIDEnzyme, types.FirstFusePoolID,
	}
	seedIdle(f, units(5*int64(len(pools))))
	require.NoError(t, k.ApprovePool(f.Ctx, f.Owner, types.PoolIDDydx, units(5)))
	require.NoError(t, k.ApprovePool(f.Ctx, f.Owner, types.PoolIDEnzyme, units(5)))
	for _, id := range pools {
		require.NoError(t, k.DepositToPool(f.Ctx, f.Rebalancer, id, units(5)), "pool %d", id)
	}
	require.NoError(t, k.ApprovePool(f.Ctx, f.Owner, types.PoolIDKeeperDAO, units(100)))

	for _, id := range pools {
		before, err := k.GetPoolBalance(f.Ctx, id)
		require.NoError(t, err)

		err = k.WithdrawFromPool(f.Ctx, f.Rebalancer, id, units(500))
		require.Error(t, err, "pool %d", id)
		require.Equal(t, fundtypes.CategoryAdapter, fundtypes.Categorize(err), "pool %d", id)

		after, err := k.GetPoolBalance(f.Ctx, id)
		require.NoError(t, err)
		require.Equal(t, before, after, "pool %d", id)
	}
	require.True(t, k.GetIdleBalance(f.Ctx).IsZero())

	for _, id := range []uint64{types.PoolIDKeeperDAO, types.PoolIDAlpha, types.PoolIDEnzyme} {
		err := k.WithdrawFromPool(f.Ctx, f.Rebalancer, id, units(6))
		require.ErrorIs(t, err, types.ErrWithdrawExceedsPool, "pool %d", id)
	}
}

func TestPoolMovementGuards(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Controller
	seedIdle(f, units(10))

	t.Run("rebalancer only", func(t *testing.T) {
		require.ErrorIs(t, k.DepositToPool(f.Ctx, f.Alice, types.PoolIDCompound, units(1)), fundtypes.ErrUnauthorized)
		require.ErrorIs(t, k.DepositToPool(f.Ctx, f.Owner, types.PoolIDCompound, units(1)), fundtypes.ErrUnauthorized)
	})

	t.Run("unregistered pool", func(t *testing.T) {
		err := k.DepositToPool(f.Ctx, f.Rebalancer, 42, units(1))
		require.ErrorIs(t, err, fundtypes.ErrPoolNotRegistered)
	})

	t.Run("insufficient idle", func(t *testing.T) {
		err := k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDCompound, units(11))
		require.ErrorIs(t, err, fundtypes.ErrInsufficientIdleBalance)
		require.Equal(t, fundtypes.CategoryInsufficientLiquidity, fundtypes.Categorize(err))
	})

	t.Run("zero amount", func(t *testing.T) {
		require.ErrorIs(t, k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDCompound, math.ZeroInt()), fundtypes.ErrInvalidAmount)
	})

	t.Run("disabled pool accepts withdrawals only", func(t *testing.T) {
		require.NoError(t, k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDAlpha, units(2)))
		require.NoError(t, k.SetPoolEnabled(f.Ctx, f.Owner, types.PoolIDAlpha, false))

		err := k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDAlpha, units(1))
		require.ErrorIs(t, err, types.ErrPoolDisabled)
		require.Equal(t, fundtypes.CategoryState, fundtypes.Categorize(err))
		require.NoError(t, k.WithdrawFromPool(f.Ctx, f.Rebalancer, types.PoolIDAlpha, units(2)))
	})

	t.Run("paused venue error is surfaced verbatim", func(t *testing.T) {
		require.NoError(t, f.App.VenueKeeper.SetPaused(f.Ctx, string(types.VenueCompound), "ceth", true))
		err := k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDCompound, units(1))
		require.EqualError(t, err, "market is paused")
		require.NoError(t, f.App.VenueKeeper.SetPaused(f.Ctx, string(types.VenueCompound), "ceth", false))
	})
}

func TestDisableBlocksMovements(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Controller
	seedIdle(f, units(10))

	require.ErrorIs(t, k.DisableFund(f.Ctx, f.Rebalancer), fundtypes.ErrUnauthorized)
	require.NoError(t, k.DisableFund(f.Ctx, f.Owner))
	require.Equal(t, fundtypes.StatusDisabled, k.Status(f.Ctx))

	err := k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDCompound, units(1))
	require.ErrorIs(t, err, fundtypes.ErrFundDisabled)
	require.Equal(t, fundtypes.CategoryState, fundtypes.Categorize(err))
	require.ErrorIs(t, k.DisableFund(f.Ctx, f.Owner), fundtypes.ErrFundDisabled)

	require.NoError(t, k.EnableFund(f.Ctx, f.Owner))
	require.NoError(t, k.EnableFund(f.Ctx, f.Owner))
	require.NoError(t, k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDCompound, units(1)))
}

func TestRoles(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Controller

	require.NoError(t, k.SetFundRebalancer(f.Ctx, f.Owner, f.Bob))
	require.Equal(t, f.Bob, k.GetState(f.Ctx).Rebalancer)

	require.ErrorIs(t, k.SetFundManager(f.Ctx, f.Owner, "not-an-address"), fundtypes.ErrInvalidAddress)

	require.NoError(t, k.TransferOwnership(f.Ctx, f.Owner, f.Carol))
	require.ErrorIs(t, k.SetFundRebalancer(f.Ctx, f.Owner, f.Alice), fundtypes.ErrUnauthorized)
	require.NoError(t, k.SetFundRebalancer(f.Ctx, f.Carol, f.Alice))
}

func TestWithdrawToManager(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Controller
	manager := f.Manager.Address().String()
	seedIdle(f, units(10))

	require.ErrorIs(t, k.WithdrawToManager(f.Ctx, f.Alice, f.Alice, units(1)), fundtypes.ErrUnauthorized)
	require.ErrorIs(t, k.WithdrawToManager(f.Ctx, manager, f.Alice, units(11)), fundtypes.ErrInsufficientIdleBalance)

	before := f.Balance(f.Alice)
	require.NoError(t, k.WithdrawToManager(f.Ctx, manager, f.Alice, units(3)))
	require.Equal(t, before.Add(units(3)), f.Balance(f.Alice))
	require.Equal(t, units(7), k.GetIdleBalance(f.Ctx))

	require.NoError(t, k.DisableFund(f.Ctx, f.Owner))
	require.NoError(t, k.WithdrawToManager(f.Ctx, manager, f.Alice, units(1)))
}

func TestAaveReferralCode(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Controller

	require.ErrorIs(t, k.SetAaveReferralCode(f.Ctx, f.Owner, 0x10000), fundtypes.ErrInvalidAmount)
	require.NoError(t, k.SetAaveReferralCode(f.Ctx, f.Owner, 77))
	require.Equal(t, uint32(77), k.GetState(f.Ctx).AaveReferralCode)

	seedIdle(f, units(1))
	require.NoError(t, k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDAave, units(1)))
	pool, found := k.GetPool(f.Ctx, types.PoolIDAave)
	require.True(t, found)
	require.Zero(t, pool.ReferralCode)
}

func TestSetEnzymeComptroller(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Controller
	require.NoError(t, f.App.VenueKeeper.CreateMarket(f.Ctx, venuesimtypes.Market{
		Venue: string(types.VenueEnzyme), Market: "comptroller-2", Denom: f.BaseDenom(), RequiresApproval: true,
	}))

	require.NoError(t, k.SetEnzymeComptroller(f.Ctx, f.Owner, "comptroller-2"))
	pool, _ := k.GetPool(f.Ctx, types.PoolIDEnzyme)
	require.Equal(t, "comptroller-2", pool.Market)

	seedIdle(f, units(2))
	require.NoError(t, k.ApprovePool(f.Ctx, f.Owner, types.PoolIDEnzyme, units(2)))
	require.NoError(t, k.DepositToPool(f.Ctx, f.Rebalancer, types.PoolIDEnzyme, units(2)))

	err := k.SetEnzymeComptroller(f.Ctx, f.Owner, "comptroller-1")
	require.ErrorIs(t, err, types.ErrPoolNotEmpty)
	pool, _ = k.GetPool(f.Ctx, types.PoolIDEnzyme)
	require.Equal(t, "comptroller-2", pool.Market)
}
