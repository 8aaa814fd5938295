package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/openalpha/yieldfund/testutil"
	fundtypes "github.com/openalpha/yieldfund/types"
	fctypes "github.com/openalpha/yieldfund/x/fundcontroller/types"
	"github.com/openalpha/yieldfund/x/fundmanager/types"
)

func units(n int64) math.Int { return fundtypes.Units(n) }

// invest moves idle capital of the live controller into Compound.
func invest(f *testutil.Fixture, amount math.Int) {
	require.NoError(f.T, f.Controller.DepositToPool(f.Ctx, f.Rebalancer, fctypes.PoolIDCompound, amount))
}

func accrueCompound(f *testutil.Fixture, amount math.Int) {
	f.Accrue(string(fctypes.VenueCompound), "ceth", amount)
}

func TestDepositMintsAtSharePrice(t *testing.T) {
	f := testutil.Setup(t)

	shares := f.Deposit(f.Alice, units(10))
	require.Equal(t, units(10), shares)
	require.Equal(t, testutil.GenesisFunding.Sub(units(10)), f.Balance(f.Alice))
	require.Equal(t, units(10), f.Controller.GetIdleBalance(f.Ctx))

	invest(f, units(10))
	accrueCompound(f, units(1))
	require.Equal(t, units(11), f.FundBalance())

	shares = f.Deposit(f.Bob, units(11))
	require.Equal(t, units(10), shares)

	aliceBalance, err := f.Manager.BalanceOf(f.Ctx, f.Alice)
	require.NoError(t, err)
	require.Equal(t, units(11), aliceBalance)

	acc := f.Manager.GetAccounting(f.Ctx)
	require.Equal(t, units(21), acc.NetDeposits)
}

func TestDepositValidation(t *testing.T) {
	f := testutil.Setup(t)

	_, err := f.Manager.Deposit(f.Ctx, f.Alice, math.ZeroInt())
	require.ErrorIs(t, err, fundtypes.ErrInvalidAmount)

	_, err = f.Manager.Deposit(f.Ctx, "not-an-address", units(1))
	require.ErrorIs(t, err, fundtypes.ErrInvalidAddress)

	_, err = f.Manager.Deposit(f.Ctx, f.Alice, testutil.GenesisFunding.Add(math.OneInt()))
	require.Error(t, err)
	require.True(t, f.Shares(f.Alice).IsZero())
	require.True(t, f.App.ClaimTokenKeeper.TotalSupply(f.Ctx).IsZero())
	require.True(t, f.Manager.GetAccounting(f.Ctx).NetDeposits.IsZero())
}

func TestShareConservation(t *testing.T) {
	f := testutil.Setup(t)

	f.Deposit(f.Alice, units(10))
	invest(f, units(10))
	accrueCompound(f, units(1))
	f.Deposit(f.Bob, units(22))
	f.Deposit(f.Carol, units(3))

	aliceBefore, err := f.Manager.BalanceOf(f.Ctx, f.Alice)
	require.NoError(t, err)
	require.True(t, aliceBefore.GTE(units(11)))

	f.ApproveManager(f.Bob, units(100))
	_, err = f.Manager.Withdraw(f.Ctx, f.Bob, units(11))
	require.NoError(t, err)
	f.ApproveManager(f.Carol, units(100))
	_, err = f.Manager.Withdraw(f.Ctx, f.Carol, fundtypes.MustUnits("1.5"))
	require.NoError(t, err)

	holders := f.App.ClaimTokenKeeper.Holders(f.Ctx)
	sumShares := math.ZeroInt()
	sumValue := math.ZeroInt()
	for addr, shares := range holders {
		sumShares = sumShares.Add(shares)
		value, err := f.Manager.BalanceOf(f.Ctx, addr)
		require.NoError(t, err)
		sumValue = sumValue.Add(value)
	}
	require.Equal(t, f.App.ClaimTokenKeeper.TotalSupply(f.Ctx), sumShares)
	require.True(t, sumValue.LTE(f.FundBalance()))

	aliceAfter, err := f.Manager.BalanceOf(f.Ctx, f.Alice)
	require.NoError(t, err)
	require.True(t, aliceAfter.GTE(aliceBefore), "withdrawals by others must not dilute alice: %s < %s", aliceAfter, aliceBefore)
}

func TestAccountLimits(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Manager

	_, unlimited := k.GetAccountBalanceLimit(f.Ctx, f.Alice)
	require.True(t, unlimited)

	require.ErrorIs(t, k.SetDefaultAccountBalanceLimit(f.Ctx, f.Alice, units(5)), fundtypes.ErrUnauthorized)
	require.NoError(t, k.SetDefaultAccountBalanceLimit(f.Ctx, f.Owner, units(5)))

	f.Deposit(f.Alice, units(3))
	f.Deposit(f.Alice, units(2))

	_, err := k.Deposit(f.Ctx, f.Alice, math.OneInt())
	require.ErrorIs(t, err, fundtypes.ErrAccountLimitExceeded)
	require.Equal(t, fundtypes.CategoryLimitExceeded, fundtypes.Categorize(err))
	require.Equal(t, units(5), f.Shares(f.Alice))
	require.Equal(t, testutil.GenesisFunding.Sub(units(5)), f.Balance(f.Alice))

	t.Run("override raises the cap", func(t *testing.T) {
		require.NoError(t, k.SetIndividualAccountBalanceLimit(f.Ctx, f.Owner, f.Alice, units(10)))
		limit, unlimited := k.GetAccountBalanceLimit(f.Ctx, f.Alice)
		require.False(t, unlimited)
		require.Equal(t, units(10), limit)
		f.Deposit(f.Alice, units(5))
	})

	t.Run("zero override falls back to the default", func(t *testing.T) {
		require.NoError(t, k.SetIndividualAccountBalanceLimit(f.Ctx, f.Owner, f.Alice, math.ZeroInt()))
		limit, _ := k.GetAccountBalanceLimit(f.Ctx, f.Alice)
		require.Equal(t, units(5), limit)
		_, err := k.Deposit(f.Ctx, f.Alice, math.OneInt())
		require.ErrorIs(t, err, fundtypes.ErrAccountLimitExceeded)
	})

	t.Run("minus one blocks the account", func(t *testing.T) {
		require.NoError(t, k.SetIndividualAccountBalanceLimit(f.Ctx, f.Owner, f.Bob, math.NewInt(-1)))
		_, err := k.Deposit(f.Ctx, f.Bob, math.OneInt())
		require.ErrorIs(t, err, fundtypes.ErrAccountLimitExceeded)
	})

	t.Run("below minus one is rejected", func(t *testing.T) {
		err := k.SetIndividualAccountBalanceLimit(f.Ctx, f.Owner, f.Bob, math.NewInt(-2))
		require.ErrorIs(t, err, types.ErrInvalidLimit)
	})

	t.Run("zero default removes the cap", func(t *testing.T) {
		require.NoError(t, k.SetDefaultAccountBalanceLimit(f.Ctx, f.Owner, math.ZeroInt()))
		f.Deposit(f.Carol, units(500))
	})
}

func TestWithdraw(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Manager

	f.Deposit(f.Alice, units(10))
	invest(f, units(8))

	_, err := k.Withdraw(f.Ctx, f.Alice, units(1))
	require.ErrorIs(t, err, fundtypes.ErrInsufficientAllowance)

	f.ApproveManager(f.Alice, units(100))

	_, err = k.Withdraw(f.Ctx, f.Alice, units(5))
	require.ErrorIs(t, err, fundtypes.ErrInsufficientIdleBalance)
	require.Equal(t, fundtypes.CategoryInsufficientLiquidity, fundtypes.Categorize(err))
	require.Equal(t, units(10), f.Shares(f.Alice))
	require.Equal(t, units(10), k.GetAccounting(f.Ctx).NetDeposits)

	_, err = k.Withdraw(f.Ctx, f.Bob, units(1))
	require.ErrorIs(t, err, fundtypes.ErrInsufficientShares)

	burned, err := k.Withdraw(f.Ctx, f.Alice, units(2))
	require.NoError(t, err)
	require.Equal(t, units(2), burned)
	require.Equal(t, units(8), f.Shares(f.Alice))
	require.Equal(t, testutil.GenesisFunding.Sub(units(8)), f.Balance(f.Alice))
	require.True(t, f.Controller.GetIdleBalance(f.Ctx).IsZero())
	require.Equal(t, units(8), k.GetAccounting(f.Ctx).NetDeposits)
}

func TestWithdrawInterestDrivesNetDepositsNegative(t *testing.T) {
	f := testutil.Setup(t)
	f.Deposit(f.Alice, units(10))
	invest(f, units(10))
	accrueCompound(f, units(10))
	_, err := f.Controller.WithdrawAllFromPool(f.Ctx, f.Rebalancer, fctypes.PoolIDCompound)
	require.NoError(t, err)

	f.ApproveManager(f.Alice, units(100))
	_, err = f.Manager.Withdraw(f.Ctx, f.Alice, units(15))
	require.NoError(t, err)

	require.Equal(t, units(-5), f.Manager.GetAccounting(f.Ctx).NetDeposits)
	require.Equal(t, units(5), f.FundBalance())
	interest, err := f.Manager.GetInterestAccrued(f.Ctx)
	require.NoError(t, err)
	require.Equal(t, units(10), interest)
}

func TestDisabledManager(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Manager
	f.Deposit(f.Alice, units(4))
	f.ApproveManager(f.Alice, units(100))

	require.ErrorIs(t, k.DisableFund(f.Ctx, f.Alice), fundtypes.ErrUnauthorized)
	require.NoError(t, k.DisableFund(f.Ctx, f.Owner))
	require.ErrorIs(t, k.DisableFund(f.Ctx, f.Owner), fundtypes.ErrFundDisabled)

	_, err := k.Deposit(f.Ctx, f.Alice, units(1))
	require.ErrorIs(t, err, fundtypes.ErrFundDisabled)
	require.Equal(t, fundtypes.CategoryState, fundtypes.Categorize(err))
	_, err = k.Withdraw(f.Ctx, f.Alice, units(1))
	require.ErrorIs(t, err, fundtypes.ErrFundDisabled)

	balance, err := k.BalanceOf(f.Ctx, f.Alice)
	require.NoError(t, err)
	require.Equal(t, units(4), balance)
	require.Equal(t, units(4), f.FundBalance())

	require.NoError(t, k.EnableFund(f.Ctx, f.Owner))
	require.NoError(t, k.EnableFund(f.Ctx, f.Owner))
	_, err = k.Withdraw(f.Ctx, f.Alice, units(1))
	require.NoError(t, err)
}

func TestRoleSetters(t *testing.T) {
	f := testutil.Setup(t)
	k := f.Manager

	require.ErrorIs(t, k.SetFundRebalancer(f.Ctx, f.Rebalancer, f.Bob), fundtypes.ErrUnauthorized)
	require.NoError(t, k.SetFundRebalancer(f.Ctx, f.Owner, f.Bob))
	require.Equal(t, f.Bob, k.GetState(f.Ctx).Rebalancer)

	_, err := k.CheckpointInterest(f.Ctx, f.Bob)
	require.NoError(t, err)
	_, err = k.CheckpointInterest(f.Ctx, f.Rebalancer)
	require.ErrorIs(t, err, fundtypes.ErrUnauthorized)

	err = k.SetFundController(f.Ctx, f.Owner, f.Alice)
	require.ErrorIs(t, err, types.ErrUnknownController)

	require.NoError(t, k.TransferOwnership(f.Ctx, f.Owner, f.Carol))
	require.ErrorIs(t, k.DisableFund(f.Ctx, f.Owner), fundtypes.ErrUnauthorized)
	require.NoError(t, k.DisableFund(f.Ctx, f.Carol))
}
