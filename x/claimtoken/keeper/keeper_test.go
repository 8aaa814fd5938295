package keeper_test

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	"github.com/stretchr/testify/require"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/claimtoken/keeper"
	"github.com/openalpha/yieldfund/x/claimtoken/types"
)

var (
	manager   = authtypes.NewModuleAddress("manager").String()
	managerV2 = authtypes.NewModuleAddress("managerV2").String()
	alice     = authtypes.NewModuleAddress("alice").String()
	bob       = authtypes.NewModuleAddress("bob").String()
)

func setupClaimToken(t *testing.T) (*keeper.Keeper, sdk.Context) {
	t.Helper()

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
	k := keeper.NewKeeper(storeKey, log.NewNopLogger())
	k.InitGenesis(ctx, types.DefaultMetadata(), []string{manager})
	return k, ctx
}

func TestMintRequiresMinter(t *testing.T) {
	k, ctx := setupClaimToken(t)

	err := k.Mint(ctx, alice, alice, math.NewInt(5))
	require.ErrorIs(t, err, fundtypes.ErrUnauthorized)
	require.Equal(t, fundtypes.CategoryAuthorization, fundtypes.Categorize(err))
	require.True(t, k.TotalSupply(ctx).IsZero())

	require.NoError(t, k.Mint(ctx, manager, alice, math.NewInt(5)))
	require.Equal(t, math.NewInt(5), k.BalanceOf(ctx, alice))
	require.Equal(t, math.NewInt(5), k.TotalSupply(ctx))
}

func TestBurnFromConsumesAllowance(t *testing.T) {
	k, ctx := setupClaimToken(t)
	require.NoError(t, k.Mint(ctx, manager, alice, math.NewInt(100)))

	err := k.BurnFrom(ctx, manager, alice, math.NewInt(10))
	require.ErrorIs(t, err, fundtypes.ErrInsufficientAllowance)
	require.Equal(t, math.NewInt(100), k.BalanceOf(ctx, alice))

	require.NoError(t, k.Approve(ctx, alice, manager, math.NewInt(30)))
	require.NoError(t, k.BurnFrom(ctx, manager, alice, math.NewInt(10)))
	require.Equal(t, math.NewInt(90), k.BalanceOf(ctx, alice))
	require.Equal(t, math.NewInt(90), k.TotalSupply(ctx))
	require.Equal(t, math.NewInt(20), k.Allowance(ctx, alice, manager))

	err = k.BurnFrom(ctx, manager, alice, math.NewInt(91))
	require.ErrorIs(t, err, fundtypes.ErrInsufficientShares)
	require.Equal(t, math.NewInt(20), k.Allowance(ctx, alice, manager))
}

func TestTransferAndTransferFrom(t *testing.T) {
	k, ctx := setupClaimToken(t)
	require.NoError(t, k.Mint(ctx, manager, alice, math.NewInt(50)))

	require.NoError(t, k.Transfer(ctx, alice, bob, math.NewInt(20)))
	require.ErrorIs(t, k.Transfer(ctx, alice, bob, math.NewInt(31)), types.ErrInsufficientBalance)
	require.ErrorIs(t, k.Transfer(ctx, alice, alice, math.NewInt(1)), types.ErrSelfTransfer)

	require.ErrorIs(t, k.TransferFrom(ctx, bob, alice, bob, math.NewInt(5)), fundtypes.ErrInsufficientAllowance)
	require.NoError(t, k.Approve(ctx, alice, bob, math.NewInt(5)))
	require.NoError(t, k.TransferFrom(ctx, bob, alice, bob, math.NewInt(5)))

	require.Equal(t, math.NewInt(25), k.BalanceOf(ctx, alice))
	require.Equal(t, math.NewInt(25), k.BalanceOf(ctx, bob))
	require.True(t, k.Allowance(ctx, alice, bob).IsZero())
}

func TestRejectsMalformedAddresses(t *testing.T) {
	k, ctx := setupClaimToken(t)
	require.NoError(t, k.Mint(ctx, manager, alice, math.NewInt(4)))

	for _, addr := range []string{"", "not-an-address", alice + "/" + bob, "x/y"} {
		require.ErrorIs(t, k.Transfer(ctx, alice, addr, math.NewInt(4)), fundtypes.ErrInvalidAddress, "%q", addr)
		require.ErrorIs(t, k.Approve(ctx, alice, addr, math.NewInt(1)), fundtypes.ErrInvalidAddress, "%q", addr)
		require.ErrorIs(t, k.Approve(ctx, addr, alice, math.NewInt(1)), fundtypes.ErrInvalidAddress, "%q", addr)
		require.ErrorIs(t, k.Mint(ctx, manager, addr, math.NewInt(1)), fundtypes.ErrInvalidAddress, "%q", addr)
		require.ErrorIs(t, k.AddMinter(ctx, manager, addr), fundtypes.ErrInvalidAddress, "%q", addr)
	}

	require.Equal(t, math.NewInt(4), k.BalanceOf(ctx, alice))
	require.Equal(t, math.NewInt(4), k.TotalSupply(ctx))
	require.Len(t, k.Holders(ctx), 1)
	require.Equal(t, []string{manager}, k.GetMinters(ctx))
}

func TestMsgValidateBasic(t *testing.T) {
	tests := []struct {
		name string
		msg  interface{ ValidateBasic() error }
		err  error
	}{
		{"transfer", types.MsgTransfer{Sender: alice, Recipient: bob, Amount: "1"}, nil},
		{"transfer to garbage", types.MsgTransfer{Sender: alice, Recipient: "not-an-address", Amount: "1"}, fundtypes.ErrInvalidAddress},
		{"transfer without sender", types.MsgTransfer{Recipient: bob, Amount: "1"}, fundtypes.ErrInvalidAddress},
		{"transfer bad amount", types.MsgTransfer{Sender: alice, Recipient: bob, Amount: "abc"}, fundtypes.ErrInvalidAmount},
		{"approve", types.MsgApprove{Owner: alice, Spender: manager, Amount: "0"}, nil},
		{"approve garbage spender", types.MsgApprove{Owner: bob, Spender: "x/y", Amount: "1"}, fundtypes.ErrInvalidAddress},
		{"approve negative", types.MsgApprove{Owner: alice, Spender: manager, Amount: "-1"}, fundtypes.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.ValidateBasic()
			if tt.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestHoldersSumToSupply(t *testing.T) {
	k, ctx := setupClaimToken(t)
	require.NoError(t, k.Mint(ctx, manager, alice, math.NewInt(7)))
	require.NoError(t, k.Mint(ctx, manager, bob, math.NewInt(11)))
	require.NoError(t, k.Transfer(ctx, bob, alice, math.NewInt(11)))

	sum := math.ZeroInt()
	holders := k.Holders(ctx)
	for _, balance := range holders {
		sum = sum.Add(balance)
	}
	require.Len(t, holders, 1)
	require.Equal(t, k.TotalSupply(ctx), sum)
}

func TestMinterHandover(t *testing.T) {
	k, ctx := setupClaimToken(t)

	require.ErrorIs(t, k.AddMinter(ctx, alice, alice), fundtypes.ErrUnauthorized)

	require.NoError(t, k.AddMinter(ctx, manager, managerV2))
	require.NoError(t, k.RenounceMinter(ctx, manager))

	require.False(t, k.IsMinter(ctx, manager))
	require.True(t, k.IsMinter(ctx, managerV2))
	require.Equal(t, []string{managerV2}, k.GetMinters(ctx))
	require.ErrorIs(t, k.Mint(ctx, manager, alice, math.NewInt(1)), fundtypes.ErrUnauthorized)
}

func TestMsgServerApprove(t *testing.T) {
	k, ctx := setupClaimToken(t)
	srv := keeper.NewMsgServerImpl(k)

	_, err := srv.Approve(ctx, &types.MsgApprove{Owner: alice, Spender: manager, Amount: "42"})
	require.NoError(t, err)
	require.Equal(t, math.NewInt(42), k.Allowance(ctx, alice, manager))

	_, err = srv.Approve(ctx, &types.MsgApprove{Owner: alice, Spender: manager, Amount: "-1"})
	require.ErrorIs(t, err, fundtypes.ErrInvalidAmount)

	_, err = srv.Transfer(ctx, &types.MsgTransfer{Sender: alice, Recipient: bob, Amount: "abc"})
	require.ErrorIs(t, err, fundtypes.ErrInvalidAmount)
}
