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
	"github.com/stretchr/testify/require"

	"github.com/openalpha/yieldfund/x/basebank/keeper"
	"github.com/openalpha/yieldfund/x/basebank/types"
)

func setupBank(t *testing.T) (*keeper.Keeper, sdk.Context) {
	t.Helper()

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
	return keeper.NewKeeper(storeKey, log.NewNopLogger()), ctx
}

func TestMintAndSend(t *testing.T) {
	k, ctx := setupBank(t)
	alice := sdk.AccAddress("alice_______________")
	bob := sdk.AccAddress("bob_________________")

	require.NoError(t, k.MintCoins(ctx, alice, sdk.NewCoins(sdk.NewInt64Coin("aeth", 100))))
	require.NoError(t, k.SendCoins(ctx, alice, bob, sdk.NewCoins(sdk.NewInt64Coin("aeth", 40))))

	require.Equal(t, math.NewInt(60), k.GetBalance(ctx, alice, "aeth").Amount)
	require.Equal(t, math.NewInt(40), k.GetBalance(ctx, bob, "aeth").Amount)
	require.Equal(t, math.NewInt(100), k.GetSupply(ctx, "aeth").Amount)
}

func TestSendInsufficientFunds(t *testing.T) {
	k, ctx := setupBank(t)
	alice := sdk.AccAddress("alice_______________")
	bob := sdk.AccAddress("bob_________________")

	require.NoError(t, k.MintCoins(ctx, alice, sdk.NewCoins(sdk.NewInt64Coin("aeth", 10))))
	err := k.SendCoins(ctx, alice, bob, sdk.NewCoins(sdk.NewInt64Coin("aeth", 11)))
	require.ErrorIs(t, err, types.ErrInsufficientFunds)
	require.Equal(t, math.NewInt(10), k.GetBalance(ctx, alice, "aeth").Amount)
	require.True(t, k.GetBalance(ctx, bob, "aeth").Amount.IsZero())
}
