package adapters

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundcontroller/types"
)

var errVenue = errors.New("SafeMath: subtraction overflow")

type stubReserve struct {
	referral uint16
	balance  math.Int
	fail     error
}

func (r *stubReserve) Deposit(_ sdk.Context, _ sdk.AccAddress, amount math.Int, referral uint16) error {
	if r.fail != nil {
		return r.fail
	}
	r.referral = referral
	r.balance = r.balance.Add(amount)
	return nil
}

func (r *stubReserve) Redeem(_ sdk.Context, _ sdk.AccAddress, amount math.Int) error {
	r.balance = r.balance.Sub(amount)
	return nil
}

func (r *stubReserve) BalanceOf(sdk.Context, sdk.AccAddress) (math.Int, error) {
	return r.balance, nil
}

// stubVenues serves a single Aave reserve; every other venue is missing.
type stubVenues struct {
	reserve *stubReserve
}

func (v stubVenues) ApproveUnderlying(sdk.Context, sdk.AccAddress, string, string, math.Int) error {
	return nil
}

func (v stubVenues) HasMarket(_ sdk.Context, venue, market string) bool {
	return venue == string(types.VenueAave) && market == "eth"
}

func (v stubVenues) SoloMargin() SoloMargin { return nil }

func (v stubVenues) CToken(sdk.Context, string, string) (CToken, error) {
	return nil, errors.New("no such cToken")
}

func (v stubVenues) AaveReserve(_ sdk.Context, market string) (AaveReserve, error) {
	if market != "eth" {
		return nil, errors.New("no such reserve")
	}
	return v.reserve, nil
}

func (v stubVenues) KeeperDaoPool(sdk.Context, string) (KeeperDaoPool, error) {
	return nil, errors.New("no such pool")
}

func (v stubVenues) AlphaBank(sdk.Context, string) (AlphaBank, error) {
	return nil, errors.New("no such bank")
}

func (v stubVenues) EnzymeFund(sdk.Context, string) (EnzymeFund, error) {
	return nil, errors.New("no such vault")
}

func TestSharesToUnderlyingRoundsDown(t *testing.T) {
	require.Equal(t, math.NewInt(3), sharesToUnderlying(math.NewInt(10), math.NewInt(10), math.NewInt(30)))
	require.Equal(t, math.NewInt(6), sharesToUnderlying(math.NewInt(2), math.NewInt(10), math.NewInt(3)))
	require.True(t, sharesToUnderlying(math.NewInt(5), math.NewInt(10), math.ZeroInt()).IsZero())
}

func TestUnderlyingToSharesRoundsUp(t *testing.T) {
	// 10 underlying backs 3 shares, so 4 underlying needs ceil(1.2) shares.
	shares, err := underlyingToShares(math.NewInt(4), math.NewInt(10), math.NewInt(3), math.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(2), shares)

	shares, err = underlyingToShares(math.NewInt(10), math.NewInt(10), math.NewInt(3), math.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, math.NewInt(3), shares)
}

func TestUnderlyingToSharesRejectsOversizedWithdraw(t *testing.T) {
	_, err := underlyingToShares(math.NewInt(11), math.NewInt(10), math.NewInt(3), math.NewInt(3))
	require.ErrorIs(t, err, types.ErrWithdrawExceedsPool)

	_, err = underlyingToShares(math.NewInt(1), math.ZeroInt(), math.ZeroInt(), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrWithdrawExceedsPool)
}

func TestAllCoversEveryVenue(t *testing.T) {
	seen := make(map[types.Venue]bool)
	for _, a := range All(stubVenues{}, DefaultKeeperDaoFeeBps) {
		seen[a.Venue()] = true
		if a.Venue() == types.VenueKeeperDAO {
			require.Equal(t, types.FeeSpec{Side: types.FeeSideDeposit, Bps: 64}, a.Fee())
		} else {
			require.Equal(t, types.NoFee, a.Fee())
		}
	}
	require.Len(t, seen, 7)
}

func TestAaveAdapterPassesReferralCode(t *testing.T) {
	reserve := &stubReserve{balance: math.ZeroInt()}
	adapter := NewAaveAdapter(stubVenues{reserve: reserve})
	pool := types.PoolEntry{PoolID: types.PoolIDAave, Venue: types.VenueAave, Market: "eth", ReferralCode: 1234}
	holder := sdk.AccAddress("holder______________")

	require.NoError(t, adapter.Deposit(sdk.Context{}, pool, holder, math.NewInt(50)))
	require.Equal(t, uint16(1234), reserve.referral)

	balance, err := adapter.GetBalance(sdk.Context{}, pool, holder)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(50), balance)

	withdrawn, err := adapter.WithdrawAll(sdk.Context{}, pool, holder)
	require.NoError(t, err)
	require.True(t, withdrawn)
	require.True(t, reserve.balance.IsZero())
}

func TestAdapterErrorsAreVerbatim(t *testing.T) {
	reserve := &stubReserve{balance: math.ZeroInt(), fail: errVenue}
	adapter := NewAaveAdapter(stubVenues{reserve: reserve})
	pool := types.PoolEntry{PoolID: types.PoolIDAave, Venue: types.VenueAave, Market: "eth"}

	err := adapter.Deposit(sdk.Context{}, pool, sdk.AccAddress("holder______________"), math.NewInt(1))
	require.EqualError(t, err, errVenue.Error())
	require.ErrorIs(t, err, errVenue)

	var adapterErr *fundtypes.AdapterError
	require.ErrorAs(t, err, &adapterErr)
	require.Equal(t, types.PoolIDAave, adapterErr.PoolID)
	require.Equal(t, fundtypes.CategoryAdapter, fundtypes.Categorize(err))
}

func TestValidateMarket(t *testing.T) {
	adapter := NewAaveAdapter(stubVenues{})
	require.NoError(t, adapter.ValidateMarket(sdk.Context{}, "eth"))
	require.ErrorIs(t, adapter.ValidateMarket(sdk.Context{}, ""), types.ErrInvalidMarket)
	require.ErrorIs(t, adapter.ValidateMarket(sdk.Context{}, "usdc"), types.ErrInvalidMarket)
}
