package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yieldfund/x/fundmanager/types"
)

// FundSummary is the read model served to the API and CLI.
type FundSummary struct {
	Name                  string             `json:"name"`
	Address               string             `json:"address"`
	State                 types.ManagerState `json:"state"`
	Accounting            types.Accounting   `json:"accounting"`
	RawFundBalance        string             `json:"raw_fund_balance"`
	FundBalance           string             `json:"fund_balance"`
	RawInterestAccrued    string             `json:"raw_interest_accrued"`
	InterestAccrued       string             `json:"interest_accrued"`
	InterestFeesGenerated string             `json:"interest_fees_generated"`
	InterestFeesUnclaimed string             `json:"interest_fees_unclaimed"`
	TotalShares           string             `json:"total_shares"`
}

// AccountSummary is one depositor's position.
type AccountSummary struct {
	Address   string `json:"address"`
	Shares    string `json:"shares"`
	Balance   string `json:"balance"`
	Allowance string `json:"allowance"`
	Limit     string `json:"limit"`
	Unlimited bool   `json:"unlimited"`
}

// QueryServer defines the fundmanager QueryServer
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServerImpl creates a new QueryServer instance
func NewQueryServerImpl(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Fund returns the fund valuation and ledger
func (q *QueryServer) Fund(ctx context.Context) (*FundSummary, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	s, err := q.keeper.snapshot(sdkCtx)
	if err != nil {
		return nil, err
	}
	return &FundSummary{
		Name:                  q.keeper.Name(),
		Address:               q.keeper.self(),
		State:                 q.keeper.GetState(sdkCtx),
		Accounting:            s.acc,
		RawFundBalance:        s.raw.String(),
		FundBalance:           s.fundBalance.String(),
		RawInterestAccrued:    s.rawInterest.String(),
		InterestAccrued:       s.fundBalance.Sub(s.acc.NetDeposits).String(),
		InterestFeesGenerated: s.feesGenerated.String(),
		InterestFeesUnclaimed: s.feesUnclaimed().String(),
		TotalShares:           q.keeper.claimToken.TotalSupply(sdkCtx).String(),
	}, nil
}

// Account returns one depositor's position
func (q *QueryServer) Account(ctx context.Context, address string) (*AccountSummary, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	s, err := q.keeper.snapshot(sdkCtx)
	if err != nil {
		return nil, err
	}
	limit, unlimited := q.keeper.GetAccountBalanceLimit(sdkCtx, address)
	return &AccountSummary{
		Address:   address,
		Shares:    q.keeper.claimToken.BalanceOf(sdkCtx, address).String(),
		Balance:   q.keeper.balanceOf(sdkCtx, s, address).String(),
		Allowance: q.keeper.claimToken.Allowance(sdkCtx, address, q.keeper.self()).String(),
		Limit:     limit.String(),
		Unlimited: unlimited,
	}, nil
}
