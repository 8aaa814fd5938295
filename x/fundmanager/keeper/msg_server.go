package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundmanager/types"
)

// MsgServer defines the fundmanager MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

func parseAmount(s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(s)
	if !ok {
		return math.Int{}, fundtypes.ErrInvalidAmount.Wrapf("cannot parse %q", s)
	}
	return amount, nil
}

// Deposit handles MsgDeposit
func (m *MsgServer) Deposit(ctx context.Context, msg *types.MsgDeposit) (*types.MsgDepositResponse, error) {
	amount, err := parseAmount(msg.Amount)
	if err != nil {
		return nil, err
	}
	shares, err := m.keeper.Deposit(sdk.UnwrapSDKContext(ctx), msg.Depositor, amount)
	if err != nil {
		return nil, err
	}
	return &types.MsgDepositResponse{Shares: shares.String()}, nil
}

// Withdraw handles MsgWithdraw
func (m *MsgServer) Withdraw(ctx context.Context, msg *types.MsgWithdraw) (*types.MsgWithdrawResponse, error) {
	amount, err := parseAmount(msg.Amount)
	if err != nil {
		return nil, err
	}
	shares, err := m.keeper.Withdraw(sdk.UnwrapSDKContext(ctx), msg.Withdrawer, amount)
	if err != nil {
		return nil, err
	}
	return &types.MsgWithdrawResponse{SharesBurned: shares.String()}, nil
}

// SetInterestFeeRate handles MsgSetInterestFeeRate
func (m *MsgServer) SetInterestFeeRate(ctx context.Context, msg *types.MsgSetInterestFeeRate) (*types.MsgSetInterestFeeRateResponse, error) {
	if err := m.keeper.SetInterestFeeRate(sdk.UnwrapSDKContext(ctx), msg.Owner, msg.RateBps); err != nil {
		return nil, err
	}
	return &types.MsgSetInterestFeeRateResponse{}, nil
}

// SetInterestFeeMasterBeneficiary handles MsgSetInterestFeeMasterBeneficiary
func (m *MsgServer) SetInterestFeeMasterBeneficiary(ctx context.Context, msg *types.MsgSetInterestFeeMasterBeneficiary) (*types.MsgSetInterestFeeMasterBeneficiaryResponse, error) {
	if err := m.keeper.SetInterestFeeMasterBeneficiary(sdk.UnwrapSDKContext(ctx), msg.Owner, msg.Beneficiary); err != nil {
		return nil, err
	}
	return &types.MsgSetInterestFeeMasterBeneficiaryResponse{}, nil
}

// SetDefaultAccountBalanceLimit handles MsgSetDefaultAccountBalanceLimit
func (m *MsgServer) SetDefaultAccountBalanceLimit(ctx context.Context, msg *types.MsgSetDefaultAccountBalanceLimit) (*types.MsgSetDefaultAccountBalanceLimitResponse, error) {
	limit, err := parseAmount(msg.Limit)
	if err != nil {
		return nil, err
	}
	if err := m.keeper.SetDefaultAccountBalanceLimit(sdk.UnwrapSDKContext(ctx), msg.Owner, limit); err != nil {
		return nil, err
	}
	return &types.MsgSetDefaultAccountBalanceLimitResponse{}, nil
}

// SetIndividualAccountBalanceLimit handles MsgSetIndividualAccountBalanceLimit
func (m *MsgServer) SetIndividualAccountBalanceLimit(ctx context.Context, msg *types.MsgSetIndividualAccountBalanceLimit) (*types.MsgSetIndividualAccountBalanceLimitResponse, error) {
	limit, err := parseAmount(msg.Limit)
	if err != nil {
		return nil, err
	}
	if err := m.keeper.SetIndividualAccountBalanceLimit(sdk.UnwrapSDKContext(ctx), msg.Owner, msg.Account, limit); err != nil {
		return nil, err
	}
	return &types.MsgSetIndividualAccountBalanceLimitResponse{}, nil
}

// SetFundRebalancer handles MsgSetFundRebalancer
func (m *MsgServer) SetFundRebalancer(ctx context.Context, msg *types.MsgSetFundRebalancer) (*types.MsgSetFundRebalancerResponse, error) {
	if err := m.keeper.SetFundRebalancer(sdk.UnwrapSDKContext(ctx), msg.Owner, msg.Rebalancer); err != nil {
		return nil, err
	}
	return &types.MsgSetFundRebalancerResponse{}, nil
}

// TransferOwnership handles MsgTransferOwnership
func (m *MsgServer) TransferOwnership(ctx context.Context, msg *types.MsgTransferOwnership) (*types.MsgTransferOwnershipResponse, error) {
	if err := m.keeper.TransferOwnership(sdk.UnwrapSDKContext(ctx), msg.Owner, msg.NewOwner); err != nil {
		return nil, err
	}
	return &types.MsgTransferOwnershipResponse{}, nil
}

// DisableFund handles MsgDisableFund
func (m *MsgServer) DisableFund(ctx context.Context, msg *types.MsgDisableFund) (*types.MsgDisableFundResponse, error) {
	if err := m.keeper.DisableFund(sdk.UnwrapSDKContext(ctx), msg.Owner); err != nil {
		return nil, err
	}
	return &types.MsgDisableFundResponse{}, nil
}

// EnableFund handles MsgEnableFund
func (m *MsgServer) EnableFund(ctx context.Context, msg *types.MsgEnableFund) (*types.MsgEnableFundResponse, error) {
	if err := m.keeper.EnableFund(sdk.UnwrapSDKContext(ctx), msg.Owner); err != nil {
		return nil, err
	}
	return &types.MsgEnableFundResponse{}, nil
}

// SetFundController handles MsgSetFundController
func (m *MsgServer) SetFundController(ctx context.Context, msg *types.MsgSetFundController) (*types.MsgSetFundControllerResponse, error) {
	if err := m.keeper.SetFundController(sdk.UnwrapSDKContext(ctx), msg.Owner, msg.FundController); err != nil {
		return nil, err
	}
	return &types.MsgSetFundControllerResponse{}, nil
}

// DepositFees handles MsgDepositFees
func (m *MsgServer) DepositFees(ctx context.Context, msg *types.MsgDepositFees) (*types.MsgDepositFeesResponse, error) {
	fees, shares, err := m.keeper.DepositFees(sdk.UnwrapSDKContext(ctx), msg.Owner)
	if err != nil {
		return nil, err
	}
	return &types.MsgDepositFeesResponse{Fees: fees.String(), Shares: shares.String()}, nil
}

// WithdrawFees handles MsgWithdrawFees
func (m *MsgServer) WithdrawFees(ctx context.Context, msg *types.MsgWithdrawFees) (*types.MsgWithdrawFeesResponse, error) {
	fees, err := m.keeper.WithdrawFees(sdk.UnwrapSDKContext(ctx), msg.Owner)
	if err != nil {
		return nil, err
	}
	return &types.MsgWithdrawFeesResponse{Fees: fees.String()}, nil
}

// CheckpointInterest handles MsgCheckpointInterest
func (m *MsgServer) CheckpointInterest(ctx context.Context, msg *types.MsgCheckpointInterest) (*types.MsgCheckpointInterestResponse, error) {
	if _, err := m.keeper.CheckpointInterest(sdk.UnwrapSDKContext(ctx), msg.Sender); err != nil {
		return nil, err
	}
	return &types.MsgCheckpointInterestResponse{}, nil
}

// AuthorizeFundManagerDataSource handles MsgAuthorizeFundManagerDataSource
func (m *MsgServer) AuthorizeFundManagerDataSource(ctx context.Context, msg *types.MsgAuthorizeFundManagerDataSource) (*types.MsgAuthorizeFundManagerDataSourceResponse, error) {
	if err := m.keeper.AuthorizeFundManagerDataSource(sdk.UnwrapSDKContext(ctx), msg.Owner, msg.DataSource); err != nil {
		return nil, err
	}
	return &types.MsgAuthorizeFundManagerDataSourceResponse{}, nil
}

// UpgradeFundManager handles MsgUpgradeFundManager
func (m *MsgServer) UpgradeFundManager(ctx context.Context, msg *types.MsgUpgradeFundManager) (*types.MsgUpgradeFundManagerResponse, error) {
	if err := m.keeper.UpgradeFundManager(sdk.UnwrapSDKContext(ctx), msg.Owner, msg.NewManager); err != nil {
		return nil, err
	}
	return &types.MsgUpgradeFundManagerResponse{}, nil
}
