package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundcontroller/types"
)

// MsgServer defines the fundcontroller MsgServer
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

// RegisterPool handles MsgRegisterPool
func (m *MsgServer) RegisterPool(ctx context.Context, msg *types.MsgRegisterPool) (*types.MsgRegisterPoolResponse, error) {
	err := m.keeper.RegisterPool(sdk.UnwrapSDKContext(ctx), msg.Owner, msg.PoolID, types.Venue(msg.Venue), msg.Market)
	if err != nil {
		return nil, err
	}
	return &types.MsgRegisterPoolResponse{}, nil
}

// SetPoolEnabled handles MsgSetPoolEnabled
func (m *MsgServer) SetPoolEnabled(ctx context.Context, msg *types.MsgSetPoolEnabled) (*types.MsgSetPoolEnabledResponse, error) {
	if err := m.keeper.SetPoolEnabled(sdk.UnwrapSDKContext(ctx), msg.Owner, msg.PoolID, msg.Enabled); err != nil {
		return nil, err
	}
	return &types.MsgSetPoolEnabledResponse{}, nil
}

// SetFundManager handles MsgSetFundManager
func (m *MsgServer) SetFundManager(ctx context.Context, msg *types.MsgSetFundManager) (*types.MsgSetFundManagerResponse, error) {
	if err := m.keeper.SetFundManager(sdk.UnwrapSDKContext(ctx), msg.Owner, msg.FundManager); err != nil {
		return nil, err
	}
	return &types.MsgSetFundManagerResponse{}, nil
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

// SetAaveReferralCode handles MsgSetAaveReferralCode
func (m *MsgServer) SetAaveReferralCode(ctx context.Context, msg *types.MsgSetAaveReferralCode) (*types.MsgSetAaveReferralCodeResponse, error) {
	if err := m.keeper.SetAaveReferralCode(sdk.UnwrapSDKContext(ctx), msg.Owner, msg.ReferralCode); err != nil {
		return nil, err
	}
	return &types.MsgSetAaveReferralCodeResponse{}, nil
}

// SetEnzymeComptroller handles MsgSetEnzymeComptroller
func (m *MsgServer) SetEnzymeComptroller(ctx context.Context, msg *types.MsgSetEnzymeComptroller) (*types.MsgSetEnzymeComptrollerResponse, error) {
	if err := m.keeper.SetEnzymeComptroller(sdk.UnwrapSDKContext(ctx), msg.Owner, msg.Comptroller); err != nil {
		return nil, err
	}
	return &types.MsgSetEnzymeComptrollerResponse{}, nil
}

// AddFuseAsset handles MsgAddFuseAsset
func (m *MsgServer) AddFuseAsset(ctx context.Context, msg *types.MsgAddFuseAsset) (*types.MsgAddFuseAssetResponse, error) {
	if err := m.keeper.AddFuseAsset(sdk.UnwrapSDKContext(ctx), msg.Owner, msg.PoolID, msg.Market); err != nil {
		return nil, err
	}
	return &types.MsgAddFuseAssetResponse{}, nil
}

// ApprovePool handles MsgApprovePool
func (m *MsgServer) ApprovePool(ctx context.Context, msg *types.MsgApprovePool) (*types.MsgApprovePoolResponse, error) {
	amount, err := parseAmount(msg.Amount)
	if err != nil {
		return nil, err
	}
	if err := m.keeper.ApprovePool(sdk.UnwrapSDKContext(ctx), msg.Sender, msg.PoolID, amount); err != nil {
		return nil, err
	}
	return &types.MsgApprovePoolResponse{}, nil
}

// DepositToPool handles MsgDepositToPool
func (m *MsgServer) DepositToPool(ctx context.Context, msg *types.MsgDepositToPool) (*types.MsgDepositToPoolResponse, error) {
	amount, err := parseAmount(msg.Amount)
	if err != nil {
		return nil, err
	}
	if err := m.keeper.DepositToPool(sdk.UnwrapSDKContext(ctx), msg.Rebalancer, msg.PoolID, amount); err != nil {
		return nil, err
	}
	return &types.MsgDepositToPoolResponse{}, nil
}

// WithdrawFromPool handles MsgWithdrawFromPool
func (m *MsgServer) WithdrawFromPool(ctx context.Context, msg *types.MsgWithdrawFromPool) (*types.MsgWithdrawFromPoolResponse, error) {
	amount, err := parseAmount(msg.Amount)
	if err != nil {
		return nil, err
	}
	if err := m.keeper.WithdrawFromPool(sdk.UnwrapSDKContext(ctx), msg.Rebalancer, msg.PoolID, amount); err != nil {
		return nil, err
	}
	return &types.MsgWithdrawFromPoolResponse{}, nil
}

// WithdrawAllFromPool handles MsgWithdrawAllFromPool
func (m *MsgServer) WithdrawAllFromPool(ctx context.Context, msg *types.MsgWithdrawAllFromPool) (*types.MsgWithdrawAllFromPoolResponse, error) {
	withdrawn, err := m.keeper.WithdrawAllFromPool(sdk.UnwrapSDKContext(ctx), msg.Rebalancer, msg.PoolID)
	if err != nil {
		return nil, err
	}
	return &types.MsgWithdrawAllFromPoolResponse{Withdrawn: withdrawn}, nil
}

// UpgradeFundController handles MsgUpgradeFundController
func (m *MsgServer) UpgradeFundController(ctx context.Context, msg *types.MsgUpgradeFundController) (*types.MsgUpgradeFundControllerResponse, error) {
	transferred, err := m.keeper.UpgradeFundController(sdk.UnwrapSDKContext(ctx), msg.Owner, msg.NewController)
	if err != nil {
		return nil, err
	}
	return &types.MsgUpgradeFundControllerResponse{Transferred: transferred.String()}, nil
}
