package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/claimtoken/types"
)

// MsgServer defines the claimtoken MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

// Transfer handles MsgTransfer
func (m *MsgServer) Transfer(ctx context.Context, msg *types.MsgTransfer) (*types.MsgTransferResponse, error) {
	amount, err := parseAmount(msg.Amount)
	if err != nil {
		return nil, err
	}
	if err := m.keeper.Transfer(sdk.UnwrapSDKContext(ctx), msg.Sender, msg.Recipient, amount); err != nil {
		return nil, err
	}
	return &types.MsgTransferResponse{}, nil
}

// Approve handles MsgApprove
func (m *MsgServer) Approve(ctx context.Context, msg *types.MsgApprove) (*types.MsgApproveResponse, error) {
	amount, err := parseAmount(msg.Amount)
	if err != nil {
		return nil, err
	}
	if err := m.keeper.Approve(sdk.UnwrapSDKContext(ctx), msg.Owner, msg.Spender, amount); err != nil {
		return nil, err
	}
	return &types.MsgApproveResponse{}, nil
}

func parseAmount(s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(s)
	if !ok {
		return math.Int{}, fundtypes.ErrInvalidAmount.Wrapf("cannot parse %q", s)
	}
	return amount, nil
}
