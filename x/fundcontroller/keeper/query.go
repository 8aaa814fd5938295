package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	"github.com/openalpha/yieldfund/x/fundcontroller/types"
)

// ControllerSummary is the read model served to the API and CLI.
type ControllerSummary struct {
	Name    string                `json:"name"`
	Address string                `json:"address"`
	State   types.ControllerState `json:"state"`
	Params  types.Params          `json:"params"`
	Idle    string                `json:"idle"`
	Total   string                `json:"total"`
	Pools   []PoolBalance         `json:"pools"`
}

// QueryServer defines the fundcontroller QueryServer
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServerImpl creates a new QueryServer instance
func NewQueryServerImpl(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Summary returns state, params and every balance
func (q *QueryServer) Summary(ctx context.Context) (*ControllerSummary, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pools, err := q.keeper.GetPoolBalances(sdkCtx)
	if err != nil {
		return nil, err
	}
	idle := q.keeper.GetIdleBalance(sdkCtx)
	total := idle
	for _, pb := range pools {
		total = total.Add(pb.Balance)
	}
	return &ControllerSummary{
		Name:    q.keeper.Name(),
		Address: q.keeper.Address().String(),
		State:   q.keeper.GetState(sdkCtx),
		Params:  q.keeper.GetParams(sdkCtx),
		Idle:    idle.String(),
		Total:   total.String(),
		Pools:   pools,
	}, nil
}

// Pool returns a registry entry with its balance
func (q *QueryServer) Pool(ctx context.Context, poolID uint64) (*PoolBalance, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	pool, found := q.keeper.GetPool(sdkCtx, poolID)
	if !found {
		return nil, fundtypes.ErrPoolNotRegistered.Wrapf("pool %d", poolID)
	}
	balance, err := q.keeper.GetPoolBalance(sdkCtx, poolID)
	if err != nil {
		return nil, err
	}
	return &PoolBalance{Pool: pool, Balance: balance}, nil
}

// Pools returns every registry entry
func (q *QueryServer) Pools(ctx context.Context) ([]types.PoolEntry, error) {
	return q.keeper.GetAllPools(sdk.UnwrapSDKContext(ctx)), nil
}
