package app

import (
	fckeeper "github.com/openalpha/yieldfund/x/fundcontroller/keeper"
	fmkeeper "github.com/openalpha/yieldfund/x/fundmanager/keeper"
	fmtypes "github.com/openalpha/yieldfund/x/fundmanager/types"
)

var (
	_ fmtypes.ControllerRouter = (*instanceRouter)(nil)
	_ fmtypes.ManagerRouter    = (*instanceRouter)(nil)
)

// instanceRouter resolves fund instances by address and by name so managers
// can reach their controller and their successor.
type instanceRouter struct {
	controllers map[string]*fckeeper.Keeper
	managers    map[string]*fmkeeper.Keeper
}

func newInstanceRouter(controllers []*fckeeper.Keeper, managers []*fmkeeper.Keeper) *instanceRouter {
	r := &instanceRouter{
		controllers: make(map[string]*fckeeper.Keeper, len(controllers)),
		managers:    make(map[string]*fmkeeper.Keeper, len(managers)),
	}
	for _, c := range controllers {
		r.controllers[c.Address().String()] = c
	}
	for _, m := range managers {
		r.managers[m.Address().String()] = m
	}
	return r
}

func (r *instanceRouter) Controller(addr string) (fmtypes.FundController, bool) {
	c, ok := r.controllers[addr]
	if !ok {
		return nil, false
	}
	return c, true
}

func (r *instanceRouter) Manager(addr string) (fmtypes.Successor, bool) {
	m, ok := r.managers[addr]
	if !ok {
		return nil, false
	}
	return m, true
}
