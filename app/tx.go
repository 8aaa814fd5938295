package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
	claimtokenkeeper "github.com/openalpha/yieldfund/x/claimtoken/keeper"
	claimtokentypes "github.com/openalpha/yieldfund/x/claimtoken/types"
	fckeeper "github.com/openalpha/yieldfund/x/fundcontroller/keeper"
	fctypes "github.com/openalpha/yieldfund/x/fundcontroller/types"
	fmkeeper "github.com/openalpha/yieldfund/x/fundmanager/keeper"
	fmtypes "github.com/openalpha/yieldfund/x/fundmanager/types"
	venuesimtypes "github.com/openalpha/yieldfund/x/venuesim/types"
)

// TxRequest is a JSON encoded message addressed to a module. Instance picks
// a controller or manager by name or address; empty means the live one.
type TxRequest struct {
	Module   string          `json:"module"`
	Msg      string          `json:"msg"`
	Instance string          `json:"instance,omitempty"`
	Body     json.RawMessage `json:"body"`
}

// TxResult is the outcome of a committed message
type TxResult struct {
	Module   string     `json:"module"`
	Msg      string     `json:"msg"`
	Instance string     `json:"instance,omitempty"`
	Height   int64      `json:"height"`
	Response any        `json:"response"`
	Events   sdk.Events `json:"events"`
}

type txHandler func(app *FundApp, ctx sdk.Context, instance string, body json.RawMessage) (string, any, error)

var txRoutes = map[string]map[string]txHandler{
	fctypes.ModuleName: {
		fctypes.TypeMsgRegisterPool:          controllerMsg((*fckeeper.MsgServer).RegisterPool),
		fctypes.TypeMsgSetPoolEnabled:        controllerMsg((*fckeeper.MsgServer).SetPoolEnabled),
		fctypes.TypeMsgSetFundManager:        controllerMsg((*fckeeper.MsgServer).SetFundManager),
		fctypes.TypeMsgSetFundRebalancer:     controllerMsg((*fckeeper.MsgServer).SetFundRebalancer),
		fctypes.TypeMsgTransferOwnership:     controllerMsg((*fckeeper.MsgServer).TransferOwnership),
		fctypes.TypeMsgDisableFund:           controllerMsg((*fckeeper.MsgServer).DisableFund),
		fctypes.TypeMsgEnableFund:            controllerMsg((*fckeeper.MsgServer).EnableFund),
		fctypes.TypeMsgSetAaveReferralCode:   controllerMsg((*fckeeper.MsgServer).SetAaveReferralCode),
		fctypes.TypeMsgSetEnzymeComptroller:  controllerMsg((*fckeeper.MsgServer).SetEnzymeComptroller),
		fctypes.TypeMsgAddFuseAsset:          controllerMsg((*fckeeper.MsgServer).AddFuseAsset),
		fctypes.TypeMsgApprovePool:           controllerMsg((*fckeeper.MsgServer).ApprovePool),
		fctypes.TypeMsgDepositToPool:         controllerMsg((*fckeeper.MsgServer).DepositToPool),
		fctypes.TypeMsgWithdrawFromPool:      controllerMsg((*fckeeper.MsgServer).WithdrawFromPool),
		fctypes.TypeMsgWithdrawAllFromPool:   controllerMsg((*fckeeper.MsgServer).WithdrawAllFromPool),
		fctypes.TypeMsgUpgradeFundController: controllerMsg((*fckeeper.MsgServer).UpgradeFundController),
	},
	fmtypes.ModuleName: {
		fmtypes.TypeMsgDeposit:                          managerMsg((*fmkeeper.MsgServer).Deposit),
		fmtypes.TypeMsgWithdraw:                         managerMsg((*fmkeeper.MsgServer).Withdraw),
		fmtypes.TypeMsgSetInterestFeeRate:               managerMsg((*fmkeeper.MsgServer).SetInterestFeeRate),
		fmtypes.TypeMsgSetInterestFeeMasterBeneficiary:  managerMsg((*fmkeeper.MsgServer).SetInterestFeeMasterBeneficiary),
		fmtypes.TypeMsgSetDefaultAccountBalanceLimit:    managerMsg((*fmkeeper.MsgServer).SetDefaultAccountBalanceLimit),
		fmtypes.TypeMsgSetIndividualAccountBalanceLimit: managerMsg((*fmkeeper.MsgServer).SetIndividualAccountBalanceLimit),
		fmtypes.TypeMsgSetFundRebalancer:                managerMsg((*fmkeeper.MsgServer).SetFundRebalancer),
		fmtypes.TypeMsgTransferOwnership:                managerMsg((*fmkeeper.MsgServer).TransferOwnership),
		fmtypes.TypeMsgDisableFund:                      managerMsg((*fmkeeper.MsgServer).DisableFund),
		fmtypes.TypeMsgEnableFund:                       managerMsg((*fmkeeper.MsgServer).EnableFund),
		fmtypes.TypeMsgSetFundController:                managerMsg((*fmkeeper.MsgServer).SetFundController),
		fmtypes.TypeMsgDepositFees:                      managerMsg((*fmkeeper.MsgServer).DepositFees),
		fmtypes.TypeMsgWithdrawFees:                     managerMsg((*fmkeeper.MsgServer).WithdrawFees),
		fmtypes.TypeMsgCheckpointInterest:               managerMsg((*fmkeeper.MsgServer).CheckpointInterest),
		fmtypes.TypeMsgAuthorizeFundManagerDataSource:   managerMsg((*fmkeeper.MsgServer).AuthorizeFundManagerDataSource),
		fmtypes.TypeMsgUpgradeFundManager:               managerMsg((*fmkeeper.MsgServer).UpgradeFundManager),
	},
	claimtokentypes.ModuleName: {
		claimtokentypes.TypeMsgTransfer: claimTokenMsg((*claimtokenkeeper.MsgServer).Transfer),
		claimtokentypes.TypeMsgApprove:  claimTokenMsg((*claimtokenkeeper.MsgServer).Approve),
	},
	venuesimtypes.ModuleName: {
		TypeMsgAccrueYield: simMsg(handleAccrueYield),
		TypeMsgSetPaused:   simMsg(handleSetPaused),
		TypeMsgSetFees:     simMsg(handleSetFees),
	},
	BankRoute: {
		TypeMsgFaucet: simMsg(handleFaucet),
	},
}

// Routes lists every module and message the app accepts
func Routes() map[string][]string {
	routes := make(map[string][]string, len(txRoutes))
	for module, msgs := range txRoutes {
		for msg := range msgs {
			routes[module] = append(routes[module], msg)
		}
		sort.Strings(routes[module])
	}
	return routes
}

func decodeMsg[M any](body json.RawMessage) (*M, error) {
	msg := new(M)
	if len(body) > 0 {
		if err := json.Unmarshal(body, msg); err != nil {
			return nil, fmt.Errorf("malformed %T: %w", msg, err)
		}
	}
	if v, ok := any(msg).(interface{ ValidateBasic() error }); ok {
		if err := v.ValidateBasic(); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

func controllerMsg[M, R any](call func(*fckeeper.MsgServer, context.Context, *M) (*R, error)) txHandler {
	return func(app *FundApp, ctx sdk.Context, instance string, body json.RawMessage) (string, any, error) {
		k, err := app.controller(ctx, instance)
		if err != nil {
			return "", nil, err
		}
		msg, err := decodeMsg[M](body)
		if err != nil {
			return k.Name(), nil, err
		}
		res, err := call(fckeeper.NewMsgServerImpl(k), ctx, msg)
		return k.Name(), res, err
	}
}

func managerMsg[M, R any](call func(*fmkeeper.MsgServer, context.Context, *M) (*R, error)) txHandler {
	return func(app *FundApp, ctx sdk.Context, instance string, body json.RawMessage) (string, any, error) {
		k, err := app.manager(ctx, instance)
		if err != nil {
			return "", nil, err
		}
		msg, err := decodeMsg[M](body)
		if err != nil {
			return k.Name(), nil, err
		}
		res, err := call(fmkeeper.NewMsgServerImpl(k), ctx, msg)
		return k.Name(), res, err
	}
}

func claimTokenMsg[M, R any](call func(*claimtokenkeeper.MsgServer, context.Context, *M) (*R, error)) txHandler {
	return func(app *FundApp, ctx sdk.Context, _ string, body json.RawMessage) (string, any, error) {
		msg, err := decodeMsg[M](body)
		if err != nil {
			return "", nil, err
		}
		res, err := call(claimtokenkeeper.NewMsgServerImpl(app.ClaimTokenKeeper), ctx, msg)
		return "", res, err
	}
}

func simMsg[M any](call func(app *FundApp, ctx sdk.Context, msg *M) error) txHandler {
	return func(app *FundApp, ctx sdk.Context, _ string, body json.RawMessage) (string, any, error) {
		msg, err := decodeMsg[M](body)
		if err != nil {
			return "", nil, err
		}
		return "", struct{}{}, call(app, ctx, msg)
	}
}

// DeliverTx decodes and executes one message. A failed message commits nothing.
func (app *FundApp) DeliverTx(req TxRequest) (*TxResult, error) {
	msgs, ok := txRoutes[req.Module]
	if !ok {
		return nil, fmt.Errorf("unknown module %q", req.Module)
	}
	handler, ok := msgs[req.Msg]
	if !ok {
		return nil, fmt.Errorf("unknown message %s/%s", req.Module, req.Msg)
	}

	result := &TxResult{Module: req.Module, Msg: req.Msg}
	events, err := app.Execute(func(ctx sdk.Context) error {
		instance, res, err := handler(app, ctx, req.Instance, req.Body)
		result.Instance = instance
		result.Response = res
		return err
	})
	if err != nil {
		app.logger.Debug("Message rejected",
			"module", req.Module, "msg", req.Msg, "instance", result.Instance,
			"category", string(fundtypes.Categorize(err)), "error", err.Error())
		return result, err
	}
	result.Height = app.Height()
	result.Events = events
	return result, nil
}

// controller resolves a controller by name or address. Empty selects the
// first instance that has not migrated out.
func (app *FundApp) controller(ctx sdk.Context, instance string) (*fckeeper.Keeper, error) {
	for _, k := range app.Controllers {
		switch {
		case instance == "" && k.Status(ctx) != fundtypes.StatusMigratedOut:
			return k, nil
		case instance != "" && (instance == k.Name() || instance == k.Address().String()):
			return k, nil
		}
	}
	if instance == "" {
		return nil, fundtypes.ErrMigratedOut.Wrap("no live fund controller")
	}
	return nil, fmtypes.ErrUnknownController.Wrap(instance)
}

// manager resolves a manager by name or address. Empty selects the first
// instance that has not migrated out.
func (app *FundApp) manager(ctx sdk.Context, instance string) (*fmkeeper.Keeper, error) {
	for _, k := range app.Managers {
		switch {
		case instance == "" && k.GetState(ctx).Status != fundtypes.StatusMigratedOut:
			return k, nil
		case instance != "" && (instance == k.Name() || instance == k.Address().String()):
			return k, nil
		}
	}
	if instance == "" {
		return nil, fundtypes.ErrMigratedOut.Wrap("no live fund manager")
	}
	return nil, fmtypes.ErrUnknownManager.Wrap(instance)
}
