package metrics

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/yieldfund/app"
	fundtypes "github.com/openalpha/yieldfund/types"
	fctypes "github.com/openalpha/yieldfund/x/fundcontroller/types"
	fmtypes "github.com/openalpha/yieldfund/x/fundmanager/types"
)

// ObserveTx records one DeliverTx outcome and the fund flows in its events.
func (c *Collector) ObserveTx(req app.TxRequest, res *app.TxResult, err error, latencyMs float64) {
	c.RecordTx(req.Module, req.Msg, err, string(fundtypes.Categorize(err)), latencyMs)
	if err != nil || res == nil {
		return
	}
	c.UpdateBlockHeight(res.Height)

	for _, ev := range res.Events {
		switch ev.Type {
		case fmtypes.EventTypeDeposit:
			c.RecordDeposit(attr(ev, fmtypes.AttributeKeyInstance), ToUnits(attr(ev, fmtypes.AttributeKeyAmount)))
		case fmtypes.EventTypeWithdraw:
			c.RecordWithdrawal(attr(ev, fmtypes.AttributeKeyInstance), ToUnits(attr(ev, fmtypes.AttributeKeyAmount)))
		case fmtypes.EventTypeMigrated:
			c.RecordMigration(fmtypes.ModuleName)
		case fctypes.EventTypeMigrated:
			c.RecordMigration(fctypes.ModuleName)
		}
	}
}

func attr(ev sdk.Event, key string) string {
	for _, a := range ev.Attributes {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}
