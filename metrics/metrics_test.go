package metrics_test

import (
	"errors"
	"strings"
	"testing"

	"cosmossdk.io/log"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/openalpha/yieldfund/app"
	"github.com/openalpha/yieldfund/metrics"
	fundtestutil "github.com/openalpha/yieldfund/testutil"
	fundtypes "github.com/openalpha/yieldfund/types"
	fctypes "github.com/openalpha/yieldfund/x/fundcontroller/types"
	fmtypes "github.com/openalpha/yieldfund/x/fundmanager/types"
)

func TestToUnits(t *testing.T) {
	require.Equal(t, 1.5, metrics.ToUnits(fundtypes.MustUnits("1.5").String()))
	require.Equal(t, 0.0, metrics.ToUnits("not a number"))
	require.Equal(t, -2.0, metrics.ToUnits(fundtypes.Units(-2).String()))
}

func TestRecordTx(t *testing.T) {
	c := metrics.NewCollector()

	c.RecordTx("fundmanager", "deposit", nil, "", 1)
	c.RecordTx("fundmanager", "deposit", errors.New("boom"), "unknown", 1)
	c.RecordTx("fundmanager", "deposit", errors.New("boom"), "unknown", 1)

	require.Equal(t, 1.0, testutil.ToFloat64(c.TxTotal.WithLabelValues("fundmanager", "deposit", "committed", "")))
	require.Equal(t, 2.0, testutil.ToFloat64(c.TxTotal.WithLabelValues("fundmanager", "deposit", "rejected", "unknown")))
}

func TestObserveTxRecordsFlows(t *testing.T) {
	f := fundtestutil.Setup(t)
	c := metrics.NewCollector()

	req := app.TxRequest{
		Module: fmtypes.ModuleName,
		Msg:    fmtypes.TypeMsgDeposit,
		Body:   []byte(`{"depositor":"` + f.Alice + `","amount":"` + fundtypes.Units(4).String() + `"}`),
	}
	res, err := f.App.DeliverTx(req)
	require.NoError(t, err)
	c.ObserveTx(req, res, err, 2)

	require.Equal(t, 4.0, testutil.ToFloat64(c.DepositedTotal.WithLabelValues("fundmanager-v1")))
	require.Equal(t, float64(res.Height), testutil.ToFloat64(c.BlockHeight))

	req.Msg = fmtypes.TypeMsgWithdraw
	req.Body = []byte(`{"withdrawer":"` + f.Alice + `","amount":"1"}`)
	res, err = f.App.DeliverTx(req)
	require.ErrorIs(t, err, fundtypes.ErrInsufficientAllowance)
	c.ObserveTx(req, res, err, 2)

	require.Equal(t, 1.0, testutil.ToFloat64(c.TxTotal.WithLabelValues(
		fmtypes.ModuleName, fmtypes.TypeMsgWithdraw, "rejected", string(fundtypes.CategoryValidation))))
}

func TestFundCollector(t *testing.T) {
	f := fundtestutil.Setup(t)
	f.Deposit(f.Alice, fundtypes.Units(10))
	require.NoError(t, f.Controller.DepositToPool(f.Ctx, f.Rebalancer, fctypes.PoolIDAave, fundtypes.Units(6)))

	fc := metrics.NewFundCollector(f.App, log.NewNopLogger())
	c := metrics.NewCollector()
	require.NoError(t, c.Register(fc))

	expected := `
# HELP yieldfund_fund_idle_units Controller capital not deployed to a pool
# TYPE yieldfund_fund_idle_units gauge
yieldfund_fund_idle_units{controller="fundcontroller-v1"} 4
yieldfund_fund_idle_units{controller="fundcontroller-v2"} 0
`
	require.NoError(t, testutil.CollectAndCompare(fc, strings.NewReader(expected), "yieldfund_fund_idle_units"))

	expected = `
# HELP yieldfund_fund_balance_units Fund balance net of unclaimed fees
# TYPE yieldfund_fund_balance_units gauge
yieldfund_fund_balance_units{manager="fundmanager-v1"} 10
yieldfund_fund_balance_units{manager="fundmanager-v2"} 0
`
	require.NoError(t, testutil.CollectAndCompare(fc, strings.NewReader(expected), "yieldfund_fund_balance_units"))

	count, err := testutil.GatherAndCount(c.Registry(), "yieldfund_fund_pool_balance_units")
	require.NoError(t, err)
	require.Equal(t, 14, count)
}
