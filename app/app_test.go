package app_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openalpha/yieldfund/app"
	"github.com/openalpha/yieldfund/testutil"
	fundtypes "github.com/openalpha/yieldfund/types"
	claimtokentypes "github.com/openalpha/yieldfund/x/claimtoken/types"
	fctypes "github.com/openalpha/yieldfund/x/fundcontroller/types"
	fmtypes "github.com/openalpha/yieldfund/x/fundmanager/types"
	venuesimtypes "github.com/openalpha/yieldfund/x/venuesim/types"
)

func body(t *testing.T, v any) json.RawMessage {
	t.Helper()
	bz, err := json.Marshal(v)
	require.NoError(t, err)
	return bz
}

func deliver(t *testing.T, f *testutil.Fixture, module, msg, instance string, v any) (*app.TxResult, error) {
	t.Helper()
	return f.App.DeliverTx(app.TxRequest{Module: module, Msg: msg, Instance: instance, Body: body(t, v)})
}

func TestRoutesCoverEveryMessage(t *testing.T) {
	routes := app.Routes()
	require.Len(t, routes[fctypes.ModuleName], 15)
	require.Len(t, routes[fmtypes.ModuleName], 16)
	require.Len(t, routes[claimtokentypes.ModuleName], 2)
	require.Len(t, routes[venuesimtypes.ModuleName], 3)
	require.Equal(t, []string{app.TypeMsgFaucet}, routes[app.BankRoute])
}

func TestDeliverTxCommits(t *testing.T) {
	f := testutil.Setup(t)
	height := f.App.Height()

	res, err := deliver(t, f, fmtypes.ModuleName, fmtypes.TypeMsgDeposit, "",
		fmtypes.MsgDeposit{Depositor: f.Alice, Amount: fundtypes.Units(5).String()})
	require.NoError(t, err)
	require.Equal(t, "fundmanager-v1", res.Instance)
	require.Equal(t, height+1, res.Height)
	require.Equal(t, &fmtypes.MsgDepositResponse{Shares: fundtypes.Units(5).String()}, res.Response)

	var sawDeposit bool
	for _, ev := range res.Events {
		if ev.Type == fmtypes.EventTypeDeposit {
			sawDeposit = true
		}
	}
	require.True(t, sawDeposit)

	account, err := f.App.QueryAccount("", f.Alice)
	require.NoError(t, err)
	require.Equal(t, fundtypes.Units(5).String(), account.Shares)
	require.Equal(t, fundtypes.Units(5).String(), account.Balance)
	require.True(t, account.Unlimited)

	controller, err := f.App.QueryController("")
	require.NoError(t, err)
	require.Equal(t, fundtypes.Units(5).String(), controller.Idle)
}

func TestDeliverTxRejectionCommitsNothing(t *testing.T) {
	f := testutil.Setup(t)
	height := f.App.Height()

	_, err := deliver(t, f, fmtypes.ModuleName, fmtypes.TypeMsgDeposit, "",
		fmtypes.MsgDeposit{Depositor: f.Alice, Amount: testutil.GenesisFunding.AddRaw(1).String()})
	require.Error(t, err)
	require.Equal(t, height, f.App.Height())

	fund, err := f.App.QueryFund("")
	require.NoError(t, err)
	require.Equal(t, "0", fund.TotalShares)
	require.Equal(t, "0", fund.Accounting.NetDeposits.String())

	balance, err := f.App.QueryBalance(f.Alice)
	require.NoError(t, err)
	require.Equal(t, testutil.GenesisFunding.String(), balance.String())
}

func TestDeliverTxDecoding(t *testing.T) {
	f := testutil.Setup(t)

	_, err := f.App.DeliverTx(app.TxRequest{Module: "staking", Msg: "delegate"})
	require.ErrorContains(t, err, "unknown module")

	_, err = f.App.DeliverTx(app.TxRequest{Module: fmtypes.ModuleName, Msg: "delegate"})
	require.ErrorContains(t, err, "unknown message")

	_, err = f.App.DeliverTx(app.TxRequest{
		Module: fmtypes.ModuleName, Msg: fmtypes.TypeMsgDeposit, Body: json.RawMessage(`{"depositor":`),
	})
	require.ErrorContains(t, err, "malformed")

	_, err = deliver(t, f, fmtypes.ModuleName, fmtypes.TypeMsgDeposit, "",
		fmtypes.MsgDeposit{Depositor: "alice", Amount: "1"})
	require.ErrorIs(t, err, fundtypes.ErrInvalidAddress)
	require.Equal(t, fundtypes.CategoryValidation, fundtypes.Categorize(err))

	_, err = deliver(t, f, claimtokentypes.ModuleName, claimtokentypes.TypeMsgTransfer, "",
		claimtokentypes.MsgTransfer{Sender: f.Alice, Recipient: f.Bob, Amount: "lots"})
	require.ErrorIs(t, err, fundtypes.ErrInvalidAmount)
	require.NotErrorIs(t, err, fundtypes.ErrInvalidAddress)

	_, err = deliver(t, f, claimtokentypes.ModuleName, claimtokentypes.TypeMsgTransfer, "",
		claimtokentypes.MsgTransfer{Sender: f.Alice, Recipient: "not-an-address", Amount: "1"})
	require.ErrorIs(t, err, fundtypes.ErrInvalidAddress)

	_, err = deliver(t, f, fmtypes.ModuleName, fmtypes.TypeMsgDeposit, "fundmanager-v9",
		fmtypes.MsgDeposit{Depositor: f.Alice, Amount: "1"})
	require.ErrorIs(t, err, fmtypes.ErrUnknownManager)
}

func TestInstanceResolution(t *testing.T) {
	f := testutil.Setup(t)
	v1 := f.Manager.Address().String()
	v2 := f.NextManager.Address().String()

	res, err := deliver(t, f, fmtypes.ModuleName, fmtypes.TypeMsgCheckpointInterest, v2,
		fmtypes.MsgCheckpointInterest{Sender: f.Rebalancer})
	require.NoError(t, err)
	require.Equal(t, "fundmanager-v2", res.Instance)

	steps := []struct {
		msg      string
		instance string
		body     any
	}{
		{fmtypes.TypeMsgDisableFund, "fundmanager-v1", fmtypes.MsgDisableFund{Owner: f.Owner}},
		{fmtypes.TypeMsgAuthorizeFundManagerDataSource, "fundmanager-v2", fmtypes.MsgAuthorizeFundManagerDataSource{Owner: f.Owner, DataSource: v1}},
		{fmtypes.TypeMsgUpgradeFundManager, "fundmanager-v1", fmtypes.MsgUpgradeFundManager{Owner: f.Owner, NewManager: v2}},
	}
	for _, step := range steps {
		_, err := deliver(t, f, fmtypes.ModuleName, step.msg, step.instance, step.body)
		require.NoError(t, err, step.msg)
	}

	fund, err := f.App.QueryFund("")
	require.NoError(t, err)
	require.Equal(t, "fundmanager-v2", fund.Name)

	overview, err := f.App.QueryOverview()
	require.NoError(t, err)
	require.Equal(t, fundtypes.StatusMigratedOut, overview.Managers[0].Status)
	require.Equal(t, fundtypes.StatusActive, overview.Managers[1].Status)
	require.Equal(t, fundtypes.StatusActive, overview.Controllers[0].Status)
}

func TestSimulationRoutes(t *testing.T) {
	f := testutil.Setup(t)
	dave := testutil.Addr("dave")

	_, err := deliver(t, f, app.BankRoute, app.TypeMsgFaucet, "",
		app.MsgFaucet{Address: dave, Amount: fundtypes.Units(3).String()})
	require.NoError(t, err)
	balance, err := f.App.QueryBalance(dave)
	require.NoError(t, err)
	require.Equal(t, fundtypes.Units(3).String(), balance.String())

	_, err = deliver(t, f, app.BankRoute, app.TypeMsgFaucet, "", app.MsgFaucet{Address: dave, Amount: "-1"})
	require.ErrorIs(t, err, fundtypes.ErrInvalidAmount)

	_, err = deliver(t, f, venuesimtypes.ModuleName, app.TypeMsgSetPaused, "",
		app.MsgSetPaused{Venue: string(fctypes.VenueAave), Market: "eth", Paused: true})
	require.NoError(t, err)

	markets, err := f.App.QueryMarkets()
	require.NoError(t, err)
	require.Len(t, markets, 7)
	var paused bool
	for _, m := range markets {
		if m.Venue == string(fctypes.VenueAave) {
			paused = m.Paused
		}
	}
	require.True(t, paused)

	_, err = deliver(t, f, venuesimtypes.ModuleName, app.TypeMsgAccrueYield, "",
		app.MsgAccrueYield{Venue: "nowhere", Market: "eth", Amount: "1"})
	require.ErrorIs(t, err, venuesimtypes.ErrMarketNotFound)
}

func TestGenesisExportRoundTrip(t *testing.T) {
	f := testutil.Setup(t)
	_, err := deliver(t, f, fmtypes.ModuleName, fmtypes.TypeMsgDeposit, "",
		fmtypes.MsgDeposit{Depositor: f.Alice, Amount: fundtypes.Units(2).String()})
	require.NoError(t, err)

	gen, err := f.App.ExportGenesis()
	require.NoError(t, err)
	require.NoError(t, gen.Validate())
	require.Len(t, gen.Controllers, 2)
	require.Len(t, gen.Managers, 2)
	require.Equal(t, []string{f.Manager.Address().String()}, gen.ClaimToken.Minters)
	require.Equal(t, fundtypes.Units(2).String(), gen.Managers[0].Genesis.Accounting.NetDeposits.String())

	path := filepath.Join(t.TempDir(), "genesis.json")
	require.NoError(t, app.WriteGenesis(path, gen))
	loaded, err := app.LoadGenesis(path)
	require.NoError(t, err)
	require.Len(t, loaded.Markets, len(gen.Markets))
	require.Equal(t, gen.Managers[0].Genesis.State, loaded.Managers[0].Genesis.State)

	require.Error(t, f.App.InitChain(gen))
}

func TestConfigValidate(t *testing.T) {
	cfg := app.DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.BaseDenom = ""
	require.Error(t, cfg.Validate())

	cfg = app.DefaultConfig()
	cfg.Managers = nil
	require.Error(t, cfg.Validate())
}
