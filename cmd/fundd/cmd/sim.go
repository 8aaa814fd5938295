package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/spf13/cobra"

	"github.com/openalpha/yieldfund/app"
	fundtypes "github.com/openalpha/yieldfund/types"
	venuesimtypes "github.com/openalpha/yieldfund/x/venuesim/types"
)

// GetSimCmd returns the commands that drive the simulated venues and the
// base asset faucet. Amounts are whole units and may carry decimals.
func GetSimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "sim",
		Short:                      "Simulation subcommands",
		DisableFlagParsing:         false,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	cmd.AddCommand(
		CmdAccrueYield(),
		CmdSetPaused(),
		CmdSetFees(),
		CmdFaucet(),
	)
	return cmd
}

// CmdAccrueYield grows a market's underlying
func CmdAccrueYield() *cobra.Command {
	return &cobra.Command{
		Use:   "accrue [venue] [market] [units]",
		Short: "Accrue yield to a venue market",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := fundtypes.ParseUnits(args[2])
			if err != nil {
				return err
			}
			return deliverSim(cmd, venuesimtypes.ModuleName, app.TypeMsgAccrueYield, app.MsgAccrueYield{
				Venue:  args[0],
				Market: args[1],
				Amount: amount.String(),
			})
		},
	}
}

// CmdSetPaused pauses or resumes a market
func CmdSetPaused() *cobra.Command {
	return &cobra.Command{
		Use:   "pause [venue] [market] [true|false]",
		Short: "Pause or resume a venue market",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			paused, err := strconv.ParseBool(args[2])
			if err != nil {
				return fmt.Errorf("invalid paused flag %q: %w", args[2], err)
			}
			return deliverSim(cmd, venuesimtypes.ModuleName, app.TypeMsgSetPaused, app.MsgSetPaused{
				Venue:  args[0],
				Market: args[1],
				Paused: paused,
			})
		},
	}
}

// CmdSetFees changes a market's deposit and withdrawal fees
func CmdSetFees() *cobra.Command {
	return &cobra.Command{
		Use:   "fees [venue] [market] [deposit-bps] [withdraw-bps]",
		Short: "Set a venue market's fees",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			depositFee, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid deposit fee: %w", err)
			}
			withdrawFee, err := strconv.ParseUint(args[3], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid withdrawal fee: %w", err)
			}
			return deliverSim(cmd, venuesimtypes.ModuleName, app.TypeMsgSetFees, app.MsgSetFees{
				Venue:          args[0],
				Market:         args[1],
				DepositFeeBps:  depositFee,
				WithdrawFeeBps: withdrawFee,
			})
		},
	}
}

// CmdFaucet mints base asset to an address
func CmdFaucet() *cobra.Command {
	return &cobra.Command{
		Use:   "faucet [address] [units]",
		Short: "Mint base asset to an address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := fundtypes.ParseUnits(args[1])
			if err != nil {
				return err
			}
			return deliverSim(cmd, app.BankRoute, app.TypeMsgFaucet, app.MsgFaucet{
				Address: args[0],
				Amount:  amount.String(),
			})
		},
	}
}

func deliverSim(cmd *cobra.Command, module, msg string, body interface{}) error {
	bz, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return deliver(cmd, app.TxRequest{Module: module, Msg: msg, Body: bz})
}
