package cmd

import (
	"strconv"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/spf13/cobra"
)

// GetQueryCmd returns the query commands
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "query",
		Aliases:                    []string{"q"},
		Short:                      "Querying subcommands",
		DisableFlagParsing:         false,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}
	cmd.PersistentFlags().String(flagInstance, "", "controller or manager name or address (defaults to the live one)")

	cmd.AddCommand(
		CmdQueryOverview(),
		CmdQueryFund(),
		CmdQueryAccount(),
		CmdQueryController(),
		CmdQueryPools(),
		CmdQueryPool(),
		CmdQueryMarkets(),
		CmdQueryBalance(),
		CmdExportGenesis(),
	)
	return cmd
}

// queryCmd builds a leaf query command that prints the result of fn as JSON
func queryCmd(use, short string, args cobra.PositionalArgs, fn func(n *node, instance string, args []string) (interface{}, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			instance, _ := cmd.Flags().GetString(flagInstance)
			return withNode(cmd, func(n *node) error {
				res, err := fn(n, instance, args)
				if err != nil {
					return err
				}
				return printJSON(cmd, res)
			})
		},
	}
}

// CmdQueryOverview queries every instance and the claim token
func CmdQueryOverview() *cobra.Command {
	return queryCmd("overview", "Show every fund instance and its status", cobra.NoArgs,
		func(n *node, _ string, _ []string) (interface{}, error) {
			return n.app.QueryOverview()
		})
}

// CmdQueryFund queries a fund manager
func CmdQueryFund() *cobra.Command {
	return queryCmd("fund", "Show fund manager totals and fee state", cobra.NoArgs,
		func(n *node, instance string, _ []string) (interface{}, error) {
			return n.app.QueryFund(instance)
		})
}

// CmdQueryAccount queries an account of a fund manager
func CmdQueryAccount() *cobra.Command {
	return queryCmd("account [address]", "Show an account's shares, balance and limit", cobra.ExactArgs(1),
		func(n *node, instance string, args []string) (interface{}, error) {
			return n.app.QueryAccount(instance, args[0])
		})
}

// CmdQueryController queries a fund controller
func CmdQueryController() *cobra.Command {
	return queryCmd("controller", "Show fund controller state and total balance", cobra.NoArgs,
		func(n *node, instance string, _ []string) (interface{}, error) {
			return n.app.QueryController(instance)
		})
}

// CmdQueryPools lists the registered pools
func CmdQueryPools() *cobra.Command {
	return queryCmd("pools", "List the pools registered with a controller", cobra.NoArgs,
		func(n *node, instance string, _ []string) (interface{}, error) {
			return n.app.QueryPools(instance)
		})
}

// CmdQueryPool queries the controller's balance in one pool
func CmdQueryPool() *cobra.Command {
	return queryCmd("pool [pool-id]", "Show the controller's balance in a pool", cobra.ExactArgs(1),
		func(n *node, instance string, args []string) (interface{}, error) {
			poolID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return nil, err
			}
			return n.app.QueryPool(instance, poolID)
		})
}

// CmdQueryMarkets lists the simulated venue markets
func CmdQueryMarkets() *cobra.Command {
	return queryCmd("markets", "List the simulated venue markets", cobra.NoArgs,
		func(n *node, _ string, _ []string) (interface{}, error) {
			return n.app.QueryMarkets()
		})
}

// CmdQueryBalance queries an address's base asset balance
func CmdQueryBalance() *cobra.Command {
	return queryCmd("balance [address]", "Show an address's base asset balance", cobra.ExactArgs(1),
		func(n *node, _ string, args []string) (interface{}, error) {
			balance, err := n.app.QueryBalance(args[0])
			if err != nil {
				return nil, err
			}
			return map[string]string{
				"address": args[0],
				"denom":   n.cfg.BaseDenom,
				"amount":  balance.String(),
			}, nil
		})
}

// CmdExportGenesis dumps the committed fund state as genesis
func CmdExportGenesis() *cobra.Command {
	return queryCmd("export", "Export fund state as genesis JSON", cobra.NoArgs,
		func(n *node, _ string, _ []string) (interface{}, error) {
			return n.app.ExportGenesis()
		})
}
