package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/openalpha/yieldfund/app"
)

// GetTxCmd returns the transaction commands
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx [module] [msg] [json-body]",
		Short: "Deliver a message to the local node",
		Long: `Deliver a JSON encoded message and commit it. Pass - as the body to read
it from stdin.

Example:
  fundd tx fundmanager deposit '{"depositor":"cosmos1...","amount":"1000000000000000000"}'
  fundd tx fundcontroller deposit_to_pool --instance fundcontroller-v2 - < body.json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd, args[2])
			if err != nil {
				return err
			}
			instance, _ := cmd.Flags().GetString(flagInstance)
			return deliver(cmd, app.TxRequest{
				Module:   args[0],
				Msg:      args[1],
				Instance: instance,
				Body:     body,
			})
		},
	}
	cmd.Flags().String(flagInstance, "", "controller or manager name or address (defaults to the live one)")
	cmd.AddCommand(CmdListRoutes())
	return cmd
}

// CmdListRoutes prints every module and message the node accepts
func CmdListRoutes() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the accepted modules and messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			routes := app.Routes()
			modules := make([]string, 0, len(routes))
			for module := range routes {
				modules = append(modules, module)
			}
			sort.Strings(modules)
			for _, module := range modules {
				for _, msg := range routes[module] {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", module, msg)
				}
			}
			return nil
		},
	}
}

func readBody(cmd *cobra.Command, arg string) (json.RawMessage, error) {
	bz := []byte(arg)
	if arg == "-" {
		var err error
		if bz, err = io.ReadAll(cmd.InOrStdin()); err != nil {
			return nil, err
		}
	}
	if !json.Valid(bz) {
		return nil, fmt.Errorf("message body is not valid JSON")
	}
	return bz, nil
}

// deliver commits req on the local node and prints the result
func deliver(cmd *cobra.Command, req app.TxRequest) error {
	return withNode(cmd, func(n *node) error {
		res, err := n.app.DeliverTx(req)
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	})
}
