package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openalpha/yieldfund/app"
)

const (
	flagHome     = "home"
	flagLogLevel = "log-level"
	flagInstance = "instance"
)

// Version is set at build time
var Version = "v0.1.0"

// NewRootCmd creates a new root command for fundd
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fundd",
		Short: "Yield fund node",
		Long: `fundd runs a pooled-capital yield fund: a share ledger that fronts a
controller spreading base asset across lending venues.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())
			return nil
		},
	}

	rootCmd.PersistentFlags().String(flagHome, app.DefaultNodeHome, "node home directory")
	rootCmd.PersistentFlags().String(flagLogLevel, "", "log level, e.g. info or fundmanager:debug,*:info")

	initRootCmd(rootCmd)
	return rootCmd
}

func initRootCmd(rootCmd *cobra.Command) {
	rootCmd.AddCommand(
		InitCmd(),
		ServeCmd(),
		GetTxCmd(),
		GetQueryCmd(),
		GetSimCmd(),
		VersionCmd(),
	)
}

// VersionCmd returns a command to print the version
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("fundd " + Version)
		},
	}
}
