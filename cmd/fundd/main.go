package main

import (
	"os"

	"cosmossdk.io/log"

	"github.com/openalpha/yieldfund/cmd/fundd/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		log.NewLogger(os.Stderr).Error("failure when running fundd", "err", err)
		os.Exit(1)
	}
}
