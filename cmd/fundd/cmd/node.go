package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cobra"

	"github.com/openalpha/yieldfund/app"
)

// node is an opened home directory: the config, the goleveldb store and
// the app on top of it.
type node struct {
	home   string
	cfg    app.Config
	db     dbm.DB
	app    *app.FundApp
	logger log.Logger
}

func newLogger(level string) (log.Logger, error) {
	if level == "" {
		level = "info"
	}
	filter, err := log.ParseLogLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewLogger(os.Stderr, log.FilterOption(filter)), nil
}

// openNode loads the config and opens the store. A store with no committed
// version is initialized from <home>/config/genesis.json.
func openNode(cmd *cobra.Command) (*node, error) {
	home, err := homeDir(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(cmd, home)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	db, err := dbm.NewDB("fund", dbm.GoLevelDBBackend, dataDir(home))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	fundApp, err := app.NewFundApp(db, logger, cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	if !fundApp.Initialized() {
		gen, err := app.LoadGenesis(genesisPath(home))
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to load genesis: %w", err)
		}
		if err := fundApp.InitChain(gen); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize chain: %w", err)
		}
		logger.Info("Initialized from genesis", "path", genesisPath(home))
	}

	return &node{home: home, cfg: cfg, db: db, app: fundApp, logger: logger}, nil
}

func (n *node) Close() error {
	return n.db.Close()
}

// withNode opens the node for the duration of fn
func withNode(cmd *cobra.Command, fn func(n *node) error) error {
	n, err := openNode(cmd)
	if err != nil {
		return err
	}
	defer n.Close()
	return fn(n)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	bz, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}
