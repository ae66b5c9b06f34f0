package commands

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"chatvault/internal/app"
	"chatvault/internal/services/chatroom"
)

var (
	configFile string
	cfg        app.Config
	wire       *app.Wire
)

// Execute runs the CLI with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	v := app.NewViper()
	wire = nil

	root := &cobra.Command{
		Use:          "chatvault",
		Short:        "Local chat-room storage with encrypted room passwords",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = app.LoadConfig(v, configFile)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if wire == nil {
				return nil
			}
			err := wire.Close()
			wire = nil
			return err
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default ./chatvault.yaml or ~/.chatvault/chatvault.yaml)")
	pf.String("home", "", "data dir (default ~/.chatvault)")
	pf.StringP("passphrase", "p", "", "master passphrase protecting room passwords")
	pf.String("backend", "", "storage backend: file, memory, redis, sqlite, postgres")
	for _, name := range []string{"home", "passphrase", "backend"} {
		bindFlag(v, root, name)
	}

	root.AddCommand(roomCmd(), memberCmd(), roomIDCmd(), keyCmd(), secretCmd())
	return root
}

func bindFlag(v *viper.Viper, root *cobra.Command, name string) {
	_ = v.BindPFlag(name, root.PersistentFlags().Lookup(name))
}

// rooms opens storage on first use.
func rooms(cmd *cobra.Command) (*chatroom.Service, error) {
	if wire != nil {
		return wire.Rooms, nil
	}
	logger := app.NewLogger(cfg.Environment, cmd.ErrOrStderr())
	if cfg.Passphrase == "" {
		logger.Warn("no master passphrase set; room passwords are protected by the pin only",
			"hint", "-p or "+app.EnvPrefix+"_PASSPHRASE")
	}
	w, err := app.NewWire(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, err
	}
	wire = w
	return w.Rooms, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
