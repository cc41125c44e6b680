package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/MixinNetwork/launchpad/runtime"
	"github.com/MixinNetwork/launchpad/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const appName = "launchpad"

type appState struct {
	Viper *viper.Viper
	Log   *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &appState{Viper: viper.New(), Log: zap.NewNop()}
	if err := rootCmd(a).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:          appName,
		Short:        "Collection launchpad with NFT gated treasury governance",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(a.Viper.GetBool(flagDebug))
			if err != nil {
				return err
			}
			a.Log = log
			return nil
		},
	}
	cmd.AddCommand(
		collectionCmd(a),
		fundCmd(a),
		proposalCmd(a),
		endowCmd(a),
		serveCmd(a),
	)
	return homeFlags(a.Viper, cmd)
}

func newLogger(debug bool) (*zap.Logger, error) {
	conf := zap.NewProductionConfig()
	conf.Encoding = "console"
	conf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		conf.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return conf.Build()
}

func expandPath(p string) string {
	if strings.HasPrefix(p, "~/") {
		usr, _ := user.Current()
		p = filepath.Join(usr.HomeDir, p[2:])
	}
	return p
}

func (a *appState) configuration() (*runtime.Configuration, error) {
	cp := expandPath(a.Viper.GetString(flagConfig))
	if _, err := os.Stat(cp); os.IsNotExist(err) {
		a.Log.Info("Configuration file missing, using defaults", zap.String("path", cp))
		return runtime.DefaultConfiguration(), nil
	}
	return runtime.Setup(cp)
}

// openRuntime opens the state directory and applies genesis on a fresh
// chain. The returned close function releases the database.
func (a *appState) openRuntime(ctx context.Context) (*runtime.Runtime, *prometheus.Registry, func(), error) {
	conf, err := a.configuration()
	if err != nil {
		return nil, nil, nil, err
	}
	bs, err := store.OpenBadger(ctx, expandPath(a.Viper.GetString(flagHome)), a.Log)
	if err != nil {
		return nil, nil, nil, err
	}
	reg := prometheus.NewRegistry()
	rt, err := runtime.New(bs, conf, reg, a.Log)
	if err != nil {
		bs.Close()
		return nil, nil, nil, err
	}
	err = rt.Genesis(ctx)
	if err != nil {
		bs.Close()
		return nil, nil, nil, err
	}
	return rt, reg, func() { bs.Close() }, nil
}

// withRuntime runs fn against a freshly opened runtime and prints what it
// returns as JSON.
func (a *appState) withRuntime(cmd *cobra.Command, fn func(ctx context.Context, rt *runtime.Runtime) (any, error)) error {
	ctx := cmd.Context()
	rt, _, closeStore, err := a.openRuntime(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	out, err := fn(ctx, rt)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"block": rt.Block(), "result": out})
}
