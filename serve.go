package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MixinNetwork/launchpad/api"
	"github.com/MixinNetwork/launchpad/archive"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm/logger"
)

func serveCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Serve queries and extrinsics over HTTP",
		Args:    cobra.NoArgs,
		Example: strings.TrimSpace(fmt.Sprintf(`
$ %s serve --listen localhost:7001
$ %s serve --database "host=localhost user=launchpad dbname=launchpad sslmode=disable"`, appName, appName)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, reg, closeStore, err := a.openRuntime(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			var events api.EventArchive
			if conn := a.Viper.GetString(flagDatabase); conn != "" {
				level, err := gormLogLevel(a.Viper.GetString(flagGormLogLevel))
				if err != nil {
					return err
				}
				db, err := archive.ConnectToDatabase(conn, level)
				if err != nil {
					return err
				}
				arc := archive.New(db, a.Log)
				if err := arc.MigrateSchema(); err != nil {
					return err
				}
				rt.AddSink(arc)
				events = arc
				a.Log.Info("Archiving events to postgres")
			}

			gin.SetMode(gin.ReleaseMode)
			srv := &http.Server{
				Addr:              a.Viper.GetString(flagListen),
				Handler:           api.New(rt, events, reg, a.Log),
				ReadHeaderTimeout: 10 * time.Second,
			}

			eg, egCtx := errgroup.WithContext(ctx)
			eg.Go(func() error {
				a.Log.Info("API listening", zap.String("addr", srv.Addr), zap.Uint64("block", rt.Block()))
				err := srv.ListenAndServe()
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			})
			eg.Go(func() error {
				<-egCtx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return eg.Wait()
		},
	}
	return databaseFlags(a.Viper, listenFlag(a.Viper, cmd))
}

func gormLogLevel(s string) (logger.LogLevel, error) {
	switch s {
	case "silent":
		return logger.Silent, nil
	case "error":
		return logger.Error, nil
	case "warn":
		return logger.Warn, nil
	case "info":
		return logger.Info, nil
	}
	return 0, fmt.Errorf("invalid gorm log level %q", s)
}
