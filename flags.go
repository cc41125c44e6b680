package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	flagHome         = "home"
	flagConfig       = "config"
	flagDebug        = "debug"
	flagListen       = "listen"
	flagDatabase     = "database"
	flagGormLogLevel = "gorm-log-level"
	flagDescription  = "description"
	flagStart        = "start"
	flagEnd          = "end"
	flagExpiredAt    = "expired-at"
	flagReject       = "reject"
)

const (
	defaultHome         = "~/.mixin/launchpad/data"
	defaultConfig       = "~/.mixin/launchpad/config.toml"
	defaultListen       = "localhost:7001"
	defaultGormLogLevel = "silent"
)

func homeFlags(v *viper.Viper, cmd *cobra.Command) *cobra.Command {
	cmd.PersistentFlags().StringP(flagHome, "d", defaultHome, "state database directory path")
	if err := v.BindPFlag(flagHome, cmd.PersistentFlags().Lookup(flagHome)); err != nil {
		panic(err)
	}
	cmd.PersistentFlags().StringP(flagConfig, "c", defaultConfig, "configuration file path, defaults apply when missing")
	if err := v.BindPFlag(flagConfig, cmd.PersistentFlags().Lookup(flagConfig)); err != nil {
		panic(err)
	}
	cmd.PersistentFlags().Bool(flagDebug, false, "enable debug logging")
	if err := v.BindPFlag(flagDebug, cmd.PersistentFlags().Lookup(flagDebug)); err != nil {
		panic(err)
	}
	return cmd
}

func listenFlag(v *viper.Viper, cmd *cobra.Command) *cobra.Command {
	cmd.Flags().StringP(flagListen, "l", defaultListen, "address the HTTP API listens on")
	if err := v.BindPFlag(flagListen, cmd.Flags().Lookup(flagListen)); err != nil {
		panic(err)
	}
	return cmd
}

func databaseFlags(v *viper.Viper, cmd *cobra.Command) *cobra.Command {
	cmd.Flags().String(flagDatabase, "", "postgres connection string of the event archive. Set empty to disable archiving.")
	if err := v.BindPFlag(flagDatabase, cmd.Flags().Lookup(flagDatabase)); err != nil {
		panic(err)
	}
	cmd.Flags().String(flagGormLogLevel, defaultGormLogLevel, "gorm log level. Valid values are silent, error, warn, and info.")
	if err := v.BindPFlag(flagGormLogLevel, cmd.Flags().Lookup(flagGormLogLevel)); err != nil {
		panic(err)
	}
	return cmd
}
