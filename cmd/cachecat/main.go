/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

// Command cachecat starts, inspects and cleans up cache servers and locators
// outside of a test binary.
package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"cachecat/config"
	"cachecat/logutil"
)

var configFile string

func init() {
	cobra.OnInitialize(initConfig)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cachecat",
		Short: "Cache server and locator life cycle management command",
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML file with harness settings")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level")) // nolint: errcheck
	rootCmd.PersistentFlags().String("log-file", "", "Append logs to this file instead of stdout")
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file")) // nolint: errcheck

	rootCmd.AddCommand(newUpCmd(), newKillCmd(), newRenderCmd(), newPortsCmd())
	return rootCmd
}

func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			logutil.FatalWithStackTrace(err)
		}
	}
	if err := logutil.Configure(viper.GetString("log_level")); err != nil {
		logutil.FatalWithStackTrace(err)
	}
}

func loadSettings() config.Settings {
	s, err := config.Load(viper.GetViper())
	logutil.FatalWithStackTraceIfError(err)
	return s
}

// newLogger returns a logger writing to the configured log file, or stdout.
func newLogger(name string) *logrus.Entry {
	if f := viper.GetString("log_file"); f != "" {
		return logutil.NewFileLogger(name, f)
	}
	return logutil.NewLogger(name)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logutil.FatalWithStackTrace(err)
	}
}
