/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

package main

import (
	"time"

	"github.com/spf13/cobra"

	"cachecat/logutil"
	"cachecat/pidfile"
)

func newKillCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "kill [pid-file]",
		Short: "Kill the process recorded in a server or locator pid file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			logutil.FatalWithStackTraceIfError(pidfile.Kill(args[0], timeout, newLogger("kill")))
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", pidfile.DefaultTimeout, "Time to wait for the process to exit")
	return cmd
}
