/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo"
	"github.com/spf13/cobra"

	"cachecat"
	"cachecat/logutil"
)

const shutdownTimeout = 10 * time.Second

func newUpCmd() *cobra.Command {
	var clusterFile, statusAddr string
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Start the locators and servers of a cluster file and stop them on interrupt",
		Run: func(cmd *cobra.Command, args []string) {
			logutil.FatalWithStackTraceIfError(up(clusterFile, statusAddr))
		},
	}
	cmd.Flags().StringVarP(&clusterFile, "file", "f", "cluster.yaml", "Cluster file")
	cmd.Flags().StringVar(&statusAddr, "status-addr", "", "Address of the status endpoint, disabled when empty")
	return cmd
}

func up(clusterFile, statusAddr string) error {
	log := newLogger("up")
	cluster, err := LoadCluster(clusterFile)
	if err != nil {
		return err
	}
	c, err := cachecat.New(loadSettings(), log)
	if err != nil {
		return err
	}
	if err := cluster.Start(c); err != nil {
		if terr := c.Teardown(); terr != nil {
			log.WithError(terr).Error("Teardown failed")
		}
		return err
	}
	log.Infof("Cluster up, servers %q, locators %q", c.Endpoints(), c.LocatorEndpoints())

	var e *echo.Echo
	if statusAddr != "" {
		e = newStatusServer(c)
		go func() {
			if err := e.Start(statusAddr); err != nil && err != http.ErrServerClosed {
				log.WithError(err).Error("Status endpoint failed")
			}
		}()
		log.Infof("Status on http://%s%s", statusAddr, StatusPath)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	log.Infof("Received %v, tearing down", <-sig)

	if e != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(ctx); err != nil {
			log.WithError(err).Warn("Status endpoint shutdown failed")
		}
	}
	return c.Teardown()
}
