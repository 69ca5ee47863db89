/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"

	"cachecat/logutil"
	"cachecat/ports"
)

func newPortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "Allocate a port set and print it as YAML",
		Run: func(cmd *cobra.Command, args []string) {
			logutil.FatalWithStackTraceIfError(printPorts(os.Stdout, ports.New(nil)))
		},
	}
}

func printPorts(w io.Writer, set *ports.Set) error {
	if err := set.Allocate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(set)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
