/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"cachecat/config"
	"cachecat/logutil"
	"cachecat/sut"
)

func newRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render [template]",
		Short: "Render a configuration template with newly allocated ports",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			logutil.FatalWithStackTraceIfError(render(os.Stdout, loadSettings(), args[0]))
		},
	}
}

func render(w io.Writer, s config.Settings, template string) error {
	m, err := sut.NewManager(s, newLogger("render"))
	if err != nil {
		return err
	}
	if err := m.Ports.Allocate(); err != nil {
		return err
	}
	dir, err := m.MakeTempDirectory()
	if err != nil {
		return err
	}
	path, err := config.Render(template, dir, m.Ports.Tokens())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, path)
	return err
}
