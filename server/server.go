/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

// Package server manages cache server processes.
package server

import (
	"fmt"

	"github.com/pkg/errors"

	"cachecat/gfsh"
	"cachecat/pidfile"
	"cachecat/sut"
)

// Server is a running cache server.
type Server struct {
	sut.Component
	CacheXML string
}

// New starts logical server number in a new working directory below the
// run root. A failed start kills whatever the pid file names and returns an
// error carrying the server number and exit code.
func New(m *sut.Manager, number int, name, cacheXML string, extra []string) (*Server, error) {
	port, err := m.Ports.Server(number)
	if err != nil {
		return nil, err
	}
	dir, err := m.MakeTempDirectory()
	if err != nil {
		return nil, err
	}
	s := &Server{
		Component: sut.Component{
			Number:      number,
			Name:        name,
			Dir:         dir,
			Port:        port,
			PidFileName: pidfile.ServerFile,
			Manager:     m,
			Log:         m.Log.WithField("server", number),
		},
		CacheXML: cacheXML,
	}
	s.Log.Infof("Starting server %d in directory %s", number, dir)

	args := gfsh.StartServer(gfsh.ServerOptions{
		Name:             name,
		CacheXML:         cacheXML,
		Port:             port,
		Classpath:        m.Settings.Classpath,
		LogLevel:         m.Settings.LogLevel,
		SecurityLogLevel: m.Settings.SecurityLogLevel,
		Dir:              dir,
		Extra:            extra,
	})
	if code := s.Run(args); code != 0 {
		s.Kill()
		return nil, errors.Errorf("failed to start server %d: exit code %d", number, code)
	}
	return s, nil
}

// Endpoint returns the host:port clients connect to.
func (s *Server) Endpoint() string {
	return fmt.Sprintf("%s:%d", s.Manager.Host, s.Port)
}

// Stop stops the server, killing it when the stop command fails.
func (s *Server) Stop() {
	s.Component.Stop(gfsh.StopServer(s.Dir))
}
