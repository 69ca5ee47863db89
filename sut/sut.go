/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

// Package sut holds the state shared by every managed server and locator
// of one harness run.
package sut

import (
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"cachecat/config"
	"cachecat/gfsh"
	"cachecat/logutil"
	"cachecat/pidfile"
	"cachecat/ports"
)

// DefaultHost is the host servers and locators are reached on.
const DefaultHost = "localhost"

// Manager owns the run root directory, the allocated ports and the CLI
// executor of one harness run.
type Manager struct {
	Host     string
	RootDir  string
	Settings config.Settings
	Ports    *ports.Set
	Gfsh     *gfsh.Executor
	// KillTimeout bounds the wait for a process killed via its pid file.
	KillTimeout time.Duration
	Log         *logrus.Entry
}

// NewManager creates the run root <BaseDir>/<uuid> and a Manager using it.
func NewManager(s config.Settings, log *logrus.Entry) (*Manager, error) {
	s = s.WithDefaults()
	if log == nil {
		log = logutil.NewLogger("cachecat")
	}
	root := filepath.Join(s.BaseDir, uuid.New().String())
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create rootdir %q", root)
	}
	m := &Manager{
		Host:     DefaultHost,
		RootDir:  root,
		Settings: s,
		Ports:    ports.New(nil),
		Gfsh: &gfsh.Executor{
			Path:    s.Gfsh(),
			Dir:     root,
			Timeout: gfsh.DefaultTimeout,
			Log:     log.WithField("gfsh", s.Gfsh()),
		},
		KillTimeout: pidfile.DefaultTimeout,
		Log:         log,
	}
	log.Infof("Test data in %s", root)
	return m, nil
}

// MakeTempDirectory creates a new uniquely named directory below the run
// root.
func (m *Manager) MakeTempDirectory() (string, error) {
	dir := filepath.Join(m.RootDir, uuid.New().String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "failed to make directory %q", dir)
	}
	return dir, nil
}

// Component is the base of a managed server or locator.
type Component struct {
	Number      int
	Name        string
	Dir         string
	Port        int
	PidFileName string
	Manager     *Manager
	Log         *logrus.Entry
}

// PidFile returns the path of the component's pid file.
func (c *Component) PidFile() string {
	return filepath.Join(c.Dir, c.PidFileName)
}

// Run executes the CLI with args and returns its exit code.
func (c *Component) Run(args []string) int {
	return c.Manager.Gfsh.Run(args...)
}

// Kill kills the component through its pid file. Failures are logged and
// never returned.
func (c *Component) Kill() {
	if err := pidfile.Kill(c.PidFile(), c.Manager.KillTimeout, c.Log); err != nil {
		c.Log.WithError(err).Errorf("Failed to kill %s", c.Name)
	}
}

// Stop runs the stop command args and kills the component when the command
// fails.
func (c *Component) Stop(args []string) {
	c.Log.Infof("Stopping %s in directory %s", c.Name, c.Dir)
	if code := c.Run(args); code != 0 {
		c.Log.Warnf("Stop exited with code %d", code)
		c.Kill()
	}
	c.Log.Infof("%s in directory %s stopped", c.Name, c.Dir)
}
