/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

// Package locator manages locator processes.
package locator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"cachecat/config"
	"cachecat/fileutil"
	"cachecat/gfsh"
	"cachecat/pidfile"
	"cachecat/ports"
	"cachecat/sut"
)

// Options configures a locator start.
type Options struct {
	Extra []string
	TLS   bool
	// DistributedSystemID starts a locator that sees no peers and runs
	// its own distributed system when nonzero.
	DistributedSystemID int
}

// Locator is a running locator.
type Locator struct {
	sut.Component
	Options Options
}

// New starts logical locator number in a new working directory below the
// run root.
func New(m *sut.Manager, number int, name string, o Options) (*Locator, error) {
	port, err := m.Ports.LocatorPort(number)
	if err != nil {
		return nil, err
	}
	dir, err := m.MakeTempDirectory()
	if err != nil {
		return nil, err
	}
	l := &Locator{
		Component: sut.Component{
			Number:      number,
			Name:        name,
			Dir:         dir,
			Port:        port,
			PidFileName: pidfile.LocatorFile,
			Manager:     m,
			Log:         m.Log.WithField("locator", number),
		},
		Options: o,
	}
	l.Log.Infof("Starting locator %d in directory %s", number, dir)

	props := config.LocatorProperties{
		Locators:            m.Ports.LocatorList(m.Host, ports.Count),
		TLS:                 o.TLS,
		DistributedSystemID: o.DistributedSystemID,
	}
	if err := config.WriteLocatorProperties(l.PropertiesFile(), props); err != nil {
		return nil, err
	}

	opts := gfsh.LocatorOptions{
		Name:  name,
		Dir:   dir,
		Port:  port,
		Extra: o.Extra,
	}
	if o.DistributedSystemID == 0 {
		opts.JMXPort = m.Ports.JMX
	}
	if o.TLS {
		opts.KeystoreDir = m.Settings.KeystoreDir()
	}
	if code := l.Run(gfsh.StartLocator(opts)); code != 0 {
		l.Kill()
		return nil, errors.Errorf("failed to start locator %d: exit code %d", number, code)
	}
	return l, nil
}

// PropertiesFile returns the path of the locator's geode.properties.
func (l *Locator) PropertiesFile() string {
	return filepath.Join(l.Dir, config.PropertiesFile)
}

// Endpoint returns the host:port clients connect to.
func (l *Locator) Endpoint() string {
	return fmt.Sprintf("%s:%d", l.Manager.Host, l.Port)
}

// Peer returns the host[port] form used in locator lists.
func (l *Locator) Peer() string {
	return fmt.Sprintf("%s[%d]", l.Manager.Host, l.Port)
}

// Stop stops the locator, killing it when the stop command fails. With TLS
// the locator properties are placed in the CLI working directory for the
// duration of the command.
func (l *Locator) Stop(tls bool) error {
	if !tls {
		l.Component.Stop(gfsh.StopLocator(l.Dir, ""))
		return nil
	}

	cwdProps := filepath.Join(l.Manager.Gfsh.Dir, config.PropertiesFile)
	if err := fileutil.CopyFile(l.PropertiesFile(), cwdProps, true); err != nil {
		l.Log.WithError(err).Warn("Failed to copy locator properties")
		l.Component.Stop(gfsh.StopLocator(l.Dir, l.Manager.Settings.KeystoreDir()))
		return err
	}
	defer os.Remove(cwdProps) // nolint: errcheck
	l.Component.Stop(gfsh.StopLocator(l.Dir, l.Manager.Settings.KeystoreDir()))
	return nil
}
