/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

// Package cachecat provides an integration testing harness for cache
// clients. Each cache server and locator runs as a separate process started
// through the gfsh control-plane CLI in its own working directory. The
// harness handles port allocation, configuration templates and the life
// cycle management of these processes.
//
// A CAT is not safe for concurrent use. Each test run owns one.
package cachecat

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"cachecat/config"
	"cachecat/errutil"
	"cachecat/fileutil"
	"cachecat/gfsh"
	"cachecat/locator"
	"cachecat/ports"
	"cachecat/server"
	"cachecat/sut"
)

// Errors returned by CAT operations.
var (
	ErrNotRunning      = errors.New("instance is not running")
	ErrUnknownInstance = errors.New("unknown instance number")
	ErrNotConfigured   = errors.New("servers are not set up")
)

// CAT is the main place-holder object of all servers and locators managed.
type CAT struct {
	SUT      *sut.Manager
	Servers  map[int]*server.Server
	Locators map[int]*locator.Locator
	// LocatorFirst and LocatorSecond are the endpoints of the locators of
	// the first and second distributed systems started by StartLocatorMDS.
	LocatorFirst  string
	LocatorSecond string
	// KeepArtifacts leaves the run root in place on Teardown.
	KeepArtifacts bool

	cacheXMLs []string
	endpoints []string
	locators  []string
}

// New creates and initializes a CAT instance and its run root directory.
func New(s config.Settings, log *logrus.Entry) (*CAT, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	m, err := sut.NewManager(s, log)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create harness")
	}
	return &CAT{
		SUT:      m,
		Servers:  map[int]*server.Server{},
		Locators: map[int]*locator.Locator{},
	}, nil
}

// Remote reports whether servers are managed externally. Start and stop
// operations are no-ops then.
func (c *CAT) Remote() bool {
	return c.SUT.Settings.Remote()
}

// AllocatePorts allocates every port group still unallocated.
func (c *CAT) AllocatePorts() error {
	return c.SUT.Ports.Allocate()
}

// PrepareConfig renders template with the allocated ports into a new
// directory below the run root and returns the rendered path.
func (c *CAT) PrepareConfig(template string) (string, error) {
	if err := c.AllocatePorts(); err != nil {
		return "", err
	}
	dir, err := c.SUT.MakeTempDirectory()
	if err != nil {
		return "", err
	}
	return config.Render(template, dir, c.SUT.Ports.Tokens())
}

// SetupServers renders one cache XML per logical server, server n using
// cacheXMLs[n-1], and records the server endpoints. In remote mode the
// endpoints are the configured endpoint list.
func (c *CAT) SetupServers(cacheXMLs ...string) error {
	if err := c.AllocatePorts(); err != nil {
		return err
	}
	if c.Remote() {
		c.endpoints = []string{c.SUT.Settings.InstallDir}
		c.SUT.Log.Infof("Remote server endpoints: %s", c.Endpoints())
		return nil
	}

	rendered := make([]string, 0, len(cacheXMLs))
	for i, xml := range cacheXMLs {
		if strings.TrimSpace(xml) == "" {
			return errors.Errorf("cache xml is not set for server %d", i+1)
		}
		path, err := c.PrepareConfig(xml)
		if err != nil {
			return err
		}
		port, err := config.CacheServerPort(path)
		if err != nil {
			return err
		}
		rendered = append(rendered, path)
		c.endpoints = append(c.endpoints, endpoint(c.SUT.Host, port))
	}
	c.cacheXMLs = rendered
	c.SUT.Log.Infof("Server endpoints: %s", c.Endpoints())
	return nil
}

// StartLocator starts logical locator number with the peer list of all
// locator ports. extra is split into arguments the way a shell does.
func (c *CAT) StartLocator(number int, name, extra string, tls bool) error {
	return c.startLocator(number, name, extra, locator.Options{TLS: tls})
}

// StartLocatorMDS starts logical locator number as the only locator of
// distributed system dsID.
func (c *CAT) StartLocatorMDS(number int, name, extra string, dsID int) error {
	if dsID == 0 {
		return errors.New("distributed system id must be nonzero")
	}
	return c.startLocator(number, name, extra, locator.Options{DistributedSystemID: dsID})
}

func (c *CAT) startLocator(number int, name, extra string, o locator.Options) error {
	if c.Remote() {
		return nil
	}
	if number < 1 || number > ports.Count {
		return errors.Wrapf(ErrUnknownInstance, "locator %d", number)
	}
	if err := c.AllocatePorts(); err != nil {
		return err
	}
	args, err := gfsh.SplitArgs(extra)
	if err != nil {
		return err
	}
	o.Extra = args

	l, err := locator.New(c.SUT, number, name, o)
	if err != nil {
		return err
	}
	c.Locators[number] = l

	switch {
	case o.DistributedSystemID == 1:
		c.LocatorFirst = l.Endpoint()
		c.locators = append(c.locators, l.Peer())
	case o.DistributedSystemID != 0:
		c.LocatorSecond = l.Endpoint()
		c.locators = append(c.locators, l.Peer())
	default:
		c.locators = append(c.locators, l.Endpoint())
	}
	c.SUT.Log.Infof("Locator endpoints: %s", c.LocatorEndpoints())
	return nil
}

// StartServer starts logical server number with the cache XML rendered for
// it by SetupServers.
func (c *CAT) StartServer(number int, name, extra string) error {
	args, err := gfsh.SplitArgs(extra)
	if err != nil {
		return err
	}
	return c.startServer(number, name, args)
}

// StartServerWithLocators starts logical server number joined to the first
// numLocators locators.
func (c *CAT) StartServerWithLocators(number int, name string, numLocators int, extra string, tls bool) error {
	args, err := gfsh.SplitArgs(extra)
	if err != nil {
		return err
	}
	args = append(args, gfsh.LocatorsArg(c.SUT.Ports.LocatorList(c.SUT.Host, numLocators)))
	if tls {
		args = append(args, gfsh.ServerTLSArgs(c.SUT.Settings.KeystoreDir())...)
	}
	return c.startServer(number, name, args)
}

// StartServerWithLocatorMDS starts logical server number joined only to
// logical locator locatorNumber, the locator of one distributed system
// started by StartLocatorMDS.
func (c *CAT) StartServerWithLocatorMDS(number int, name string, locatorNumber int, extra string) error {
	if c.Remote() {
		return nil
	}
	if locatorNumber < 1 || locatorNumber > ports.Count {
		return errors.Wrapf(ErrUnknownInstance, "locator %d", locatorNumber)
	}
	args, err := gfsh.SplitArgs(extra)
	if err != nil {
		return err
	}
	port, err := c.SUT.Ports.LocatorPort(locatorNumber)
	if err != nil {
		return err
	}
	args = append(args, gfsh.LocatorsArg(peer(c.SUT.Host, port)))
	return c.startServer(number, name, args)
}

func (c *CAT) startServer(number int, name string, args []string) error {
	if c.Remote() {
		return nil
	}
	if number < 1 || number > ports.Count {
		return errors.Wrapf(ErrUnknownInstance, "server %d", number)
	}
	if c.cacheXMLs == nil || number > len(c.cacheXMLs) {
		return errors.Wrapf(ErrNotConfigured, "could not find cache xml for server %d", number)
	}
	s, err := server.New(c.SUT, number, name, c.cacheXMLs[number-1], args)
	if err != nil {
		return err
	}
	c.Servers[number] = s
	return nil
}

// StopServer stops logical server number. A server that is not running is
// an error only when verify is set.
func (c *CAT) StopServer(number int, verify bool) error {
	if c.Remote() {
		return nil
	}
	s, ok := c.Servers[number]
	if !ok {
		if verify {
			return errors.Wrapf(ErrNotRunning, "stop server %d", number)
		}
		return nil
	}
	s.Stop()
	delete(c.Servers, number)
	return nil
}

// StopLocator stops logical locator number. A locator that is not running
// is an error only when verify is set.
func (c *CAT) StopLocator(number int, verify, tls bool) error {
	if c.Remote() {
		return nil
	}
	l, ok := c.Locators[number]
	if !ok {
		if verify {
			return errors.Wrapf(ErrNotRunning, "stop locator %d", number)
		}
		return nil
	}
	err := l.Stop(tls)
	delete(c.Locators, number)
	return err
}

// StopServers stops every running server in ascending number order.
func (c *CAT) StopServers() error {
	var errs errutil.MultiError
	var numbers []int
	for n := range c.Servers {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	for _, n := range numbers {
		errs = errs.Append(c.StopServer(n, true))
		c.SUT.Log.Infof("Cacheserver %d stopped", n)
	}
	c.Servers = map[int]*server.Server{}
	return errs.ErrorOrNil()
}

// StopLocators stops every running locator in ascending number order, each
// with the TLS setting it was started with.
func (c *CAT) StopLocators() error {
	var errs errutil.MultiError
	var numbers []int
	for n := range c.Locators {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	for _, n := range numbers {
		errs = errs.Append(c.StopLocator(n, true, c.Locators[n].Options.TLS))
		c.SUT.Log.Infof("Locator %d stopped", n)
	}
	c.Locators = map[int]*locator.Locator{}
	return errs.ErrorOrNil()
}

// ClearEndpoints forgets the server endpoints.
func (c *CAT) ClearEndpoints() {
	c.endpoints = nil
}

// ClearLocators forgets the locator endpoints.
func (c *CAT) ClearLocators() {
	c.locators = nil
}

// EndTest stops all servers and locators and clears the endpoints.
func (c *CAT) EndTest() error {
	c.SUT.Log.Info("Cache harness end test")
	var errs errutil.MultiError
	errs = errs.Append(c.StopServers())
	errs = errs.Append(c.StopLocators())
	c.ClearEndpoints()
	c.ClearLocators()
	return errs.ErrorOrNil()
}

// Teardown ends the test and removes the run root unless KeepArtifacts is
// set.
func (c *CAT) Teardown() error {
	var errs errutil.MultiError
	errs = errs.Append(c.EndTest())
	if c.KeepArtifacts {
		c.SUT.Log.Infof("Test data kept in %s", c.SUT.RootDir)
	} else {
		errs = errs.Append(fileutil.ForceRemove(c.SUT.RootDir))
	}
	return errs.ErrorOrNil()
}

// Endpoints returns the comma separated server endpoints.
func (c *CAT) Endpoints() string {
	return strings.Join(c.endpoints, ",")
}

// LocatorEndpoints returns the comma separated locator endpoints in start
// order.
func (c *CAT) LocatorEndpoints() string {
	return strings.Join(c.locators, ",")
}

// ServerDir returns the working directory of running server number.
func (c *CAT) ServerDir(number int) (string, error) {
	s, ok := c.Servers[number]
	if !ok {
		return "", errors.Wrapf(ErrNotRunning, "server %d", number)
	}
	return s.Dir, nil
}

// LocatorDir returns the working directory of running locator number.
func (c *CAT) LocatorDir(number int) (string, error) {
	l, ok := c.Locators[number]
	if !ok {
		return "", errors.Wrapf(ErrNotRunning, "locator %d", number)
	}
	return l.Dir, nil
}

func peer(host string, port int) string {
	return host + "[" + strconv.Itoa(port) + "]"
}

func endpoint(host string, port int) string {
	return host + ":" + strconv.Itoa(port)
}
