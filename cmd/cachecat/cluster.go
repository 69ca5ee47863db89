/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

package main

import (
	"io/ioutil"
	"strconv"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"cachecat"
)

// Cluster describes the locators and servers started by "up".
type Cluster struct {
	CacheXMLs     []string      `yaml:"cache_xmls"`
	Locators      []LocatorSpec `yaml:"locators"`
	Servers       []ServerSpec  `yaml:"servers"`
	KeepArtifacts bool          `yaml:"keep_artifacts"`
}

// LocatorSpec describes one locator.
type LocatorSpec struct {
	Number              int    `yaml:"number"`
	Name                string `yaml:"name"`
	Extra               string `yaml:"extra"`
	TLS                 bool   `yaml:"tls"`
	DistributedSystemID int    `yaml:"distributed_system_id"`
}

// ServerSpec describes one server. A server with Locator > 0 joins only
// that locator; otherwise a server with Locators > 0 joins the first
// Locators locators.
type ServerSpec struct {
	Number   int    `yaml:"number"`
	Name     string `yaml:"name"`
	Extra    string `yaml:"extra"`
	Locator  int    `yaml:"locator"`
	Locators int    `yaml:"locators"`
	TLS      bool   `yaml:"tls"`
}

// LoadCluster reads a cluster file.
func LoadCluster(path string) (*Cluster, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read cluster file %q", path)
	}
	return ParseCluster(data)
}

// ParseCluster parses a cluster definition.
func ParseCluster(data []byte) (*Cluster, error) {
	var c Cluster
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return nil, errors.Wrap(err, "parse cluster")
	}
	return &c, nil
}

// Start sets up the servers and starts every locator, then every server.
func (cl *Cluster) Start(c *cachecat.CAT) error {
	c.KeepArtifacts = cl.KeepArtifacts
	if err := c.SetupServers(cl.CacheXMLs...); err != nil {
		return err
	}
	for _, l := range cl.Locators {
		var err error
		if l.DistributedSystemID != 0 {
			err = c.StartLocatorMDS(l.Number, name(l.Name, "locator", l.Number), l.Extra, l.DistributedSystemID)
		} else {
			err = c.StartLocator(l.Number, name(l.Name, "locator", l.Number), l.Extra, l.TLS)
		}
		if err != nil {
			return err
		}
	}
	for _, s := range cl.Servers {
		var err error
		if s.Locator > 0 {
			err = c.StartServerWithLocatorMDS(s.Number, name(s.Name, "server", s.Number), s.Locator, s.Extra)
		} else if s.Locators > 0 {
			err = c.StartServerWithLocators(s.Number, name(s.Name, "server", s.Number), s.Locators, s.Extra, s.TLS)
		} else {
			err = c.StartServer(s.Number, name(s.Name, "server", s.Number), s.Extra)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func name(n, kind string, number int) string {
	if n != "" {
		return n
	}
	return kind + strconv.Itoa(number)
}
