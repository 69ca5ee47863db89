/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

package config

import (
	"os"
	"strconv"

	"github.com/magiconair/properties"
	"github.com/pkg/errors"
)

// PropertiesFile is the name of the file a locator reads from its
// working directory.
const PropertiesFile = "geode.properties"

// TLS properties written for locators started with TLS.
const (
	TLSCiphers = "SSL_RSA_WITH_NULL_MD5"
)

// LocatorProperties describes the geode.properties of one locator.
type LocatorProperties struct {
	// Locators is the peer list in host[port],host[port] form.
	Locators string
	TLS      bool
	// DistributedSystemID starts an isolated locator when nonzero. The
	// peer list is not written in that case.
	DistributedSystemID int
}

// Properties converts p to an ordered properties set.
func (p LocatorProperties) Properties() (*properties.Properties, error) {
	props := properties.NewProperties()
	var pairs [][2]string
	if p.DistributedSystemID != 0 {
		pairs = append(pairs,
			[2]string{"distributed-system-id", strconv.Itoa(p.DistributedSystemID)},
			[2]string{"mcast-port", "0"})
	} else {
		pairs = append(pairs, [2]string{"locators", p.Locators})
		if p.TLS {
			pairs = append(pairs,
				[2]string{"ssl-enabled", "true"},
				[2]string{"ssl-require-authentication", "true"},
				[2]string{"ssl-ciphers", TLSCiphers},
				[2]string{"mcast-port", "0"})
		}
	}
	for _, kv := range pairs {
		if _, _, err := props.Set(kv[0], kv[1]); err != nil {
			return nil, errors.Wrapf(err, "set property %s", kv[0])
		}
	}
	return props, nil
}

// WriteLocatorProperties writes p to path, replacing any existing file.
func WriteLocatorProperties(path string, p LocatorProperties) error {
	props, err := p.Properties()
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrap(err, "locator property file creation failed")
	}
	if _, err := props.Write(f, properties.UTF8); err != nil {
		f.Close() // nolint: errcheck
		return errors.Wrap(err, "write locator properties")
	}
	return f.Close()
}
