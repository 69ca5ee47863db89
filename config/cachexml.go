/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

package config

import (
	"strconv"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// ErrNoCacheServer is returned when a cache XML declares no cache-server.
var ErrNoCacheServer = errors.New("no cache-server element")

// CacheServerPort returns the port of the first cache-server element of a
// rendered cache XML file, whatever namespace the document uses.
func CacheServerPort(path string) (int, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return 0, errors.Wrapf(err, "read cache xml %q", path)
	}
	server := doc.FindElement("//cache-server")
	if server == nil {
		return 0, errors.Wrapf(ErrNoCacheServer, "cache xml %q", path)
	}
	port, err := strconv.Atoi(server.SelectAttrValue("port", ""))
	if err != nil {
		return 0, errors.Wrapf(err, "cache-server port in %q", path)
	}
	return port, nil
}
