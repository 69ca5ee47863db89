/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

package main

import (
	"net/http"
	"sort"

	"github.com/labstack/echo"

	"cachecat"
	"cachecat/ports"
)

// StatusPath serves the harness status.
const StatusPath = "/status"

// Status is the JSON body served on StatusPath.
type Status struct {
	RootDir          string     `json:"root_dir"`
	Remote           bool       `json:"remote"`
	Ports            *ports.Set `json:"ports"`
	Endpoints        string     `json:"endpoints"`
	LocatorEndpoints string     `json:"locator_endpoints"`
	Servers          []Instance `json:"servers"`
	Locators         []Instance `json:"locators"`
}

// Instance is one running server or locator.
type Instance struct {
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Dir      string `json:"dir"`
	Endpoint string `json:"endpoint"`
}

func newStatus(c *cachecat.CAT) Status {
	s := Status{
		RootDir:          c.SUT.RootDir,
		Remote:           c.Remote(),
		Ports:            c.SUT.Ports,
		Endpoints:        c.Endpoints(),
		LocatorEndpoints: c.LocatorEndpoints(),
		Servers:          []Instance{},
		Locators:         []Instance{},
	}
	for _, srv := range c.Servers {
		s.Servers = append(s.Servers, Instance{Number: srv.Number, Name: srv.Name, Dir: srv.Dir, Endpoint: srv.Endpoint()})
	}
	for _, l := range c.Locators {
		s.Locators = append(s.Locators, Instance{Number: l.Number, Name: l.Name, Dir: l.Dir, Endpoint: l.Endpoint()})
	}
	sort.Slice(s.Servers, func(i, j int) bool { return s.Servers[i].Number < s.Servers[j].Number })
	sort.Slice(s.Locators, func(i, j int) bool { return s.Locators[i].Number < s.Locators[j].Number })
	return s
}

func newStatusServer(c *cachecat.CAT) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET(StatusPath, func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, newStatus(c))
	})
	return e
}
