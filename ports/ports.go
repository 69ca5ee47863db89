/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

// Package ports allocates the TCP ports used by one harness run: four
// cache-server ports, four locator ports and the JMX manager port.
package ports

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Count is the number of logical servers and locators a Set can address.
const Count = 4

// ErrOutOfRange is returned when a logical number has no port slot.
var ErrOutOfRange = errors.New("logical number out of range")

// ErrNotAllocated is returned for a port slot that has not been allocated.
var ErrNotAllocated = errors.New("port not allocated")

// Source returns one currently free TCP port.
type Source func() (int, error)

// Set holds the allocated ports. A zero slot is unallocated; once a slot
// is allocated it is never reallocated.
type Set struct {
	Host    [Count]int `yaml:"host" json:"host"`
	Locator [Count]int `yaml:"locator" json:"locator"`
	JMX     int        `yaml:"jmx" json:"jmx"`

	source Source
}

// New creates an empty Set drawing from source, or from the OS when source
// is nil.
func New(source Source) *Set {
	if source == nil {
		source = FreePort
	}
	return &Set{source: source}
}

// FreePort asks the OS for a free port by binding port 0 on the loopback.
func FreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, errors.Wrap(err, "listen for free port")
	}
	defer l.Close() // nolint: errcheck
	return l.Addr().(*net.TCPAddr).Port, nil
}

// Allocate fills every slot still at zero. It is idempotent.
func (s *Set) Allocate() error {
	if s.source == nil {
		s.source = FreePort
	}
	if err := s.fill(s.Host[:]); err != nil {
		return errors.Wrap(err, "allocate host ports")
	}
	if err := s.fill(s.Locator[:]); err != nil {
		return errors.Wrap(err, "allocate locator ports")
	}
	if s.JMX == 0 {
		p, err := s.source()
		if err != nil {
			return errors.Wrap(err, "allocate jmx manager port")
		}
		s.JMX = p
	}
	return nil
}

// fill allocates every zero slot of group. Nonzero slots are kept, and on
// failure the group is left unchanged.
func (s *Set) fill(group []int) error {
	allocated := make([]int, len(group))
	copy(allocated, group)
	for i := range allocated {
		if allocated[i] != 0 {
			continue
		}
		p, err := s.source()
		if err != nil {
			return err
		}
		allocated[i] = p
	}
	copy(group, allocated)
	return nil
}

// Override pins ports explicitly. Zero arguments leave the slot untouched.
// The remaining zero slots of a group given any pinned port are allocated
// so that the group is complete.
func (s *Set) Override(host []int, locator []int) error {
	if s.source == nil {
		s.source = FreePort
	}
	if pin(s.Host[:], host) {
		if err := s.fill(s.Host[:]); err != nil {
			return errors.Wrap(err, "allocate host ports")
		}
	}
	if pin(s.Locator[:], locator) {
		if err := s.fill(s.Locator[:]); err != nil {
			return errors.Wrap(err, "allocate locator ports")
		}
	}
	return nil
}

func pin(group []int, values []int) bool {
	var pinned bool
	for i := 0; i < len(values) && i < len(group); i++ {
		if values[i] != 0 {
			group[i] = values[i]
			pinned = true
		}
	}
	return pinned
}

// Server returns the port of logical server n (1..4).
func (s *Set) Server(n int) (int, error) {
	if n < 1 || n > Count {
		return 0, errors.Wrapf(ErrOutOfRange, "server %d", n)
	}
	if s.Host[n-1] == 0 {
		return 0, errors.Wrapf(ErrNotAllocated, "server %d", n)
	}
	return s.Host[n-1], nil
}

// LocatorPort returns the port of logical locator n (1..4).
func (s *Set) LocatorPort(n int) (int, error) {
	if n < 1 || n > Count {
		return 0, errors.Wrapf(ErrOutOfRange, "locator %d", n)
	}
	if s.Locator[n-1] == 0 {
		return 0, errors.Wrapf(ErrNotAllocated, "locator %d", n)
	}
	return s.Locator[n-1], nil
}

// Tokens returns the template placeholders and their values,
// HOST_PORT1..4 followed by LOC_PORT1..4.
func (s *Set) Tokens() []string {
	var pairs []string
	for i, p := range s.Host {
		pairs = append(pairs, fmt.Sprintf("HOST_PORT%d", i+1), strconv.Itoa(p))
	}
	for i, p := range s.Locator {
		pairs = append(pairs, fmt.Sprintf("LOC_PORT%d", i+1), strconv.Itoa(p))
	}
	return pairs
}

// LocatorList renders the first n locator ports as host[port] entries
// joined with commas, the format used by --locators and geode.properties.
func (s *Set) LocatorList(host string, n int) string {
	if n > Count {
		n = Count
	}
	var entries []string
	for i := 0; i < n; i++ {
		entries = append(entries, fmt.Sprintf("%s[%d]", host, s.Locator[i]))
	}
	return strings.Join(entries, ",")
}
