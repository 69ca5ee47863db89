/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

// Package retry polls a condition until it settles or a deadline passes.
package retry

import (
	"time"

	"github.com/pkg/errors"
)

// ErrTimeout is returned by Do when the timeout elapses while f still asks
// to be retried.
var ErrTimeout = errors.New("retry timed out")

// Func is a function that could be retried.
type Func func() (retry bool, err error)

// Option is a function that mutates config.
type Option func(*config)

type logger interface {
	Debugf(string, ...interface{})
}

type config struct {
	withLog  logger
	interval *time.Duration
	timeout  *time.Duration
}

func getConfig(opts []Option) config {
	c := config{}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// WithLog logs every retry at debug level.
func WithLog(log logger) Option {
	return func(c *config) {
		c.withLog = log
	}
}

// WithInterval sleeps between attempts.
func WithInterval(interval time.Duration) Option {
	return func(c *config) {
		c.interval = &interval
	}
}

// WithTimeout bounds the total time spent retrying.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = &timeout
	}
}

// Do runs function f in loop until the function returns retry == false.
// With a timeout, the last error of f is wrapped into ErrTimeout once the
// deadline passes.
func Do(f Func, opts ...Option) error {
	c := getConfig(opts)

	var deadline time.Time
	if c.timeout != nil {
		deadline = time.Now().Add(*c.timeout)
	}
	for {
		retry, err := f()
		if !retry {
			return err
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			if err != nil {
				return errors.Wrap(ErrTimeout, err.Error())
			}
			return ErrTimeout
		}
		if log := c.withLog; log != nil {
			log.Debugf("Retrying, error was: %v", err)
		}
		if interval := c.interval; interval != nil {
			time.Sleep(*interval)
		}
	}
}
