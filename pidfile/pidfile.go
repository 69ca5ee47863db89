/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

// Package pidfile kills processes recorded in the pid files written by the
// cache servers and locators into their working directories.
package pidfile

import (
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"cachecat/retry"
)

// Pid file names inside a server or locator working directory.
const (
	ServerFile  = "vf.gf.server.pid"
	LocatorFile = "vf.gf.locator.pid"
)

// DefaultTimeout bounds the wait for a killed process to exit.
const DefaultTimeout = 5 * time.Minute

const pollInterval = 100 * time.Millisecond

// ErrKillTimeout is returned when a killed process is still alive after the
// timeout.
var ErrKillTimeout = errors.New("process did not exit after kill")

// Read returns the pid stored in path.
func Read(path string) (int, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return 0, errors.Wrapf(err, "read pid file %q", path)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, errors.Wrapf(err, "parse pid file %q", path)
	}
	return pid, nil
}

// Kill kills the process recorded in path and waits up to timeout for it
// to exit. A missing file or a process that is already gone is not an
// error.
func Kill(path string, timeout time.Duration, log *logrus.Entry) error {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	log.Infof("PID file %s found", path)

	pid, err := Read(path)
	if err != nil {
		return err
	}
	log = log.WithField("pid", pid)
	if !Alive(pid) {
		log.Infof("process %d does not exist", pid)
		return nil
	}

	log.Warnf("Killing process %d", pid)
	proc, err := os.FindProcess(pid)
	if err != nil {
		return errors.Wrapf(err, "find process %d", pid)
	}
	if err := proc.Kill(); err != nil && Alive(pid) {
		return errors.Wrapf(err, "kill process %d", pid)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	err = retry.Do(func() (bool, error) {
		return Alive(pid), nil
	}, retry.WithInterval(pollInterval), retry.WithTimeout(timeout), retry.WithLog(log))
	if err != nil {
		log.Errorf("Failed to kill %d", pid)
		return errors.Wrapf(ErrKillTimeout, "process %d", pid)
	}
	return nil
}

// Alive reports whether pid names a running process, including one owned
// by another user. Zombies count as exited.
func Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	if !signalled(proc.Signal(syscall.Signal(0))) {
		return false
	}
	return !zombie(pid)
}

// signalled reports whether the result of a signal 0 delivery proves the
// process exists. EPERM means it exists but belongs to another user.
func signalled(err error) bool {
	return err == nil || errors.Is(err, syscall.EPERM)
}

func zombie(pid int) bool {
	data, err := ioutil.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return false
	}
	stat := string(data)
	i := strings.LastIndexByte(stat, ')')
	if i < 0 || i+2 >= len(stat) {
		return false
	}
	state := stat[i+2]
	return state == 'Z' || state == 'X'
}
