/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

// Package gfsh runs the cache control-plane CLI and builds its argument
// vectors.
package gfsh

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds one CLI invocation.
const DefaultTimeout = 5 * time.Minute

// JavaArgs is added to the environment of every invocation.
const JavaArgs = "JAVA_ARGS=-Xmx256m"

// Executor runs the CLI synchronously with a bounded wait.
type Executor struct {
	// Path is the CLI executable.
	Path string
	// Dir is the working directory of the CLI, the run root.
	Dir string
	// Env is appended to the parent environment.
	Env     []string
	Timeout time.Duration
	Log     *logrus.Entry
}

// Run executes the CLI with args and returns its exit code. Every output
// line is logged as it arrives. When the timeout elapses the output is
// closed and the child killed. A child that could not be started or was
// killed reports -1.
func (e *Executor) Run(args ...string) int {
	log := e.logger().WithField("command", strings.Join(args, " "))

	cmd := exec.Command(e.Path, args...)
	cmd.Dir = e.Dir
	cmd.Env = append(append(os.Environ(), JavaArgs), e.Env...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		log.WithError(err).Error("Failed to capture stdout")
		return -1
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		log.WithError(err).Error("Failed to capture stderr")
		return -1
	}

	log.Debugf("Executing %s", e.Path)
	if err := cmd.Start(); err != nil {
		log.WithError(err).Errorf("Failed to start %s", e.Path)
		return -1
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go forward(&wg, stdout, log.Info)
	go forward(&wg, stderr, log.Warn)

	done := make(chan error, 1)
	go func() {
		wg.Wait()
		done <- cmd.Wait()
	}()

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	select {
	case err = <-done:
	case <-time.After(timeout):
		log.Warnf("Command did not finish in %v, killing process %d", timeout, cmd.Process.Pid)
		stdout.Close()     // nolint: errcheck
		stderr.Close()     // nolint: errcheck
		cmd.Process.Kill() // nolint: errcheck
		err = <-done
	}

	code := exitCode(cmd, err)
	log.Debugf("Exited with code %d", code)
	return code
}

func (e *Executor) logger() *logrus.Entry {
	if e.Log == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return e.Log
}

func forward(wg *sync.WaitGroup, r io.Reader, logf func(...interface{})) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		logf(scanner.Text())
	}
}

func exitCode(cmd *exec.Cmd, err error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	if err != nil {
		return -1
	}
	return 0
}
