/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

package server_test

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cachecat/gfsh/gfshtest"
	"cachecat/pidfile"
	"cachecat/server"
	"cachecat/sut"
)

func newManager(t *testing.T, fake *gfshtest.Fake) (*sut.Manager, *test.Hook) {
	log, hook := gfshtest.Logger("server")
	m, err := sut.NewManager(fake.Settings(), log)
	require.NoError(t, err)
	require.NoError(t, m.Ports.Override([]int{40401, 40402, 40403, 40404}, []int{10334, 10335, 10336, 10337}))
	m.Ports.JMX = 1099
	m.KillTimeout = 5 * time.Second
	return m, hook
}

func TestStartAndStop(t *testing.T) {
	fake := gfshtest.New(t)
	defer fake.Cleanup()
	m, _ := newManager(t, fake)

	s, err := server.New(m, 2, "srv2", "/xml/cache.xml", []string{"--locators=localhost[10334]"})
	require.NoError(t, err)

	assert.Equal(t, 2, s.Number)
	assert.Equal(t, "localhost:40402", s.Endpoint())
	assert.Equal(t, m.RootDir, filepath.Dir(s.Dir))
	assert.Equal(t, filepath.Join(s.Dir, pidfile.ServerFile), s.PidFile())

	s.Stop()

	calls := fake.Calls(t)
	require.Len(t, calls, 2)
	assert.Equal(t, "start server --max-heap=512m --cache-xml-file=/xml/cache.xml --name=srv2 "+
		"--server-port=40402 --classpath="+m.Settings.Classpath+" --log-level=config --dir="+s.Dir+
		" --J=-Dsecurity-log-level=config --locators=localhost[10334]", calls[0])
	assert.Equal(t, "stop server --dir="+s.Dir, calls[1])
}

func TestFailedStartKillsProcess(t *testing.T) {
	fake := gfshtest.New(t)
	defer fake.Cleanup()
	m, hook := newManager(t, fake)

	s, err := server.New(m, 1, "bad", "/xml/cache.xml", nil)

	assert.Nil(t, s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server 1")
	assert.Contains(t, err.Error(), "exit code 1")

	var killed bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && strings.HasPrefix(e.Message, "Killing process") {
			killed = true
		}
	}
	assert.True(t, killed)
}

func TestInvalidServerNumber(t *testing.T) {
	fake := gfshtest.New(t)
	defer fake.Cleanup()
	m, _ := newManager(t, fake)

	_, err := server.New(m, 5, "srv5", "/xml/cache.xml", nil)

	assert.Error(t, err)
	assert.Empty(t, fake.Calls(t))
	entries, err := ioutil.ReadDir(m.RootDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
