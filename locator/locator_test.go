/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

package locator_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/magiconair/properties"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cachecat/config"
	"cachecat/gfsh/gfshtest"
	"cachecat/locator"
	"cachecat/sut"
)

func newManager(t *testing.T, fake *gfshtest.Fake) *sut.Manager {
	logger, _ := test.NewNullLogger()
	m, err := sut.NewManager(fake.Settings(), logrus.NewEntry(logger))
	require.NoError(t, err)
	require.NoError(t, m.Ports.Override(nil, []int{10334, 10335, 10336, 10337}))
	m.Ports.JMX = 1099
	m.KillTimeout = 5 * time.Second
	return m
}

func loadProperties(t *testing.T, l *locator.Locator) *properties.Properties {
	p, err := properties.LoadFile(l.PropertiesFile(), properties.UTF8)
	require.NoError(t, err)
	return p
}

func TestStartAndStop(t *testing.T) {
	fake := gfshtest.New(t)
	defer fake.Cleanup()
	m := newManager(t, fake)

	l, err := locator.New(m, 1, "loc1", locator.Options{})
	require.NoError(t, err)

	assert.Equal(t, "localhost:10334", l.Endpoint())
	assert.Equal(t, "localhost[10334]", l.Peer())
	assert.Equal(t, "localhost[10334],localhost[10335],localhost[10336],localhost[10337]",
		loadProperties(t, l).GetString("locators", ""))

	require.NoError(t, l.Stop(false))

	calls := fake.Calls(t)
	require.Len(t, calls, 2)
	assert.Equal(t, "start locator --max-heap=512m --name=loc1 --dir="+l.Dir+
		" --port=10334 --J=-Dgemfire.jmx-manager-port=1099 --http-service-port=0", calls[0])
	assert.Equal(t, "stop locator --dir="+l.Dir, calls[1])
}

func TestStartWithTLS(t *testing.T) {
	fake := gfshtest.New(t)
	defer fake.Cleanup()
	m := newManager(t, fake)

	l, err := locator.New(m, 2, "loc2", locator.Options{TLS: true, Extra: []string{"--bind-address=localhost"}})
	require.NoError(t, err)

	p := loadProperties(t, l)
	assert.Equal(t, "true", p.GetString("ssl-enabled", ""))
	assert.Equal(t, "true", p.GetString("ssl-require-authentication", ""))
	assert.Equal(t, config.TLSCiphers, p.GetString("ssl-ciphers", ""))
	assert.Equal(t, "0", p.GetString("mcast-port", ""))

	require.NoError(t, l.Stop(true))

	calls := fake.Calls(t)
	require.Len(t, calls, 3)
	keystore := filepath.Join(m.Settings.KeystoreDir(), "server_keystore.jks")
	assert.Contains(t, calls[0], "--bind-address=localhost --port=10335")
	assert.Contains(t, calls[0], "--J=-Djavax.net.ssl.keyStore="+keystore)
	assert.Contains(t, calls[1], "stop locator --dir="+l.Dir+" --J=-Djavax.net.ssl.keyStore="+keystore)
	assert.Equal(t, "cwd has geode.properties", calls[2])

	_, err = os.Stat(filepath.Join(m.RootDir, config.PropertiesFile))
	assert.True(t, os.IsNotExist(err))
}

func TestStartIsolatedDistributedSystem(t *testing.T) {
	fake := gfshtest.New(t)
	defer fake.Cleanup()
	m := newManager(t, fake)

	l, err := locator.New(m, 3, "loc3", locator.Options{DistributedSystemID: 2})
	require.NoError(t, err)

	p := loadProperties(t, l)
	assert.Equal(t, "2", p.GetString("distributed-system-id", ""))
	assert.Equal(t, "0", p.GetString("mcast-port", ""))
	_, ok := p.Get("locators")
	assert.False(t, ok)

	calls := fake.Calls(t)
	require.Len(t, calls, 1)
	assert.NotContains(t, calls[0], "jmx-manager-port")
}

func TestFailedStart(t *testing.T) {
	fake := gfshtest.New(t)
	defer fake.Cleanup()
	m := newManager(t, fake)

	l, err := locator.New(m, 4, "bad", locator.Options{})

	assert.Nil(t, l)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locator 4")
	assert.Contains(t, err.Error(), "exit code 1")
}

func TestInvalidLocatorNumber(t *testing.T) {
	fake := gfshtest.New(t)
	defer fake.Cleanup()
	m := newManager(t, fake)

	_, err := locator.New(m, 0, "loc0", locator.Options{})

	assert.Error(t, err)
	assert.Empty(t, fake.Calls(t))
}
