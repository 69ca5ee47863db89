/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

package main

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cachecat/gfsh/gfshtest"
)

func TestNewLoggerWritesToLogFile(t *testing.T) {
	fake := gfshtest.New(t)
	defer fake.Cleanup()
	file := filepath.Join(fake.Root, "cachecat.log")
	viper.Set("log_file", file)
	defer viper.Set("log_file", "")

	newLogger("kill").Info("process stopped")

	content, err := ioutil.ReadFile(file)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(content), "logger=kill"))
	assert.True(t, strings.Contains(string(content), "process stopped"))
}

func TestNewLoggerDefaultsToStdout(t *testing.T) {
	viper.Set("log_file", "")
	assert.Equal(t, "up", newLogger("up").Data["logger"])
}
