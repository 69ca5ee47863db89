/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

// Package gfshtest installs a fake control-plane CLI for tests.
//
// The fake records every invocation and exits 0, except for:
//   - "start" with --name=bad: spawns a background process, records its pid
//     in the pid file of --dir and exits 1;
//   - "start" with --name=hang: never returns;
//   - "stop" when --dir contains a file named stop-fails: exits 1.
//
// A "stop" run while geode.properties exists in the working directory also
// records the line "cwd has geode.properties".
package gfshtest

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"cachecat/config"
	"cachecat/logutil"
)

// StopFails makes "stop" fail for the instance owning the directory.
const StopFails = "stop-fails"

const script = `#!/bin/sh
echo "$*" >> "%LOG%"
dir=""
for a in "$@"; do
  case "$a" in
    --dir=*) dir="${a#--dir=}" ;;
  esac
done
case "$1 $*" in
  start*--name=bad*)
    sleep 30 >/dev/null 2>&1 &
    echo $! > "$dir/vf.gf.$2.pid"
    echo "failed to start $2"
    exit 1 ;;
  start*--name=hang*)
    exec sleep 30 ;;
  stop*)
    [ -f geode.properties ] && echo "cwd has geode.properties" >> "%LOG%"
    [ -f "$dir/` + StopFails + `" ] && exit 1 ;;
esac
echo "$1 $2 done"
exit 0
`

// Fake is an installation directory holding bin/gfsh.
type Fake struct {
	Root       string
	InstallDir string
	LogPath    string
}

// New installs the fake below a new temporary directory.
func New(t *testing.T) *Fake {
	root, err := ioutil.TempDir("", "gfshtest")
	require.NoError(t, err)
	f := &Fake{
		Root:       root,
		InstallDir: filepath.Join(root, "geode"),
		LogPath:    filepath.Join(root, "gfsh.log"),
	}
	bin := filepath.Join(f.InstallDir, "bin")
	require.NoError(t, os.MkdirAll(bin, 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "runs"), 0755))
	content := strings.Replace(script, "%LOG%", f.LogPath, -1)
	require.NoError(t, ioutil.WriteFile(filepath.Join(bin, "gfsh"), []byte(content), 0755))
	return f
}

// Settings returns settings pointing at the fake with run roots below
// Root/runs.
func (f *Fake) Settings() config.Settings {
	return config.Settings{
		InstallDir: f.InstallDir,
		TestOutDir: filepath.Join(f.Root, "out"),
		BaseDir:    filepath.Join(f.Root, "runs"),
		Classpath:  filepath.Join(f.Root, "classes"),
	}.WithDefaults()
}

// Calls returns the recorded invocations, one argument string per call.
func (f *Fake) Calls(t *testing.T) []string {
	data, err := ioutil.ReadFile(f.LogPath)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// Logger returns a logger named name whose entries land in the returned hook
// instead of any output.
func Logger(name string) (*logrus.Entry, *test.Hook) {
	l, hook := test.NewNullLogger()
	return logutil.WithLogger(l, name), hook
}

// Cleanup removes the fake and every run root below it.
func (f *Fake) Cleanup() {
	os.RemoveAll(f.Root) // nolint: errcheck
}
