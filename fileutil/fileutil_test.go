/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

package fileutil

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "fileutil")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "src.properties")
	dest := filepath.Join(dir, "nested", "dest.properties")
	require.NoError(t, ioutil.WriteFile(src, []byte("a=1\n"), 0600))

	tests := []struct {
		name      string
		src       string
		overwrite bool
		fails     bool
	}{
		{name: "new destination", src: src},
		{name: "existing destination", src: src, fails: true},
		{name: "overwrite", src: src, overwrite: true},
		{name: "missing source", src: filepath.Join(dir, "missing"), overwrite: true, fails: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CopyFile(tt.src, dest, tt.overwrite)
			if tt.fails {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			content, err := ioutil.ReadFile(dest)
			require.NoError(t, err)
			assert.Equal(t, "a=1\n", string(content))
		})
	}
}

func TestForceRemove(t *testing.T) {
	dir, err := ioutil.TempDir("", "fileutil")
	require.NoError(t, err)
	require.NoError(t, WriteToFile(filepath.Join(dir, "a", "b"), []byte("x"), 0644))

	assert.NoError(t, ForceRemove(dir))
	assert.NoError(t, ForceRemove(dir))
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}
