/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

// Package fileutil contains file helpers shared by the harness packages.
package fileutil

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// WriteToFile writes content to a file, creating its directory if needed.
func WriteToFile(path string, content []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return ioutil.WriteFile(path, content, perm)
}

// CopyFile copies file.
func CopyFile(src, dest string, overwrite bool) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return errors.Wrap(err, "copying file failed, cannot read source file")
	}
	if !overwrite {
		if _, err = os.Stat(dest); err == nil {
			return errors.New("copying file failed, destination file already exists")
		} else if !os.IsNotExist(err) {
			return errors.Wrap(err, "copying file failed, destination file already exists")
		}
	}

	content, err := ioutil.ReadFile(src)
	if err != nil {
		return errors.Wrap(err, "copying file failed, cannot read source file")
	}
	return WriteToFile(dest, content, srcInfo.Mode())
}

// ForceRemove removes path and everything below it. A missing path is not
// an error.
func ForceRemove(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return errors.Wrapf(err, "remove %q", path)
	}
	return nil
}
