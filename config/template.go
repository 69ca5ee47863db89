/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Render copies template into destDir, replacing every placeholder of
// tokens (pairs of placeholder and value, see ports.Set.Tokens) with its
// value. The rendered file keeps the template's base name.
func Render(template, destDir string, tokens []string) (string, error) {
	content, err := ioutil.ReadFile(template)
	if err != nil {
		return "", errors.Wrapf(err, "read template %q", template)
	}
	info, err := os.Stat(template)
	if err != nil {
		return "", errors.Wrapf(err, "stat template %q", template)
	}

	rendered := strings.NewReplacer(tokens...).Replace(string(content))

	dest := filepath.Join(destDir, filepath.Base(template))
	if err := ioutil.WriteFile(dest, []byte(rendered), info.Mode().Perm()); err != nil {
		return "", errors.Wrapf(err, "write rendered config %q", dest)
	}
	return dest, nil
}
