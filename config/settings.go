/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

// Package config provides the harness settings, the cache configuration
// templates and the locator properties files.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Settings keys. Each key is bound to the environment variable of the same
// name in upper case.
const (
	KeyInstallDir       = "gfe_dir"
	KeyLogLevel         = "gfe_loglevel"
	KeySecurityLogLevel = "gfe_secloglevel"
	KeyClasspath        = "gf_classpath"
	KeyTestOutDir       = "cpp_testout"
	KeyBaseDir          = "cachecat_base_dir"
)

// DefaultLogLevel is used for both server log levels when unset.
const DefaultLogLevel = "config"

var remoteEndpoints = regexp.MustCompile(`^[^:]+:[0-9]+(,[^:]+:[0-9]+)*$`)

// ErrInstallDirNotSet is returned by Validate when GFE_DIR is empty.
var ErrInstallDirNotSet = errors.New("GFE_DIR is not set")

// Settings is the typed harness configuration.
type Settings struct {
	// InstallDir is the product installation root holding bin/gfsh, or a
	// host:port list of externally managed servers.
	InstallDir       string `yaml:"gfe_dir"`
	LogLevel         string `yaml:"gfe_loglevel"`
	SecurityLogLevel string `yaml:"gfe_secloglevel"`
	Classpath        string `yaml:"gf_classpath"`
	// TestOutDir holds the keystore directory used by TLS locators.
	TestOutDir string `yaml:"cpp_testout"`
	// BaseDir is the parent of the per-run temporary root.
	BaseDir string `yaml:"cachecat_base_dir"`
}

// Load reads Settings from v. Every key is bound to its environment
// variable so that a nil config file still yields the environment values.
func Load(v *viper.Viper) (Settings, error) {
	if v == nil {
		v = viper.New()
	}
	for _, key := range []string{KeyInstallDir, KeyLogLevel, KeySecurityLogLevel, KeyClasspath, KeyTestOutDir, KeyBaseDir} {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return Settings{}, errors.Wrapf(err, "bind %s", key)
		}
	}
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeySecurityLogLevel, DefaultLogLevel)

	s := Settings{
		InstallDir:       v.GetString(KeyInstallDir),
		LogLevel:         v.GetString(KeyLogLevel),
		SecurityLogLevel: v.GetString(KeySecurityLogLevel),
		Classpath:        v.GetString(KeyClasspath),
		TestOutDir:       v.GetString(KeyTestOutDir),
		BaseDir:          v.GetString(KeyBaseDir),
	}
	return s.WithDefaults(), nil
}

// WithDefaults fills empty log levels and the base directory.
func (s Settings) WithDefaults() Settings {
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	if s.SecurityLogLevel == "" {
		s.SecurityLogLevel = DefaultLogLevel
	}
	if s.BaseDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			s.BaseDir = cwd
		} else {
			s.BaseDir = os.TempDir()
		}
	}
	return s
}

// Validate checks that an install directory or endpoint list is present.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.InstallDir) == "" {
		return ErrInstallDirNotSet
	}
	return nil
}

// Remote reports whether InstallDir names externally managed servers.
func (s Settings) Remote() bool {
	return remoteEndpoints.MatchString(s.InstallDir)
}

// Gfsh returns the path of the control-plane CLI.
func (s Settings) Gfsh() string {
	name := "gfsh"
	if runtime.GOOS == "windows" {
		name = "gfsh.bat"
	}
	return filepath.Join(s.InstallDir, "bin", name)
}

// KeystoreDir returns the directory holding server_keystore.jks and
// server_truststore.jks.
func (s Settings) KeystoreDir() string {
	return filepath.Join(s.TestOutDir, "keystore")
}
