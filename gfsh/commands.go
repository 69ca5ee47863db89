/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

package gfsh

import (
	"fmt"
	"path/filepath"

	shellwords "github.com/mattn/go-shellwords"
	"github.com/pkg/errors"

	"cachecat/config"
)

// MaxHeap is the heap given to every started server and locator.
const MaxHeap = "512m"

const keystorePassword = "gemstone"

// ServerOptions describes a "start server" invocation.
type ServerOptions struct {
	Name             string
	CacheXML         string
	Port             int
	Classpath        string
	LogLevel         string
	SecurityLogLevel string
	Dir              string
	Extra            []string
}

// StartServer returns the argument vector starting a cache server.
func StartServer(o ServerOptions) []string {
	args := []string{
		"start", "server",
		"--max-heap=" + MaxHeap,
		"--cache-xml-file=" + o.CacheXML,
		"--name=" + o.Name,
		fmt.Sprintf("--server-port=%d", o.Port),
		"--classpath=" + o.Classpath,
		"--log-level=" + o.LogLevel,
		"--dir=" + o.Dir,
		"--J=-Dsecurity-log-level=" + o.SecurityLogLevel,
	}
	return append(args, o.Extra...)
}

// LocatorOptions describes a "start locator" invocation.
type LocatorOptions struct {
	Name string
	Dir  string
	Port int
	// JMXPort is omitted from the arguments when zero.
	JMXPort int
	Extra   []string
	// KeystoreDir enables TLS when not empty.
	KeystoreDir string
}

// StartLocator returns the argument vector starting a locator.
func StartLocator(o LocatorOptions) []string {
	args := []string{
		"start", "locator",
		"--max-heap=" + MaxHeap,
		"--name=" + o.Name,
		"--dir=" + o.Dir,
	}
	args = append(args, o.Extra...)
	args = append(args, fmt.Sprintf("--port=%d", o.Port))
	if o.JMXPort != 0 {
		args = append(args, fmt.Sprintf("--J=-Dgemfire.jmx-manager-port=%d", o.JMXPort))
	}
	if o.KeystoreDir != "" {
		args = append(args, TLSArgs(o.KeystoreDir)...)
	}
	return append(args, "--http-service-port=0")
}

// StopServer returns the argument vector stopping the server in dir.
func StopServer(dir string) []string {
	return []string{"stop", "server", "--dir=" + dir}
}

// StopLocator returns the argument vector stopping the locator in dir.
// A non-empty keystoreDir adds the TLS flags.
func StopLocator(dir, keystoreDir string) []string {
	args := []string{"stop", "locator", "--dir=" + dir}
	if keystoreDir != "" {
		args = append(args, TLSArgs(keystoreDir)...)
	}
	return args
}

// TLSArgs returns the JVM flags pointing at the server keystore and
// truststore in keystoreDir.
func TLSArgs(keystoreDir string) []string {
	return []string{
		"--J=-Djavax.net.ssl.keyStore=" + filepath.Join(keystoreDir, "server_keystore.jks"),
		"--J=-Djavax.net.ssl.keyStorePassword=" + keystorePassword,
		"--J=-Djavax.net.ssl.trustStore=" + filepath.Join(keystoreDir, "server_truststore.jks"),
		"--J=-Djavax.net.ssl.trustStorePassword=" + keystorePassword,
	}
}

// ServerTLSArgs returns the TLS arguments of a server joining TLS
// locators.
func ServerTLSArgs(keystoreDir string) []string {
	args := []string{
		"ssl-enabled=true",
		"ssl-require-authentication=true",
		"ssl-ciphers=" + config.TLSCiphers,
	}
	return append(args, TLSArgs(keystoreDir)...)
}

// LocatorsArg returns the --locators flag for the given peer list.
func LocatorsArg(locators string) string {
	return "--locators=" + locators
}

// SplitArgs splits a caller supplied argument string the way a shell does.
func SplitArgs(extra string) ([]string, error) {
	args, err := shellwords.Parse(extra)
	if err != nil {
		return nil, errors.Wrapf(err, "parse arguments %q", extra)
	}
	return args, nil
}
