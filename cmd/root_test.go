/*
 *   Copyright 2023 Martin Proffitt <mproffitt@choclab.net>
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 */
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/awnumar/memguard"
	backoff "github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notapipeline/openwallet/pkg/config"
	"github.com/notapipeline/openwallet/pkg/tools"
	"github.com/notapipeline/openwallet/pkg/types"
)

var (
	testWallet   string = filepath.Join("..", "pkg", "wallet", "testdata", "test.wallet")
	sampleWallet string = filepath.Join("..", "pkg", "wallet", "testdata", "sample.wallet")
)

// passwordSequence hands out the given passwords in order and counts how
// often it was asked.
type passwordSequence struct {
	passwords []string
	source    tools.Source
	err       error
	calls     int
}

func (p *passwordSequence) get(path string, stdin bool) (*memguard.LockedBuffer, tools.Source, error) {
	p.calls++
	if p.err != nil {
		return nil, p.source, p.err
	}
	var password string = p.passwords[len(p.passwords)-1]
	if p.calls <= len(p.passwords) {
		password = p.passwords[p.calls-1]
	}
	return memguard.NewBufferFromBytes([]byte(password)), p.source, nil
}

func setupSuite(t *testing.T) func(t *testing.T) {
	t.Log("Setting up cmd suite")
	tempDir := t.TempDir()

	ocp := config.ConfigPath
	ogp := getPassword
	onb := newBackOff
	oit := isTerminal

	config.ConfigPath = func() string {
		return filepath.Join(tempDir, "config.yaml")
	}
	newBackOff = func() backoff.BackOff {
		return &backoff.ZeroBackOff{}
	}
	isTerminal = func(io.Writer) bool {
		return false
	}
	getPassword = func(string, bool) (*memguard.LockedBuffer, tools.Source, error) {
		t.Fatal("password requested unexpectedly")
		return nil, tools.SourceNone, nil
	}
	for _, v := range []string{"OPENWALLET_FILE", "OPENWALLET_OUTPUT", "OPENWALLET_ATTEMPTS", "OPENWALLET_SECRET_NAME"} {
		t.Setenv(v, "")
	}

	return func(t *testing.T) {
		config.ConfigPath = ocp
		getPassword = ogp
		newBackOff = onb
		isTerminal = oit
	}
}

// execute runs the root command with args and a clean set of flag values
func execute(args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer

	cfgFile = ""
	logOpts = types.LogOptions{}
	openCmd = types.OpenCmd{}

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	rootCmd.SilenceUsage = true
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCmdShowsHelpWithoutArguments(t *testing.T) {
	teardownSuite := setupSuite(t)
	defer teardownSuite(t)

	stdout, _, err := execute()
	require.NoError(t, err)
	assert.Contains(t, stdout, "Usage")
	assert.Contains(t, stdout, "open")
	assert.Contains(t, stdout, "check")
}

func TestRootCmdOpensBareArgument(t *testing.T) {
	teardownSuite := setupSuite(t)
	defer teardownSuite(t)

	passwords := &passwordSequence{passwords: []string{"password"}, source: tools.SourceEnvironment}
	getPassword = passwords.get

	stdout, _, err := execute(testWallet, "-o", "raw")
	require.NoError(t, err)
	assert.Equal(t, "{}\n", stdout)
	assert.Equal(t, 1, passwords.calls)
}

func TestRootCmdRejectsExtraArguments(t *testing.T) {
	teardownSuite := setupSuite(t)
	defer teardownSuite(t)

	_, _, err := execute(testWallet, sampleWallet)
	assert.Error(t, err)
}

func TestExecuteCallsFatal(t *testing.T) {
	teardownSuite := setupSuite(t)
	defer teardownSuite(t)

	var (
		message string
		missing string = filepath.Join(t.TempDir(), "missing.wallet")
	)
	of := fatal
	defer func() {
		fatal = of
	}()
	fatal = func(format string, v ...interface{}) {
		message = fmt.Sprintf(format, v...)
	}

	cfgFile = ""
	logOpts = types.LogOptions{}
	openCmd = types.OpenCmd{}
	rootCmd.SetArgs([]string{"open", missing})
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	Execute()

	assert.Equal(t, fmt.Sprintf("failed to open %s: not found", missing), message)
}

func TestLoadConfigPrefersArgument(t *testing.T) {
	teardownSuite := setupSuite(t)
	defer teardownSuite(t)

	require.NoError(t, os.WriteFile(config.ConfigPath(), []byte("wallet: from-config.wallet\npinentry: pinentry-tty\n"), 0600))
	opb := tools.PinentryBinary
	defer func() {
		tools.PinentryBinary = opb
	}()

	cfgFile = ""
	openCmd = types.OpenCmd{}
	c, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "from-config.wallet", c.Wallet)
	assert.Equal(t, "pinentry-tty", tools.PinentryBinary)

	c, err = loadConfig("from-argument.wallet")
	require.NoError(t, err)
	assert.Equal(t, "from-argument.wallet", c.Wallet)
}

func TestAcquirePasswordUsesStdinOnly(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString("from-stdin\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	ostdin := os.Stdin
	defer func() {
		os.Stdin = ostdin
		r.Close()
	}()
	os.Stdin = r
	t.Setenv(tools.PasswordEnv, "from-env")

	buf, source, err := acquirePassword("any.wallet", true)
	require.NoError(t, err)
	defer buf.Destroy()
	assert.Equal(t, tools.SourceStdin, source)
	assert.Equal(t, "from-stdin", buf.String())
}

func TestAcquirePasswordPrefersEnvironment(t *testing.T) {
	t.Setenv(tools.PasswordEnv, "from-env")
	ogp := tools.GetPassword
	defer func() {
		tools.GetPassword = ogp
	}()
	tools.GetPassword = func(title, description, prompt string) ([]byte, error) {
		t.Fatal("prompted although a password was stored")
		return nil, nil
	}

	buf, source, err := acquirePassword("any.wallet", false)
	require.NoError(t, err)
	defer buf.Destroy()
	assert.Equal(t, tools.SourceEnvironment, source)
	assert.Equal(t, "from-env", buf.String())
	assert.False(t, strings.Contains(source.String(), "prompt"))
}
