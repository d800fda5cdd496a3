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
	"fmt"
	"io"
	"os"
	"time"

	"github.com/awnumar/memguard"
	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notapipeline/openwallet/pkg/config"
	"github.com/notapipeline/openwallet/pkg/log"
	"github.com/notapipeline/openwallet/pkg/tools"
	"github.com/notapipeline/openwallet/pkg/types"
)

// These functions are referenced as variables to enable them to
// be mocked in tests
var (
	fatal func(format string, v ...interface{}) = func(format string, v ...interface{}) {
		fmt.Fprintf(os.Stderr, "Error: "+format+"\n", v...)
		memguard.SafeExit(1)
	}

	getPassword func(path string, stdin bool) (*memguard.LockedBuffer, tools.Source, error) = acquirePassword

	newBackOff func() backoff.BackOff = func() backoff.BackOff {
		exp := backoff.NewExponentialBackOff()
		exp.InitialInterval = 500 * time.Millisecond
		exp.RandomizationFactor = 0.1
		exp.Multiplier = 2.0
		exp.MaxInterval = 5 * time.Second
		exp.MaxElapsedTime = 0
		exp.Reset()
		return exp
	}

	isTerminal func(w io.Writer) bool = func(w io.Writer) bool {
		f, ok := w.(*os.File)
		return ok && tools.IsTerminal(f)
	}
)

// acquirePassword returns the password for the wallet at path.
//
// With stdin set only stdin is read. Otherwise stored passwords are tried
// before the user is asked.
func acquirePassword(path string, stdin bool) (*memguard.LockedBuffer, tools.Source, error) {
	if stdin {
		buf, err := tools.ReadPasswordFrom(os.Stdin)
		return buf, tools.SourceStdin, err
	}

	if buf, source, ok := tools.LookupPassword(); ok {
		return buf, source, nil
	}

	buf, err := tools.PromptPassword(path)
	return buf, tools.SourcePrompt, err
}

// loadConfig reads the config file and environment, then applies the command
// line. wallet is the positional argument if one was given.
func loadConfig(wallet string) (*config.Config, error) {
	c := config.New()
	if err := c.Load(cfgFile); err != nil {
		return nil, err
	}

	var flags types.OpenCmd = openCmd
	if wallet != "" {
		flags.Wallet = wallet
	}
	c.MergeOpenCmd(flags)
	c.MergeLogOptions(logOpts)
	tools.PinentryBinary = c.Pinentry
	return c, nil
}

// newLogger builds the logger for a single invocation. Every entry carries
// the same session id.
func newLogger(cmd *cobra.Command, c *config.Config) *logrus.Entry {
	logger := log.New(c.LogOptions())
	logger.SetOutput(cmd.ErrOrStderr())

	l := logger.WithField("session", uuid.New().String())
	if c.Path() != "" {
		l.WithField("config", c.Path()).Debug("loaded config")
	}
	return l
}
