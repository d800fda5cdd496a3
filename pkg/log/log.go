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
package log

import (
	"io"
	"os"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/sirupsen/logrus"

	"github.com/notapipeline/openwallet/pkg/types"
)

// These are referenced as variables so tests can run without a journal
var (
	journalEnabled func() bool = journal.Enabled
	output         io.Writer   = os.Stderr
)

// New creates a logger writing to stderr.
//
// Quiet wins over Debug. When Journal is requested and a journal socket is
// available, entries are also forwarded to the systemd journal.
func New(opts types.LogOptions) *logrus.Logger {
	var logger *logrus.Logger = logrus.New()
	logger.SetOutput(output)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	logger.SetLevel(logrus.InfoLevel)
	if opts.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	if opts.Quiet {
		logger.SetLevel(logrus.ErrorLevel)
	}

	if opts.Journal {
		if journalEnabled() {
			logger.AddHook(NewJournalHook())
		} else {
			logger.Warn("systemd journal requested but not available")
		}
	}
	return logger
}

// Discard returns a logger that drops everything. Used as the default for
// library callers who do not supply one.
func Discard() *logrus.Entry {
	var logger *logrus.Logger = logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
