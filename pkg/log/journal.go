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
	"fmt"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/sirupsen/logrus"
)

var send func(message string, priority journal.Priority, vars map[string]string) error = journal.Send

// JournalHook forwards log entries to the systemd journal
type JournalHook struct {
	Identifier string
}

func NewJournalHook() *JournalHook {
	return &JournalHook{
		Identifier: "openwallet",
	}
}

func (h *JournalHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *JournalHook) Fire(entry *logrus.Entry) error {
	var vars map[string]string = map[string]string{
		"SYSLOG_IDENTIFIER": h.Identifier,
	}
	for k, v := range entry.Data {
		// journal field names are upper case and may only contain A-Z, 0-9 and _
		vars[strings.ToUpper(sanitize(k))] = fmt.Sprint(v)
	}
	return send(entry.Message, priority(entry.Level), vars)
}

func priority(level logrus.Level) journal.Priority {
	switch level {
	case logrus.PanicLevel:
		return journal.PriEmerg
	case logrus.FatalLevel:
		return journal.PriCrit
	case logrus.ErrorLevel:
		return journal.PriErr
	case logrus.WarnLevel:
		return journal.PriWarning
	case logrus.InfoLevel:
		return journal.PriInfo
	}
	return journal.PriDebug
}

func sanitize(field string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, field)
}
