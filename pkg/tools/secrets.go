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
package tools

import (
	"os"

	"github.com/awnumar/memguard"
)

// PasswordEnv names the environment variable, and the keyring entry, holding
// the wallet password.
const PasswordEnv string = "OPENWALLET_PASSWORD"

// Source records where a password was obtained.
type Source int

const (
	SourceNone Source = iota
	SourceEnvironment
	SourceKWallet
	SourceSecretService
	SourceStdin
	SourcePrompt
)

func (s Source) String() string {
	switch s {
	case SourceEnvironment:
		return "environment"
	case SourceKWallet:
		return "kwallet"
	case SourceSecretService:
		return "secret service"
	case SourceStdin:
		return "stdin"
	case SourcePrompt:
		return "prompt"
	}
	return "none"
}

// Interactive reports whether asking the same source again can give a
// different answer.
func (s Source) Interactive() bool {
	return s == SourcePrompt
}

// These functions are referenced as variables to enable them to
// be mocked in tests
var (
	lookupKWallet       func(what string) (string, error) = getSecretFromKWallet
	lookupSecretService func(what string) (string, error) = getSecretFromSecretsService
)

// getSecret gets a secret from the environment or secrets store
func getSecret(what string) (string, Source) {
	var (
		value string
		err   error
		ok    bool
	)

	if value, ok = os.LookupEnv(what); ok && value != "" {
		return value, SourceEnvironment
	}

	if value, err = lookupKWallet(what); err == nil && value != "" {
		return value, SourceKWallet
	}

	if value, err = lookupSecretService(what); err == nil && value != "" {
		return value, SourceSecretService
	}
	return "", SourceNone
}

// LookupPassword gets the wallet password without asking the user.
//
// Order is:
// 1. Environment
// 2. KWallet
// 3. Secret Service
//
// ok is false when none of them hold a password.
func LookupPassword() (password *memguard.LockedBuffer, source Source, ok bool) {
	var value string
	if value, source = getSecret(PasswordEnv); source == SourceNone {
		return nil, source, false
	}
	return memguard.NewBufferFromBytes([]byte(value)), source, true
}
