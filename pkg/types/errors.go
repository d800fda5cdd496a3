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
package types

import (
	"fmt"
)

type IOErrorKind int

func (k IOErrorKind) String() string {
	switch k {
	case IOErrorNotFound:
		return "not found"
	case IOErrorUnreadable:
		return "unreadable"
	}
	return fmt.Sprintf("IOErrorKind(%d)", int(k))
}

// IOError is returned when the wallet file cannot be read. It is never
// produced by the cryptographic stages.
type IOError struct {
	Path string
	Kind IOErrorKind
	Err  error
}

func (e IOError) Error() string {
	return fmt.Sprintf("failed to open %s: %s", e.Path, e.Kind)
}

func (e IOError) Unwrap() error {
	return e.Err
}

type NotAWalletFileError struct{}

func (e NotAWalletFileError) Error() string {
	return "not a wallet file: missing wallet identifier"
}

type CorruptedWalletError struct {
	Reason string
}

func (e CorruptedWalletError) Error() string {
	return fmt.Sprintf("wallet is corrupted: %s", e.Reason)
}

// WrongPasswordError is the only error a failed decryption may produce.
// Every instance is identical so callers cannot tell which check failed.
type WrongPasswordError struct{}

func (e WrongPasswordError) Error() string {
	return "wrong password"
}
