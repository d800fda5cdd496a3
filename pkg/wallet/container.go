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
package wallet

import (
	"bytes"

	"github.com/notapipeline/openwallet/pkg/types"
)

// Container is a wallet file with the identifier removed. Both slices share
// memory with the data passed to Parse.
type Container struct {
	Salt       []byte
	Ciphertext []byte
}

// Parse validates the cleartext part of a wallet file and splits it into salt
// and ciphertext. No cryptographic work is done so it is safe to call before
// asking for a password.
func Parse(data []byte) (*Container, error) {
	if !HasMagicIdentifier(data, types.WalletIdentifier) {
		return nil, types.NotAWalletFileError{}
	}
	data = data[len(types.WalletIdentifier):]

	if len(data) < types.SaltSize {
		return nil, types.CorruptedWalletError{Reason: "cannot read salt"}
	}

	if len(data) == types.SaltSize {
		return nil, types.CorruptedWalletError{Reason: "no encrypted data"}
	}

	return &Container{
		Salt:       data[:types.SaltSize],
		Ciphertext: data[types.SaltSize:],
	}, nil
}

// IsWalletFile reports whether data starts with the wallet identifier.
func IsWalletFile(data []byte) bool {
	return HasMagicIdentifier(data, types.WalletIdentifier)
}

// HasMagicIdentifier reports whether input begins with the whole of identifier.
func HasMagicIdentifier(input, identifier []byte) bool {
	if len(input) < len(identifier) {
		return false
	}
	return bytes.Equal(input[:len(identifier)], identifier)
}
