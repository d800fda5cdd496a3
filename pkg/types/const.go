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

// WalletIdentifier prefixes every wallet file in cleartext. It identifies the
// format only and carries no security value.
//
//	"If I pull that off, will you die?\nIt would be extremely painful."
var WalletIdentifier = []byte{
	0x49, 0x66, 0x20, 0x49, 0x20, 0x70, 0x75, 0x6c, 0x6c, 0x20, 0x74,
	0x68, 0x61, 0x74, 0x20, 0x6f, 0x66, 0x66, 0x2c, 0x20, 0x77, 0x69,
	0x6c, 0x6c, 0x20, 0x79, 0x6f, 0x75, 0x20, 0x64, 0x69, 0x65, 0x3f,
	0x0a, 0x49, 0x74, 0x20, 0x77, 0x6f, 0x75, 0x6c, 0x64, 0x20, 0x62,
	0x65, 0x20, 0x65, 0x78, 0x74, 0x72, 0x65, 0x6d, 0x65, 0x6c, 0x79,
	0x20, 0x70, 0x61, 0x69, 0x6e, 0x66, 0x75, 0x6c, 0x2e,
}

// PasswordIdentifier is the first thing inside the encrypted section of a
// wallet file. Finding it after decryption is the only proof the password
// was correct.
//
//	"You're a big guy.\nFor you."
var PasswordIdentifier = []byte{
	0x59, 0x6f, 0x75, 0x27, 0x72, 0x65, 0x20, 0x61, 0x20, 0x62, 0x69,
	0x67, 0x20, 0x67, 0x75, 0x79, 0x2e, 0x0a, 0x46, 0x6f, 0x72, 0x20,
	0x79, 0x6f, 0x75, 0x2e,
}

const (
	// SaltSize is the length of the salt stored after the wallet identifier.
	// The salt is also the CBC initialisation vector.
	SaltSize = 16

	// KeySize is the length of the AES key derived from the password.
	KeySize = 16

	// PBKDF2Iterations must not change; existing wallets depend on it.
	PBKDF2Iterations = 500000
)

const (
	OutputJSON   OutputFormat = "json"
	OutputRaw    OutputFormat = "raw"
	OutputTable  OutputFormat = "table"
	OutputSecret OutputFormat = "secret"
)

const (
	IOErrorNotFound IOErrorKind = iota
	IOErrorUnreadable
)

const (
	DefaultAttempts  = 3
	DefaultSecretKey = "wallet.json"
)
