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

/*
Package wallet opens wallet files.

A wallet file is laid out as

	<wallet identifier><salt (16 bytes)><ciphertext>

The ciphertext is AES-128-CBC with the salt as IV and a key derived from the
user's password with PBKDF2-HMAC-SHA256 over 500000 iterations. Once
decrypted it must begin with the password identifier; whatever follows is the
payload handed back to the caller.

Opening a wallet fails in one of four ways:

	types.IOError              the file could not be read
	types.NotAWalletFileError  the wallet identifier is missing
	types.CorruptedWalletError the file is too short to hold a salt and ciphertext
	types.WrongPasswordError   anything at all went wrong during decryption

The last is intentional. Bad padding, a malformed ciphertext and a missing
password identifier are all reported as the same value so that the result of
an open cannot be used as a padding oracle.

	payload, err := wallet.Open("test.wallet", []byte("password"))
	if errors.Is(err, types.WrongPasswordError{}) {
		// ask again
	}
*/
package wallet
