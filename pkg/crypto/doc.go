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
Package crypto provides the primitives used to read wallet files: PBKDF2 key
derivation and AES-128-CBC with PKCS7 padding.

The errors returned by DecryptWith are deliberately precise. They exist for
tests and diagnostics and must never cross a boundary where the caller chose
the key. Package wallet collapses all of them into a single wrong password
error for exactly that reason.

Keys passed to these functions are not retained. Callers holding keys for any
length of time should keep them in a memguard.LockedBuffer and pass the
buffer's bytes for the duration of the call:

	package main

	import (
		"fmt"

		"github.com/awnumar/memguard"
		"github.com/notapipeline/openwallet/pkg/crypto"
		"github.com/notapipeline/openwallet/pkg/types"
	)

	func main() {
		var (
			salt []byte = make([]byte, types.SaltSize)
			key  *memguard.LockedBuffer = memguard.NewBufferFromBytes(
				crypto.DeriveKey([]byte("password"), salt, types.PBKDF2Iterations),
			)
		)
		defer key.Destroy()

		ct, err := crypto.EncryptWith([]byte("hello"), key.Bytes(), salt)
		if err != nil {
			panic(err)
		}

		pt, err := crypto.DecryptWith(ct, key.Bytes(), salt)
		if err != nil {
			panic(err)
		}
		fmt.Println(string(pt)) // "hello"
	}
*/
package crypto
