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
	"errors"
	"io/fs"
	"os"

	"github.com/awnumar/memguard"
	"github.com/sirupsen/logrus"

	"github.com/notapipeline/openwallet/pkg/crypto"
	"github.com/notapipeline/openwallet/pkg/log"
	"github.com/notapipeline/openwallet/pkg/types"
)

// FileReader is the filesystem collaborator used by Opener.
type FileReader interface {
	ReadFile(name string) ([]byte, error)
}

type osFileReader struct{}

func (osFileReader) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

type Option func(*Opener)

// WithFileReader replaces the filesystem the opener reads wallets from.
func WithFileReader(r FileReader) Option {
	return func(o *Opener) {
		o.files = r
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(o *Opener) {
		o.log = l
	}
}

// Opener reads and decrypts wallet files.
//
// An Opener holds no state between calls and may be shared between
// goroutines.
type Opener struct {
	files      FileReader
	log        *logrus.Entry
	iterations int
}

func NewOpener(options ...Option) *Opener {
	o := &Opener{
		files:      osFileReader{},
		log:        log.Discard(),
		iterations: types.PBKDF2Iterations,
	}
	for _, option := range options {
		option(o)
	}
	return o
}

// Open reads the wallet at path and returns its payload.
func Open(path string, password []byte) ([]byte, error) {
	return NewOpener().Open(path, password)
}

// Open reads the wallet at path and returns its payload.
func (o *Opener) Open(path string, password []byte) ([]byte, error) {
	var (
		data []byte
		err  error
		l    *logrus.Entry = o.log.WithField("wallet", path)
	)

	if data, err = o.read(path); err != nil {
		l.WithError(err).Debug("unable to read wallet")
		return nil, err
	}
	return o.open(l, data, password)
}

// OpenBytes runs the open protocol over a wallet already held in memory.
// data is not modified.
func (o *Opener) OpenBytes(data, password []byte) ([]byte, error) {
	return o.open(o.log, data, password)
}

// Check reads the wallet at path and validates its cleartext header without
// asking for a password.
func (o *Opener) Check(path string) error {
	data, err := o.read(path)
	if err != nil {
		return err
	}
	_, err = Parse(data)
	return err
}

func (o *Opener) read(path string) ([]byte, error) {
	data, err := o.files.ReadFile(path)
	if err == nil {
		return data, nil
	}

	var kind types.IOErrorKind = types.IOErrorUnreadable
	if errors.Is(err, fs.ErrNotExist) {
		kind = types.IOErrorNotFound
	}
	return nil, types.IOError{Path: path, Kind: kind, Err: err}
}

func (o *Opener) open(l *logrus.Entry, data, password []byte) ([]byte, error) {
	var (
		c   *Container
		err error
	)

	if c, err = Parse(data); err != nil {
		l.WithError(err).Debug("wallet header rejected")
		return nil, err
	}
	l.Debug("wallet identifier verified")

	key := memguard.NewBufferFromBytes(crypto.DeriveKey(password, c.Salt, o.iterations))
	defer key.Destroy()
	l.Debug("key derived")

	payload, err := openPayload(c.Ciphertext, key.Bytes(), c.Salt)
	if err != nil {
		// err carries no detail, it is always the same wrong password value
		l.WithError(err).Debug("unable to decrypt wallet")
		return nil, err
	}
	l.Debug("wallet opened")
	return payload, nil
}

// openPayload is the decryption boundary. Every failure inside it, including
// a panic from the cipher, is reported as the same WrongPasswordError and
// the underlying cause is dropped.
func openPayload(ct, key, salt []byte) (payload []byte, err error) {
	defer func() {
		if recover() != nil {
			payload, err = nil, types.WrongPasswordError{}
		}
	}()

	var plaintext []byte
	if plaintext, err = crypto.DecryptWith(ct, key, salt); err != nil {
		return nil, types.WrongPasswordError{}
	}

	if !HasMagicIdentifier(plaintext, types.PasswordIdentifier) {
		return nil, types.WrongPasswordError{}
	}
	return plaintext[len(types.PasswordIdentifier):], nil
}
