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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/awnumar/memguard"
	"golang.org/x/term"
)

var isTerminal func(fd int) bool = term.IsTerminal

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isTerminal(int(f.Fd()))
}

// ReadPasswordFrom reads a single line from f into locked memory. A trailing
// carriage return is dropped. f must not be a terminal.
func ReadPasswordFrom(f *os.File) (*memguard.LockedBuffer, error) {
	if IsTerminal(f) {
		return nil, fmt.Errorf("refusing to read password from %s: it is a terminal", f.Name())
	}

	var (
		buf *memguard.LockedBuffer
		err error
	)
	if buf, err = memguard.NewBufferFromReaderUntil(f, '\n'); err != nil && !errors.Is(err, io.EOF) {
		if buf != nil {
			buf.Destroy()
		}
		return nil, fmt.Errorf("unable to read password: %w", err)
	}

	if buf == nil {
		return nil, ErrNoPassword
	}

	if buf.Size() > 0 && buf.Bytes()[buf.Size()-1] == '\r' {
		trimmed := memguard.NewBufferFromBytes(append([]byte(nil), buf.Bytes()[:buf.Size()-1]...))
		buf.Destroy()
		buf = trimmed
	}

	if buf.Size() == 0 {
		buf.Destroy()
		return nil, ErrNoPassword
	}
	return buf, nil
}
