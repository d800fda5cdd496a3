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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipeWith(t *testing.T, content string) *os.File {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	t.Cleanup(func() { r.Close() })
	return r
}

func TestReadPasswordFrom(t *testing.T) {
	oit := isTerminal
	defer func() {
		isTerminal = oit
	}()
	isTerminal = func(int) bool { return false }

	tests := []struct {
		name     string
		input    string
		expected string
		err      error
	}{
		{name: "single line", input: "password\n", expected: "password"},
		{name: "first line only", input: "first\nsecond\n", expected: "first"},
		{name: "no newline", input: "password", expected: "password"},
		{name: "crlf", input: "password\r\n", expected: "password"},
		{name: "spaces kept", input: " pass word \n", expected: " pass word "},
		{name: "empty", input: "", err: ErrNoPassword},
		{name: "empty line", input: "\n", err: ErrNoPassword},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buf, err := ReadPasswordFrom(pipeWith(t, test.input))
			if test.err != nil {
				assert.ErrorIs(t, err, test.err)
				assert.Nil(t, buf)
				return
			}
			require.NoError(t, err)
			defer buf.Destroy()
			assert.Equal(t, test.expected, buf.String())
		})
	}
}

func TestReadPasswordFromTerminal(t *testing.T) {
	oit := isTerminal
	defer func() {
		isTerminal = oit
	}()
	isTerminal = func(int) bool { return true }

	buf, err := ReadPasswordFrom(pipeWith(t, "password\n"))
	assert.Nil(t, buf)
	assert.ErrorContains(t, err, "it is a terminal")
}

func TestPromptAndStdinAgree(t *testing.T) {
	var (
		oit = isTerminal
		ope = GetPinentry
		orp = readPassword
	)
	defer func() {
		isTerminal = oit
		GetPinentry = ope
		readPassword = orp
	}()
	isTerminal = func(int) bool { return false }
	GetPinentry = noPinentry

	for _, typed := range []string{"  pass word ", "\tpassword", "password  "} {
		readPassword = func(prompt string) ([]byte, error) {
			return []byte(typed), nil
		}

		prompted, err := PromptPassword("primary.wallet")
		require.NoError(t, err)
		piped, err := ReadPasswordFrom(pipeWith(t, typed+"\n"))
		require.NoError(t, err)

		assert.Equal(t, typed, prompted.String())
		assert.Equal(t, prompted.String(), piped.String())
		prompted.Destroy()
		piped.Destroy()
	}
}
