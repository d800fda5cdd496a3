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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-pinentry"
)

// mockProcess stands in for the pinentry binary
type mockProcess struct {
	status   bool
	closeErr error
	startErr error
	writeErr error
	exit     int
	lines    []struct {
		line []byte
		err  error
	}
}

func (m *mockProcess) ReadLine() ([]byte, bool, error) {
	line := m.lines[0]
	m.lines = m.lines[1:]
	return line.line, m.status, line.err
}

func (m *mockProcess) Start(string, []string) error {
	return m.startErr
}

func (m *mockProcess) Close() error {
	return m.closeErr
}

func (m *mockProcess) Write([]byte) (int, error) {
	return m.exit, m.writeErr
}

func pinentryReturning(lines ...struct {
	line []byte
	err  error
}) func(options ...pinentry.ClientOption) (*pinentry.Client, error) {
	return func(options ...pinentry.ClientOption) (*pinentry.Client, error) {
		process := mockProcess{status: true, lines: lines}
		return pinentry.NewClient(pinentry.WithProcess(&process))
	}
}

func noPinentry(options ...pinentry.ClientOption) (*pinentry.Client, error) {
	return nil, errors.New("exec: \"pinentry\": executable file not found in $PATH")
}

type line = struct {
	line []byte
	err  error
}

func TestGetPassword(t *testing.T) {
	tests := []struct {
		name             string
		expectedResult   []byte
		expectedErr      error
		mockClient       func(options ...pinentry.ClientOption) (c *pinentry.Client, err error)
		mockReadPassword func(prompt string) ([]byte, error)
	}{
		{
			name:        "cancelled pinentry",
			expectedErr: ErrCancelled,
			mockClient: pinentryReturning(
				line{line: []byte("OK")},
				line{line: []byte{}, err: &pinentry.AssuanError{Code: pinentry.AssuanErrorCodeCancelled}},
				line{line: []byte("BYE")},
			),
		},
		{
			name:        "no pinentry binary, liner fails",
			expectedErr: errors.New("liner: function not supported in this terminal"),
			mockClient:  noPinentry,
			mockReadPassword: func(prompt string) ([]byte, error) {
				return nil, errors.New("liner: function not supported in this terminal")
			},
		},
		{
			name:        "no pinentry binary, empty password",
			expectedErr: ErrNoPassword,
			mockClient:  noPinentry,
			mockReadPassword: func(prompt string) ([]byte, error) {
				return []byte("\r\n"), nil
			},
		},
		{
			name:           "no pinentry binary, whitespace is kept",
			expectedResult: []byte("  pass word "),
			mockClient:     noPinentry,
			mockReadPassword: func(prompt string) ([]byte, error) {
				return []byte("  pass word "), nil
			},
		},
		{
			name:           "no pinentry binary, liner succeeds",
			expectedResult: []byte("hunter2"),
			mockClient:     noPinentry,
			mockReadPassword: func(prompt string) ([]byte, error) {
				return []byte("hunter2\n"), nil
			},
		},
		{
			name:           "pinentry succeeds",
			expectedResult: []byte("password"),
			mockClient: pinentryReturning(
				line{line: []byte("OK")},
				line{line: []byte("D password")},
				line{line: []byte("OK")},
				line{line: []byte("BYE")},
			),
		},
		{
			name:           "pinentry keeps whitespace",
			expectedResult: []byte(" pw "),
			mockClient: pinentryReturning(
				line{line: []byte("OK")},
				line{line: []byte("D  pw ")},
				line{line: []byte("OK")},
				line{line: []byte("BYE")},
			),
		},
		{
			name:        "pinentry failure is not reported as empty password",
			expectedErr: errors.New("pinentry: broken pipe"),
			mockClient: pinentryReturning(
				line{line: []byte("OK")},
				line{line: []byte{}, err: errors.New("pinentry: broken pipe")},
				line{line: []byte("BYE")},
			),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ope := GetPinentry
			orp := readPassword
			defer func() {
				GetPinentry = ope
				readPassword = orp
			}()
			GetPinentry = test.mockClient
			readPassword = test.mockReadPassword

			actual, err := GetPassword("title", "description", "Password:")
			if test.expectedErr != nil {
				require.Error(t, err)
				assert.Equal(t, test.expectedErr.Error(), err.Error())
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expectedResult, actual)
		})
	}
}

func TestPromptPassword(t *testing.T) {
	ogp := GetPassword
	defer func() {
		GetPassword = ogp
	}()

	var description string
	GetPassword = func(title, desc, prompt string) ([]byte, error) {
		description = desc
		return []byte("s3cret"), nil
	}

	buf, err := PromptPassword("/tmp/primary.wallet")
	require.NoError(t, err)
	defer buf.Destroy()
	assert.Equal(t, "s3cret", buf.String())
	assert.Contains(t, description, "/tmp/primary.wallet")

	GetPassword = func(title, desc, prompt string) ([]byte, error) {
		return nil, ErrCancelled
	}
	buf, err = PromptPassword("/tmp/primary.wallet")
	assert.Nil(t, buf)
	assert.ErrorIs(t, err, ErrCancelled)
}
