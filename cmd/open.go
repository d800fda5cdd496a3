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
package cmd

import (
	"errors"
	"time"

	"github.com/awnumar/memguard"
	backoff "github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/notapipeline/openwallet/pkg/config"
	"github.com/notapipeline/openwallet/pkg/output"
	"github.com/notapipeline/openwallet/pkg/types"
	"github.com/notapipeline/openwallet/pkg/wallet"
)

// openWalletCmd represents the open command
var openWalletCmd = &cobra.Command{
	Use:   "open [wallet file]",
	Short: "Decrypt a wallet and print its contents",
	Long: `Decrypt a wallet file and print the wallet it contains.

When no file is given the wallet named in the config file or OPENWALLET_FILE
is opened.

Output formats:
  json    indented JSON, coloured on a terminal (default)
  raw     the payload exactly as stored
  table   one row per top level key
  secret  a Kubernetes Secret manifest holding the payload

When the password is typed in and is wrong you are asked again, up to
--attempts times. Passwords from the environment, a keyring or stdin are
tried once.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOpen,
}

func init() {
	addOpenFlags(openWalletCmd)
	rootCmd.AddCommand(openWalletCmd)
}

func addOpenFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&openCmd.Output, "output", "o", "", "output format, one of json|raw|table|secret (default json)")
	cmd.Flags().BoolVar(&openCmd.PasswordStdin, "password-stdin", false, "read the password from stdin")
	cmd.Flags().IntVar(&openCmd.Attempts, "attempts", 0, "number of times to ask for a password (default 3)")
	cmd.Flags().StringVar(&openCmd.Secret.Name, "secret-name", "", "name of the Kubernetes secret")
	cmd.Flags().StringVar(&openCmd.Secret.Namespace, "secret-namespace", "", "namespace of the Kubernetes secret")
	cmd.Flags().StringVar(&openCmd.Secret.Key, "secret-key", "", "data key holding the wallet in the Kubernetes secret (default wallet.json)")
}

func runOpen(cmd *cobra.Command, args []string) error {
	var (
		c       *config.Config
		err     error
		path    string
		payload []byte
	)

	if len(args) == 1 {
		path = args[0]
	}
	if c, err = loadConfig(path); err != nil {
		return err
	}
	if err = c.Validate(); err != nil {
		return err
	}

	l := newLogger(cmd, c)
	opener := wallet.NewOpener(wallet.WithLogger(l))

	// reject anything that is not a wallet before asking for a password
	if err = opener.Check(c.Wallet); err != nil {
		return err
	}

	if payload, err = openWallet(opener, c.Wallet, openCmd.PasswordStdin, c.Attempts, l); err != nil {
		return err
	}
	defer memguard.WipeBytes(payload)

	return output.Write(cmd.OutOrStdout(), payload, c.OutputOptions(isTerminal(cmd.OutOrStdout())))
}

// openWallet asks for a password and opens the wallet at path. Only a wrong
// password typed by the user is retried; every other failure is returned
// straight away.
func openWallet(opener *wallet.Opener, path string, stdin bool, attempts int, l *logrus.Entry) ([]byte, error) {
	var (
		payload []byte
		attempt int
	)

	operation := func() error {
		attempt++
		password, source, err := getPassword(path, stdin)
		if err != nil {
			return backoff.Permanent(err)
		}
		defer password.Destroy()

		l.WithFields(logrus.Fields{
			"source":  source.String(),
			"attempt": attempt,
		}).Debug("opening wallet")

		if payload, err = opener.Open(path, password.Bytes()); err != nil {
			if errors.Is(err, types.WrongPasswordError{}) && source.Interactive() {
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}

	notify := func(err error, d time.Duration) {
		l.Warnf("%s, %d of %d attempts used", err, attempt, attempts)
	}

	var b backoff.BackOff = backoff.WithMaxRetries(newBackOff(), uint64(attempts-1))
	if err := backoff.RetryNotify(operation, b, notify); err != nil {
		return nil, err
	}
	return payload, nil
}
