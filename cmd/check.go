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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notapipeline/openwallet/pkg/wallet"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [wallet file]",
	Short: "Check a file is a wallet without decrypting it",
	Long: `Reads the cleartext header of a wallet file. No password is needed
and nothing is decrypted, so a file that passes may still fail to open.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		}

		c, err := loadConfig(path)
		if err != nil {
			return err
		}
		if err = c.Validate(); err != nil {
			return err
		}

		l := newLogger(cmd, c)
		if err = wallet.NewOpener(wallet.WithLogger(l)).Check(c.Wallet); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: wallet file\n", c.Wallet)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
