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
	"github.com/spf13/cobra"

	"github.com/notapipeline/openwallet/pkg/types"
)

var (
	cfgFile string
	logOpts types.LogOptions
	openCmd types.OpenCmd
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "openwallet [wallet file]",
	Short: "Open encrypted wallet files",
	Long: `
Open encrypted wallet files

Reads a password protected wallet file, checks the password and prints the
decrypted wallet. The password is taken from OPENWALLET_PASSWORD, KWallet or
the Secret Service if one of them holds it, otherwise you will be asked for it.

If called with a single file and no subcommand this behaves as "open".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runOpen(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		fatal("%s", err)
	}
}

func init() {
	// These are consistent across all commands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/openwallet/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&logOpts.Debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&logOpts.Quiet, "quiet", false, "only log errors")
	rootCmd.PersistentFlags().BoolVar(&logOpts.Journal, "journal", false, "also log to the systemd journal")

	// the bare form takes the same flags as open
	addOpenFlags(rootCmd)
}
