/*
 *   Copyright 2022 Martin Proffitt <mproffitt@choclab.net>
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
	"os"

	"r00t2.io/gokwallet"
)

const (
	keyringApp    string = "openwallet"
	keyringFolder string = "Passwords"
	keyringMap    string = "openwallet"
)

var errSkipped error = errors.New("skipped")

// Gets a secret value from kwallet
func getSecretFromKWallet(what string) (string, error) {
	if os.Getenv("OPENWALLET_USE_LIBSECRET") != "" {
		return "", errSkipped
	}

	var (
		err  error
		opts gokwallet.RecurseOpts = *gokwallet.DefaultRecurseOpts
		wm   *gokwallet.WalletManager
	)

	opts.AllWalletItems = true
	if wm, err = gokwallet.NewWalletManager(&opts, keyringApp); err != nil {
		return "", err
	}

	for _, v := range wm.Wallets {
		if f, ok := v.Folders[keyringFolder]; ok {
			if m, ok := f.Maps[keyringMap]; ok {
				if p, ok := m.Value[what]; ok {
					return p, nil
				}
			}
		}
	}
	return "", nil
}
