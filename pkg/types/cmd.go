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
package types

import (
	"fmt"
)

type OutputFormat string

func (f OutputFormat) Valid() error {
	switch f {
	case OutputJSON, OutputRaw, OutputTable, OutputSecret:
		return nil
	}
	return fmt.Errorf("unsupported output format %q", string(f))
}

// SecretCmd names the Kubernetes secret written by the secret output format.
type SecretCmd struct {
	Name      string `yaml:"name" env:"OPENWALLET_SECRET_NAME"`
	Namespace string `yaml:"namespace" env:"OPENWALLET_SECRET_NAMESPACE"`
	Key       string `yaml:"key" env:"OPENWALLET_SECRET_KEY"`
}

type OpenCmd struct {
	Wallet        string
	Output        string
	Attempts      int
	PasswordStdin bool
	Secret        SecretCmd
}

type LogOptions struct {
	Debug   bool
	Quiet   bool
	Journal bool
}

type OutputOptions struct {
	Format OutputFormat
	Color  bool
	Secret SecretCmd
}
