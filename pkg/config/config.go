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
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v2"

	"github.com/notapipeline/openwallet/pkg/types"
)

// These functions are referenced as variables to enable them to
// be mocked in tests
var (
	ConfigPath func() string = getConfigPath
)

type Config struct {
	Wallet   string `yaml:"wallet" env:"OPENWALLET_FILE"`
	Output   string `yaml:"output" env:"OPENWALLET_OUTPUT"`
	Attempts int    `yaml:"attempts" env:"OPENWALLET_ATTEMPTS"`
	Pinentry string `yaml:"pinentry" env:"OPENWALLET_PINENTRY"`

	Debug   bool `yaml:"debug" env:"OPENWALLET_DEBUG"`
	Quiet   bool `yaml:"quiet" env:"OPENWALLET_QUIET"`
	Journal bool `yaml:"journal" env:"OPENWALLET_JOURNAL"`

	Secret types.SecretCmd `yaml:"secret"`

	// path of the file the config was read from, empty if none was found
	path string
}

func New() *Config {
	return &Config{
		Output:   string(types.OutputJSON),
		Attempts: types.DefaultAttempts,
		Secret: types.SecretCmd{
			Key: types.DefaultSecretKey,
		},
	}
}

// Load the config file from user local config directory
//
// The config file will be loaded from path, or ~/.config/openwallet/config.yaml
// when path is empty, if it exists and then the environment will be checked
// for overrides.
//
// Users are expected to call `MergeOpenCmd` and `MergeLogOptions` to
// override the config with command line options.
func (c *Config) Load(path string) (err error) {
	if err = c.loadYaml(path); err != nil {
		return
	}
	if err = c.loadEnv(); err != nil {
		return
	}

	return
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

func (c *Config) loadYaml(path string) (err error) {
	var (
		cp       string = path
		yamlFile []byte
	)

	if cp == "" {
		cp = ConfigPath()
	}

	if _, err = os.Stat(cp); errors.Is(err, os.ErrNotExist) {
		if path != "" {
			return fmt.Errorf("config file %s: %w", cp, err)
		}
		return nil
	}
	if yamlFile, err = os.ReadFile(cp); err != nil {
		return fmt.Errorf("unable to read config file %s: %w", cp, err)
	}

	if err = yaml.Unmarshal(yamlFile, c); err != nil {
		return fmt.Errorf("invalid config file %s: %w", cp, err)
	}
	c.path = cp
	return nil
}

func (c *Config) loadEnv() (err error) {
	return env.Parse(c)
}

func (c *Config) MergeOpenCmd(cmd types.OpenCmd) {
	if cmd.Wallet != "" {
		c.Wallet = cmd.Wallet
	}
	if cmd.Output != "" {
		c.Output = cmd.Output
	}
	if cmd.Attempts != 0 {
		c.Attempts = cmd.Attempts
	}
	if cmd.Secret.Name != "" {
		c.Secret.Name = cmd.Secret.Name
	}
	if cmd.Secret.Namespace != "" {
		c.Secret.Namespace = cmd.Secret.Namespace
	}
	if cmd.Secret.Key != "" {
		c.Secret.Key = cmd.Secret.Key
	}
}

func (c *Config) MergeLogOptions(opts types.LogOptions) {
	if opts.Debug {
		c.Debug = opts.Debug
	}
	if opts.Quiet {
		c.Quiet = opts.Quiet
	}
	if opts.Journal {
		c.Journal = opts.Journal
	}
}

func (c *Config) LogOptions() types.LogOptions {
	return types.LogOptions{
		Debug:   c.Debug,
		Quiet:   c.Quiet,
		Journal: c.Journal,
	}
}

func (c *Config) OutputOptions(color bool) types.OutputOptions {
	return types.OutputOptions{
		Format: types.OutputFormat(c.Output),
		Color:  color,
		Secret: c.Secret,
	}
}

// Validate checks the merged configuration before any wallet is read and
// expands a leading ~ in the wallet path.
func (c *Config) Validate() (err error) {
	if c.Wallet == "" {
		return fmt.Errorf("no wallet file specified")
	}
	if c.Wallet, err = homedir.Expand(c.Wallet); err != nil {
		return fmt.Errorf("invalid wallet path: %w", err)
	}
	if err = types.OutputFormat(c.Output).Valid(); err != nil {
		return err
	}
	if c.Attempts < 1 {
		return fmt.Errorf("attempts must be at least 1, got %d", c.Attempts)
	}
	if types.OutputFormat(c.Output) == types.OutputSecret && c.Secret.Name == "" {
		return fmt.Errorf("secret output requires a secret name")
	}
	return nil
}

func getConfigPath() string {
	home, _ := homedir.Dir()
	return filepath.Join(home, ".config", "openwallet", "config.yaml")
}
