/*
// Copyright contributors to the Virtual Machine Manager for Go project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
*/

// Command emulotctl is the emulot CLI: it can run a guest directly in
// the foreground from a local config file, or act as a client of a
// running emulotd daemon.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/project-machine/emulot/internal/appconfig"
)

var rootCmd = &cobra.Command{
	Use:   "emulotctl",
	Short: "run and control emulot guests",
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to the client TOML config file")
	rootCmd.PersistentFlags().String("daemon-url", "", "daemon URL (overrides the config file's client.url)")

	viper.SetEnvPrefix("emulot")
	viper.AutomaticEnv()

	rootCmd.AddCommand(
		newRunCmd(),
		newDaemonCmd(),
		newStartCmd(),
		newStopCmd(),
		newListCmd(),
		newCreateCmd(),
		newRmCmd(),
	)
}

// resolveDaemonURL reads --daemon-url, then the client config file's
// client.url, in that priority order. No environment variable sets the
// daemon URL.
func resolveDaemonURL(cmd *cobra.Command) (string, error) {
	if url, _ := cmd.Flags().GetString("daemon-url"); url != "" {
		return url, nil
	}
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := appconfig.Load(configPath)
	if err != nil {
		return "", err
	}
	if cfg.Client.URL == "" {
		return "", errors.New("no daemon URL configured: set --daemon-url or the config file's client.url")
	}
	return cfg.Client.URL, nil
}

func main() {
	logrus.SetOutput(os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		err = errors.Wrap(err, "emulotctl")
		if logrus.GetLevel() >= logrus.DebugLevel {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(-1)
	}
}
