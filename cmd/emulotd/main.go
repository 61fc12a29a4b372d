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

// Command emulotd is the emulot daemon: it serves the HTTP control
// plane over the configured listen transport.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/project-machine/emulot/internal/appconfig"
	"github.com/project-machine/emulot/internal/daemon"
	"github.com/project-machine/emulot/internal/orchestrator"
	"github.com/project-machine/emulot/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "emulotd",
	Short: "emulot control-plane daemon",
	RunE:  runDaemon,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to the daemon TOML config file")
	rootCmd.PersistentFlags().String("listen", "", "listen URL (tcp://host:port or unix:///path)")
	rootCmd.PersistentFlags().String("storage-uri", "", "SQLite storage URI")
	rootCmd.PersistentFlags().String("local-storage", "", "directory guests resolve remote file references under")

	viper.SetEnvPrefix("emulot")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("listen", rootCmd.PersistentFlags().Lookup("listen"))
	_ = viper.BindPFlag("storage_uri", rootCmd.PersistentFlags().Lookup("storage-uri"))
}

func runDaemon(cmd *cobra.Command, args []string) error {
	logger := logrus.StandardLogger()

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := appconfig.Load(configPath)
	if err != nil {
		return err
	}
	if listen := viper.GetString("listen"); listen != "" {
		cfg.Daemon.Listen = listen
	}
	if uri := viper.GetString("storage_uri"); uri != "" {
		cfg.Daemon.URI = uri
	}
	if cfg.Daemon.Listen == "" {
		return fmt.Errorf("no listen URL configured: set --listen, EMULOT_LISTEN, or the config file's daemon.listen")
	}

	localStorage, _ := cmd.Flags().GetString("local-storage")
	if localStorage == "" {
		localStorage = "."
	}

	store, err := storage.New(cfg.Daemon.URI)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	orch := orchestrator.New(store, localStorage, logger)
	state := &daemon.State{Storage: store, Orchestrator: orch, Logger: logger}
	router := daemon.Router(state)

	listenURL, err := parseListenURL(cfg.Daemon.Listen)
	if err != nil {
		return err
	}
	listener, err := daemon.Listen(listenURL)
	if err != nil {
		return fmt.Errorf("binding listener %s: %w", cfg.Daemon.Listen, err)
	}

	logger.WithField("listen", cfg.Daemon.Listen).Info("emulotd serving control plane")
	return daemonServe(listener, router)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "emulotd: %v\n", err)
		os.Exit(1)
	}
}
