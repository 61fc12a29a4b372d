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

package main

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/project-machine/emulot/internal/appconfig"
	"github.com/project-machine/emulot/internal/daemon"
	"github.com/project-machine/emulot/internal/orchestrator"
	"github.com/project-machine/emulot/internal/storage"
)

func newDaemonCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "start the control plane",
		RunE:  runDaemonSubcommand,
	}
	cmd.Flags().String("listen", "", "listen URL (tcp://host:port or unix:///path)")
	cmd.Flags().String("local-storage", ".", "directory guests resolve remote file references under")
	return cmd
}

func runDaemonSubcommand(cmd *cobra.Command, args []string) error {
	logger := logrus.StandardLogger()

	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := appconfig.Load(configPath)
	if err != nil {
		return err
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.Daemon.Listen = listen
	}
	if cfg.Daemon.Listen == "" {
		return fmt.Errorf("no listen URL configured: set --listen, EMULOT_LISTEN, or the config file's daemon.listen")
	}

	store, err := storage.New(cfg.Daemon.URI)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	localStorage, _ := cmd.Flags().GetString("local-storage")
	orch := orchestrator.New(store, localStorage, logger)
	state := &daemon.State{Storage: store, Orchestrator: orch, Logger: logger}
	router := daemon.Router(state)

	listenURL, err := url.Parse(cfg.Daemon.Listen)
	if err != nil {
		return fmt.Errorf("parsing listen url %s: %w", cfg.Daemon.Listen, err)
	}
	listener, err := daemon.Listen(listenURL)
	if err != nil {
		return fmt.Errorf("binding listener %s: %w", cfg.Daemon.Listen, err)
	}

	logger.WithField("listen", cfg.Daemon.Listen).Info("emulotctl serving control plane")
	server := &http.Server{Handler: router}
	return server.Serve(listener)
}
