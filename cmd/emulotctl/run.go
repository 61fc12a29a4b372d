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
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/project-machine/emulot/internal/config"
	"github.com/project-machine/emulot/internal/guest"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <config>",
		Short: "run a guest in the foreground from a local config file",
		Args:  cobra.ExactArgs(1),
		RunE:  runRun,
	}
	cmd.Flags().Bool("validate", false, "parse the config file and exit without launching the guest")
	cmd.Flags().String("local-storage", ".", "directory to resolve remote file references under")
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	path := args[0]

	var cfg config.GuestConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return fmt.Errorf("decoding guest config %s: %w", path, err)
	}
	cfg.ApplyDefaults()

	validateOnly, _ := cmd.Flags().GetBool("validate")
	if validateOnly {
		if _, err := cfg.Argv(""); err != nil {
			return fmt.Errorf("invalid guest config: %w", err)
		}
		fmt.Println("config is valid")
		return nil
	}

	localStorage, _ := cmd.Flags().GetString("local-storage")
	g := guest.New(cfg, localStorage, logrus.StandardLogger())

	ctx := context.Background()
	if err := g.Run(ctx); err != nil {
		return fmt.Errorf("launching guest: %w", err)
	}
	defer g.Kill()

	fmt.Println("guest running, press Ctrl-C to shut down")
	waitForInterrupt()

	if err := g.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down guest: %w", err)
	}
	return nil
}
