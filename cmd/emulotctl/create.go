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
	"github.com/spf13/cobra"

	"github.com/project-machine/emulot/internal/appconfig"
	"github.com/project-machine/emulot/internal/client"
	"github.com/project-machine/emulot/internal/config"
)

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> <config>",
		Short: "upload a guest config under name",
		Args:  cobra.ExactArgs(2),
		RunE:  runCreate,
	}
}

func runCreate(cmd *cobra.Command, args []string) error {
	name, path := args[0], args[1]

	var cfg config.GuestConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return fmt.Errorf("decoding guest config %s: %w", path, err)
	}
	cfg.ApplyDefaults()

	daemonURL, err := resolveDaemonURL(cmd)
	if err != nil {
		return err
	}
	b, err := client.NewEndpointBuilder(daemonURL, appconfig.CurlVerbose())
	if err != nil {
		return err
	}

	if err := client.Create(context.Background(), b, name, cfg); err != nil {
		return err
	}
	fmt.Printf("created %s\n", name)
	return nil
}
