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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/project-machine/emulot/internal/appconfig"
	"github.com/project-machine/emulot/internal/client"
)

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <name>",
		Short: "start a stored guest",
		Args:  cobra.ExactArgs(1),
		RunE:  runStart,
	}
}

func runStart(cmd *cobra.Command, args []string) error {
	daemonURL, err := resolveDaemonURL(cmd)
	if err != nil {
		return err
	}
	b, err := client.NewEndpointBuilder(daemonURL, appconfig.CurlVerbose())
	if err != nil {
		return err
	}

	ctx := context.Background()
	id, err := resolveGuestID(ctx, b, args[0])
	if err != nil {
		return err
	}
	if err := client.Start(ctx, b, id); err != nil {
		return err
	}
	fmt.Printf("started %s (id %d)\n", args[0], id)
	return nil
}

// resolveGuestID accepts either a numeric id or a stored name, matching
// the CLI surface's "<name>" argument while the control plane itself
// addresses guests by id.
func resolveGuestID(ctx context.Context, b *client.EndpointBuilder, arg string) (int64, error) {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return id, nil
	}
	return client.Lookup(ctx, b, arg)
}
