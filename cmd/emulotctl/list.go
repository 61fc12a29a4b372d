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

	"github.com/spf13/cobra"

	"github.com/project-machine/emulot/internal/appconfig"
	"github.com/project-machine/emulot/internal/client"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list stored guests",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	daemonURL, err := resolveDaemonURL(cmd)
	if err != nil {
		return err
	}
	b, err := client.NewEndpointBuilder(daemonURL, appconfig.CurlVerbose())
	if err != nil {
		return err
	}

	labeled, err := client.List(context.Background(), b)
	if err != nil {
		return err
	}
	for _, l := range labeled {
		fmt.Printf("%d\t%s\n", l.Item, l.Label)
	}
	return nil
}
