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

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/project-machine/emulot/internal/config"
)

// Create uploads cfg under name via POST /guests/create/{name}.
func Create(ctx context.Context, b *EndpointBuilder, name string, cfg config.GuestConfig) error {
	body, err := config.Encode(cfg)
	if err != nil {
		return fmt.Errorf("encoding guest config: %w", err)
	}
	_, err = b.WithPath(http.MethodPost, "/guests/create/"+name).WithJSONBody(body).Send(ctx)
	return err
}

// Remove deletes the guest with the given id via DELETE /guests/remove/{id}.
func Remove(ctx context.Context, b *EndpointBuilder, id int64) error {
	_, err := b.WithPath(http.MethodDelete, fmt.Sprintf("/guests/remove/%d", id)).Send(ctx)
	return err
}

// List returns the (name, id) pairs the daemon currently has stored
// via GET /guests/list.
func List(ctx context.Context, b *EndpointBuilder) ([]config.Labeled[int64], error) {
	data, err := b.WithPath(http.MethodGet, "/guests/list").Send(ctx)
	if err != nil {
		return nil, err
	}
	var labeled []config.Labeled[int64]
	if err := json.Unmarshal(data, &labeled); err != nil {
		return nil, fmt.Errorf("decoding guest list: %w", err)
	}
	return labeled, nil
}

// Lookup resolves name to its storage id via GET /guests/lookup/{name}.
func Lookup(ctx context.Context, b *EndpointBuilder, name string) (int64, error) {
	data, err := b.WithPath(http.MethodGet, "/guests/lookup/"+name).Send(ctx)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return 0, fmt.Errorf("decoding guest id: %w", err)
	}
	return id, nil
}

// Start runs the guest with the given id via POST /guests/start/{id}.
func Start(ctx context.Context, b *EndpointBuilder, id int64) error {
	_, err := b.WithPath(http.MethodPost, fmt.Sprintf("/guests/start/%d", id)).Send(ctx)
	return err
}

// Stop gracefully shuts down the guest with the given id via POST
// /guests/shutdown/{id} (the route's path variable is named :name,
// see internal/daemon/handlers.go's handleShutdown doc comment).
func Stop(ctx context.Context, b *EndpointBuilder, id int64) error {
	_, err := b.WithPath(http.MethodPost, fmt.Sprintf("/guests/shutdown/%d", id)).Send(ctx)
	return err
}
