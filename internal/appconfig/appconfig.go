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

// Package appconfig decodes the daemon/client TOML configuration file
// and applies the EMULOT_* environment overrides on top of it via
// github.com/spf13/viper, the binding library devnullvoid-pvetui uses
// for its own cmd/+internal/config split.
package appconfig

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// DaemonConfig is the [daemon] section: listen is a URL whose scheme
// selects the transport ("tcp://host:port" or
// "unix://<percent-encoded-path>"), uri is the SQLite storage path.
type DaemonConfig struct {
	Listen string `toml:"listen"`
	URI    string `toml:"uri"`
}

// ClientConfig is the [client] section: the daemon URL the CLI client
// talks to.
type ClientConfig struct {
	URL string `toml:"url"`
}

// Config is the top-level TOML document: a [daemon] section and a
// [client] section.
type Config struct {
	Daemon DaemonConfig `toml:"daemon"`
	Client ClientConfig `toml:"client"`
}

// Load decodes the TOML file at path, if non-empty, then overlays the
// EMULOT_LISTEN / EMULOT_STORAGE_URI environment variables on top of
// whatever the file specified. A missing path is not an error; the
// returned Config is then populated from defaults/environment alone.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("decoding config file %s: %w", path, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix("emulot")
	v.AutomaticEnv()

	if val := v.GetString("listen"); val != "" {
		cfg.Daemon.Listen = val
	}
	if val := v.GetString("storage_uri"); val != "" {
		cfg.Daemon.URI = val
	}

	if cfg.Daemon.URI == "" {
		dir, err := dataDir()
		if err != nil {
			return Config{}, err
		}
		cfg.Daemon.URI = dir + "/storage.db"
	}

	return cfg, nil
}

// CurlVerbose reports whether EMULOT_CURL_VERBOSE requests verbose HTTP
// client logging.
func CurlVerbose() bool {
	v := viper.New()
	v.SetEnvPrefix("emulot")
	v.AutomaticEnv()
	return v.GetBool("curl_verbose")
}
