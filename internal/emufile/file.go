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

// Package emufile resolves a file reference that may be either a local
// path or a remote URL into a local filesystem path, content-addressing
// remote fetches by the SHA3-256 of the canonical URL. Grounded on
// original_source's file.rs.
package emufile

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/sha3"
)

// File is either a local path (used verbatim) or a remote URL (fetched
// and cached under a content-addressed name). It round-trips through
// JSON/TOML/YAML as a plain string, exactly like original_source's
// hand-written serde Serialize/Deserialize for File.
type File struct {
	url   *url.URL // nil for a local file
	local string
}

// Local builds a File backed by a local path.
func Local(path string) File {
	return File{local: path}
}

// Parse classifies s as a remote URL (if it parses as one with both a
// scheme and a host) or a local path otherwise, mirroring original_source's
// FileVisitor::visit_str, which prefers a successful URL parse and
// falls back to a local path.
func Parse(s string) File {
	if u, err := url.Parse(s); err == nil && u.Scheme != "" && u.Host != "" {
		return File{url: u}
	}
	return File{local: s}
}

func (f File) String() string {
	if f.url != nil {
		return f.url.String()
	}
	return f.local
}

func (f File) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *File) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = Parse(s)
	return nil
}

func (f File) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *File) UnmarshalText(data []byte) error {
	*f = Parse(string(data))
	return nil
}

// httpClient is overridable in tests; the default matches a plain
// net/http client with a bounded timeout for the HEAD/GET calls a
// remote File resolution makes.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// Path resolves f to a local filesystem path. Local files return their
// path verbatim. Remote files are cached under localStorage, named by
// the hex SHA3-256 digest of the canonical URL string; a cached copy is
// reused unless the remote Last-Modified time is newer than the local
// file's mtime, in which case it is refetched. If either check fails
// (e.g. no cached copy yet, or the server doesn't report a modification
// time), a fetch is attempted.
func (f File) Path(localStorage string) (string, error) {
	if f.url == nil {
		return f.local, nil
	}

	digest := sha3.Sum256([]byte(f.url.String()))
	localPath := filepath.Join(localStorage, hex.EncodeToString(digest[:]))

	if shouldFetch(f.url.String(), localPath) {
		if err := fetch(f.url.String(), localPath); err != nil {
			return "", fmt.Errorf("fetching %s: %w", f.url, err)
		}
	}
	return localPath, nil
}

// shouldFetch reports whether the cached copy at localPath is missing
// or stale relative to the remote Last-Modified header.
func shouldFetch(remoteURL, localPath string) bool {
	info, err := os.Stat(localPath)
	if err != nil {
		return true
	}

	resp, err := httpClient.Head(remoteURL)
	if err != nil {
		return true
	}
	defer resp.Body.Close()

	lastModified := resp.Header.Get("Last-Modified")
	if lastModified == "" {
		return true
	}
	remoteTime, err := http.ParseTime(lastModified)
	if err != nil {
		return true
	}
	return remoteTime.After(info.ModTime())
}

func fetch(remoteURL, localPath string) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return err
	}
	resp, err := httpClient.Get(remoteURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s fetching %s", resp.Status, remoteURL)
	}

	out, err := os.CreateTemp(filepath.Dir(localPath), ".emulot-fetch-*")
	if err != nil {
		return err
	}
	tmpName := out.Name()
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmpName)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, localPath)
}
