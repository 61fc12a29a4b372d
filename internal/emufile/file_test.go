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

package emufile

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// newFetchTestServer serves body for both GET and HEAD requests,
// standing in for the emulator firmware host a remote File points at.
func newFetchTestServer(body []byte) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
}

func TestParseClassifiesLocalVsRemote(t *testing.T) {
	local := Parse("/var/lib/emulot/uefi.fd")
	if local.String() != "/var/lib/emulot/uefi.fd" {
		t.Fatalf("expected local path preserved, got %s", local.String())
	}

	remote := Parse("https://example.com/uefi.fd")
	if remote.String() != "https://example.com/uefi.fd" {
		t.Fatalf("expected remote URL preserved, got %s", remote.String())
	}
}

func TestJSONRoundTripAsPlainString(t *testing.T) {
	f := Parse("https://example.com/bios.bin")
	encoded, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal failed: %s", err.Error())
	}
	if string(encoded) != `"https://example.com/bios.bin"` {
		t.Fatalf("expected plain JSON string, got %s", encoded)
	}

	var decoded File
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %s", err.Error())
	}
	if decoded.String() != f.String() {
		t.Fatalf("round trip mismatch: %s != %s", decoded.String(), f.String())
	}
}

func TestPathReturnsLocalVerbatim(t *testing.T) {
	f := Local("/opt/emulot/bios.bin")
	path, err := f.Path("/unused")
	if err != nil {
		t.Fatalf("Path failed: %s", err.Error())
	}
	if path != "/opt/emulot/bios.bin" {
		t.Fatalf("expected local path untouched, got %s", path)
	}
}

func TestPathFetchesAndCachesRemoteFile(t *testing.T) {
	mux := newFetchTestServer([]byte("firmware-bytes"))
	defer mux.Close()

	dir := t.TempDir()
	f := Parse(mux.URL + "/bios.bin")

	path, err := f.Path(dir)
	if err != nil {
		t.Fatalf("Path failed: %s", err.Error())
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("expected cached file under %s, got %s", dir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading cached file failed: %s", err.Error())
	}
	if string(data) != "firmware-bytes" {
		t.Fatalf("expected fetched content, got %q", data)
	}

	// A second resolution with no Last-Modified change must not error
	// and must still return the same cached path.
	path2, err := f.Path(dir)
	if err != nil {
		t.Fatalf("second Path call failed: %s", err.Error())
	}
	if path2 != path {
		t.Fatalf("expected stable cache path, got %s then %s", path, path2)
	}
}
