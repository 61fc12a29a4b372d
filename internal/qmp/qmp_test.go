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

package qmp

import "testing"

func TestDecodeResponseGreeting(t *testing.T) {
	line := []byte(`{"QMP":{"version":{"qemu":{"major":8,"minor":1,"micro":0},"package":""},"capabilities":[]}}`)
	response, err := decodeResponse(line)
	if err != nil {
		t.Fatalf("decodeResponse failed: %s", err.Error())
	}
	if response.Kind != ResponseGreeting {
		t.Fatalf("expected ResponseGreeting, got %v", response.Kind)
	}
	if response.Greeting.Version.QEMU.Major != 8 {
		t.Fatalf("expected major version 8, got %d", response.Greeting.Version.QEMU.Major)
	}
}

func TestDecodeResponseReturn(t *testing.T) {
	response, err := decodeResponse([]byte(`{"return": {}}`))
	if err != nil {
		t.Fatalf("decodeResponse failed: %s", err.Error())
	}
	if response.Kind != ResponseReturn {
		t.Fatalf("expected ResponseReturn, got %v", response.Kind)
	}
}

func TestDecodeResponseErrorDefaultsMissingFields(t *testing.T) {
	response, err := decodeResponse([]byte(`{"error": {}}`))
	if err != nil {
		t.Fatalf("decodeResponse failed: %s", err.Error())
	}
	if response.Kind != ResponseError {
		t.Fatalf("expected ResponseError, got %v", response.Kind)
	}
	if response.ErrorObj.Class != "Unknown" || response.ErrorObj.Desc != "No description" {
		t.Fatalf("expected defaulted class/desc, got %+v", response.ErrorObj)
	}
}

func TestDecodeResponseErrorPreservesFields(t *testing.T) {
	response, err := decodeResponse([]byte(`{"error": {"class": "GenericError", "desc": "boom"}}`))
	if err != nil {
		t.Fatalf("decodeResponse failed: %s", err.Error())
	}
	if response.ErrorObj.Class != "GenericError" || response.ErrorObj.Desc != "boom" {
		t.Fatalf("expected preserved class/desc, got %+v", response.ErrorObj)
	}
}
