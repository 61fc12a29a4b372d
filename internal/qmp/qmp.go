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

// Package qmp implements the newline-framed JSON monitor protocol
// exchanged over a running guest's stdio, grounded line-for-line on
// original_source's src/qmp/{mod,send,receive}.rs. qcli's own
// MonitorDevice models qemu's legacy human monitor (-monitor), a
// different channel; this package is the actual QMP JSON conversation
// the guest lifecycle engine drives over -chardev stdio / -mon
// chardev=...,mode=control.
package qmp

import "encoding/json"

// Greeting is QEMU's opening QMP message, advertising its version and
// capabilities.
type Greeting struct {
	Version struct {
		QEMU struct {
			Major int `json:"major"`
			Minor int `json:"minor"`
			Micro int `json:"micro"`
		} `json:"qemu"`
		Package string `json:"package"`
	} `json:"version"`
	Capabilities []string `json:"capabilities"`
}

// ResponseKind identifies which of the three tagged cases a decoded
// Response is.
type ResponseKind int

const (
	ResponseGreeting ResponseKind = iota
	ResponseReturn
	ResponseError
	ResponseEvent
)

// Response is QMP's three-case tagged variant: a greeting (keyed by the
// top-level "QMP" field), a command result (keyed by "return"), or an
// error (keyed by "error"). Any message carrying none of those keys
// (an asynchronous event) decodes as ResponseEvent with no payload.
// Only one of Greeting/Return/ErrorObj is populated, selected by Kind.
type Response struct {
	Kind     ResponseKind
	Greeting Greeting
	Return   map[string]interface{}
	ErrorObj ErrorInfo
}

// ErrorInfo is the ordered map QEMU returns on a QMP error, with at
// least class and desc. original_source's receive.rs defaults missing
// fields to "Unknown"/"No description" when formatting the error
// message; this type carries them as plain fields with the same
// defaulting behavior applied at decode time (see decodeResponse).
type ErrorInfo struct {
	Class string `json:"class"`
	Desc  string `json:"desc"`
}

// wireResponse is the raw shape used only for decoding: QMP responses
// are one-of on the top-level key, which encoding/json doesn't express
// natively, so all three candidate fields are decoded optimistically
// and disambiguated by which one was actually present.
type wireResponse struct {
	QMP    *Greeting              `json:"QMP"`
	Return map[string]interface{} `json:"return"`
	Error  map[string]string      `json:"error"`
}

func decodeResponse(line []byte) (Response, error) {
	var wire wireResponse
	if err := json.Unmarshal(line, &wire); err != nil {
		return Response{}, err
	}

	switch {
	case wire.QMP != nil:
		return Response{Kind: ResponseGreeting, Greeting: *wire.QMP}, nil
	case wire.Error != nil:
		class := wire.Error["class"]
		if class == "" {
			class = "Unknown"
		}
		desc := wire.Error["desc"]
		if desc == "" {
			desc = "No description"
		}
		return Response{Kind: ResponseError, ErrorObj: ErrorInfo{Class: class, Desc: desc}}, nil
	case wire.Return != nil:
		return Response{Kind: ResponseReturn, Return: wire.Return}, nil
	default:
		return Response{Kind: ResponseEvent}, nil
	}
}

// Command is the tagged record QMP commands are sent as. Capabilities
// and SystemPowerdown are the only two verbs the lifecycle engine ever
// issues.
type Command struct {
	Execute string `json:"execute"`
}

var (
	CommandCapabilities    = Command{Execute: "qmp_capabilities"}
	CommandSystemPowerdown = Command{Execute: "system_powerdown"}
)
