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
	"net/http"
	"net/http/httputil"

	"github.com/sirupsen/logrus"
)

// verboseTransport logs the full request/response pair when
// EMULOT_CURL_VERBOSE is set, the way curl's -v does.
type verboseTransport struct {
	inner http.RoundTripper
}

func (t *verboseTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if dump, err := httputil.DumpRequestOut(req, true); err == nil {
		logrus.Debugf("> %s", dump)
	}
	resp, err := t.inner.RoundTrip(req)
	if err != nil {
		return resp, err
	}
	if dump, err := httputil.DumpResponse(resp, true); err == nil {
		logrus.Debugf("< %s", dump)
	}
	return resp, nil
}
