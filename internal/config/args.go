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

// Package config holds the guest configuration document and the argv
// protocol that flattens it into the ordered argument vector passed to
// qemu-system-<arch>. The rendering capability is modeled the way
// qcli's own Device interface models a single device's rendering
// (Valid() error, QemuParams(*Config) []string): every fragment of a
// GuestConfig knows how to turn itself into zero or more argv tokens,
// and higher-level renderers compose the fragments in document order.
package config

// ArgRenderer is the polymorphic rendering capability every config
// fragment implements. It is the Go analogue of qcli's own Device
// interface and of original_source's AsArgs trait.
type ArgRenderer interface {
	// Args renders the fragment's argv tokens. An empty, nil-error
	// result means the fragment contributes nothing to the command
	// line (e.g. an absent BootConfig.Order).
	Args() ([]string, error)
}

// RenderOptional renders v if it is non-nil, or an empty sequence if it
// is nil. This is the Go stand-in for original_source's blanket
// `impl<T> AsArgs for Option<T>` — Go cannot implement an interface for
// every possible *T, so the capability is closed under Optional via a
// generic function instead.
func RenderOptional[T ArgRenderer](v *T) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	return (*v).Args()
}

// RenderSequence concatenates the renderings of each element of v, in
// order. The Go stand-in for original_source's blanket
// `impl<T> AsArgs for Vec<T>`.
func RenderSequence[T ArgRenderer](v []T) ([]string, error) {
	var out []string
	for _, item := range v {
		args, err := item.Args()
		if err != nil {
			return nil, err
		}
		out = append(out, args...)
	}
	return out, nil
}
