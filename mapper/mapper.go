/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package mapper

import (
	"fmt"
	"strings"

	"dirpx.dev/dresp/apis"
	"dirpx.dev/dresp/kind"
	"google.golang.org/grpc/codes"
)

// New constructs an immutable apis.Mapper snapshot.
//
// The resulting apis.Mapper is fully thread-safe and designed for long-lived reuse.
// Each build creates a self-contained mapper instance; no references to
// global state or user-provided structures remain.
//
// Build process overview:
//
//  1. Seed the builder with library defaults.
//  2. Apply user-provided options (defaults, overrides, fallback).
//  3. Validate every kind against the closed taxonomy.
//  4. Freeze all maps into immutable copies (fresh allocations).
//
// Errors returned from this function indicate a kind outside the taxonomy.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()

	// (1) Seed the builder with package-level defaults.
	for c, k := range defaultKinds {
		b.defaults[c] = k
	}

	// (2) Apply user-supplied options.
	for _, opt := range opts {
		opt(b)
	}

	// (3, 4) Validate and freeze.
	defaults, err := freezeKinds("default", b.defaults)
	if err != nil {
		return nil, err
	}
	overrides, err := freezeKinds("override", b.overrides)
	if err != nil {
		return nil, err
	}
	if err := kind.Validate(b.fallback); err != nil {
		return nil, fmt.Errorf("mapper: invalid fallback kind %q: %w", b.fallback, err)
	}

	return &mapper{
		defaults:  defaults,
		overrides: overrides,
		fallback:  b.fallback,
	}, nil
}

// mapper is an immutable mapper implementation combining per-code defaults,
// per-code exact overrides and a fallback. Lookups are O(1) and safe for
// concurrent use once constructed.
type mapper struct {
	// defaults holds the base kind for a given status code.
	defaults map[codes.Code]kind.Kind

	// overrides holds explicit kinds for specific status codes.
	overrides map[codes.Code]kind.Kind

	// fallback is used when there is no rule at all for a code.
	fallback kind.Kind
}

// Kind resolves the taxonomy kind for the given status code.
//
// Resolution order (highest to lowest):
//  1. exact per-code override;
//  2. per-code default (library or user overridden);
//  3. fallback.
func (m *mapper) Kind(c codes.Code) kind.Kind {
	k, _ := m.resolve(c)
	return k
}

// Explain produces a textual trace of how the mapper resolved the kind for
// a particular status code.
//
// Example output:
//
//	grpc=UNAVAILABLE(14)
//	kind: source=default -> socket_error
//
// source ∈ {override | default | fallback}
func (m *mapper) Explain(c codes.Code) string {
	var b strings.Builder
	k, src := m.resolve(c)
	_, _ = fmt.Fprintf(&b, "grpc=%s\n", codeLabel(c))
	_, _ = fmt.Fprintf(&b, "kind: source=%s -> %s", src, k)
	return b.String()
}

// resolve returns the kind together with the tier that produced it.
func (m *mapper) resolve(c codes.Code) (kind.Kind, string) {
	if k, ok := m.overrides[c]; ok {
		return k, "override"
	}
	if k, ok := m.defaults[c]; ok {
		return k, "default"
	}
	return m.fallback, "fallback"
}
