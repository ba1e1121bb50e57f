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
	"dirpx.dev/dresp/kind"
	"google.golang.org/grpc/codes"
)

// Option configures the Mapper at build time.
// All options are applied to an internal builder and then frozen into
// an immutable Mapper.
type Option func(*builder)

// WithKindDefault sets or replaces the library-level default kind for the
// given status code.
func WithKindDefault(c codes.Code, k kind.Kind) Option {
	return func(b *builder) { b.defaults[c] = k }
}

// WithKindOverride registers an exact kind for the given status code.
// Overrides take precedence over defaults.
func WithKindOverride(c codes.Code, k kind.Kind) Option {
	return func(b *builder) { b.overrides[c] = k }
}

// WithFallback sets the kind for status codes that have no rule at all.
func WithFallback(k kind.Kind) Option {
	return func(b *builder) { b.fallback = k }
}
