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

type builder struct {
	// defaults holds per-code kinds seeded from the library defaults and
	// adjusted by WithKindDefault.
	defaults map[codes.Code]kind.Kind

	// overrides holds exact per-code kinds (higher than defaults).
	overrides map[codes.Code]kind.Kind

	// fallback is used when a code has neither override nor default.
	fallback kind.Kind
}

// newBuilder creates an empty builder with maps pre-sized
// to hold typical numbers of entries.
func newBuilder() *builder {
	return &builder{
		defaults:  make(map[codes.Code]kind.Kind, len(defaultKinds)),
		overrides: make(map[codes.Code]kind.Kind),
		fallback:  defaultFallback,
	}
}
