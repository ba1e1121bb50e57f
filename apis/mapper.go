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

package apis

import (
	"dirpx.dev/dresp/kind"
	"google.golang.org/grpc/codes"
)

// Mapper is an immutable, concurrency-safe view of the transport mapping
// rules. It resolves a gRPC status code into the driver's error taxonomy.
type Mapper interface {
	// Kind returns the taxonomy kind for the given status code.
	// Codes without a rule resolve to the mapper's fallback kind.
	Kind(c codes.Code) kind.Kind

	// Explain returns a human-readable description of which rule matched.
	Explain(c codes.Code) string
}
