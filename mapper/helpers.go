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

	"dirpx.dev/dresp/kind"
	"google.golang.org/grpc/codes"
)

// freezeKinds validates src and makes an immutable copy of it.
// Used when finalizing the mapper so later mutations to the builder
// cannot affect the mapper.
func freezeKinds(tier string, src map[codes.Code]kind.Kind) (map[codes.Code]kind.Kind, error) {
	if len(src) == 0 {
		return nil, nil
	}
	dst := make(map[codes.Code]kind.Kind, len(src))
	for c, k := range src {
		if err := kind.Validate(k); err != nil {
			return nil, fmt.Errorf("mapper: invalid %s kind %q for %s: %w", tier, k, codeLabel(c), err)
		}
		dst[c] = k
	}
	return dst, nil
}

// codeLabel renders a status code as NAME(n), e.g. UNAVAILABLE(14).
func codeLabel(c codes.Code) string {
	return fmt.Sprintf("%s(%d)", strings.ToUpper(c.String()), int(c))
}
