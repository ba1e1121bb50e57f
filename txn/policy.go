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

package txn

import (
	"errors"
	"fmt"

	"dirpx.dev/dresp/apis"
	"dirpx.dev/dresp/label"
)

// UnpinPolicy decides which errors release a session's pinned server.
type UnpinPolicy string

const (
	// UnpinAlways releases the pin on every error that reaches the session.
	UnpinAlways UnpinPolicy = "always"

	// UnpinOnLabels releases the pin only when the labels prove the pinned
	// server can no longer be trusted for this transaction:
	// TransientTransactionError while any transaction state is set, or
	// UnknownTransactionCommitResult while committing.
	UnpinOnLabels UnpinPolicy = "on_labels"
)

// ErrInvalidPolicy is returned by ParseUnpinPolicy for unknown names.
var ErrInvalidPolicy = errors.New("txn: invalid unpin policy")

// ParseUnpinPolicy resolves a policy name. The empty string means UnpinAlways.
func ParseUnpinPolicy(s string) (UnpinPolicy, error) {
	switch UnpinPolicy(s) {
	case "", UnpinAlways:
		return UnpinAlways, nil
	case UnpinOnLabels:
		return UnpinOnLabels, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// mandates reports whether err must release the pin while in state st.
func (p UnpinPolicy) mandates(st State, err error) bool {
	if p != UnpinOnLabels {
		return true
	}
	var le apis.LabeledError
	if !errors.As(err, &le) {
		return false
	}
	if st != StateNone && le.HasErrorLabel(string(label.TransientTransactionError)) {
		return true
	}
	return st == StateCommitting && le.HasErrorLabel(string(label.UnknownTransactionCommitResult))
}
