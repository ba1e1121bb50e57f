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

package kind

import (
	"bytes"
	"encoding"
	"errors"
	"strings"
)

// Kind is the canonical, validated representation of an error kind.
//
// It is defined as a separate type (not just string) so that the label
// engine and the pipeline can switch over it exhaustively and so that raw
// user input is never mixed with validated values.
//
// IMPORTANT: Empty kinds ("") are NOT valid. Every taxonomy error MUST have
// one of the kinds declared below.
type Kind string

const (
	// SocketError is a connection-level network failure that happened before
	// a reply was read. Whether the server applied the command is unknown.
	SocketError Kind = "socket_error"

	// SocketTimeoutError is a network failure caused by exceeding a time
	// budget (socket timeout, context deadline, operation timeout).
	SocketTimeoutError Kind = "socket_timeout_error"

	// OperationFailure means the server replied with an explicit failure
	// document carrying a code and optionally a write-concern sub-error.
	OperationFailure Kind = "operation_failure"

	// GenericDriverError is the catch-all for any other driver-raised error.
	GenericDriverError Kind = "generic_driver_error"

	// AuthError is an authentication-specific failure.
	AuthError Kind = "auth_error"
)

// Empty is the zero-value kind. It never validates.
var Empty Kind = ""

var (
	// ErrKindInvalid is returned when a value cannot be parsed or validated
	// as one of the known kinds.
	ErrKindInvalid = errors.New("dresp: invalid kind")
)

// Ensure Kind implements encoding.TextMarshaler / encoding.TextUnmarshaler
// so it can be embedded into configuration and view structs.
var (
	_ encoding.TextMarshaler   = (*Kind)(nil)
	_ encoding.TextUnmarshaler = (*Kind)(nil)
)

// all lists every kind in declaration order.
var all = []Kind{
	SocketError,
	SocketTimeoutError,
	OperationFailure,
	GenericDriverError,
	AuthError,
}

// All returns every known kind in declaration order. The returned slice is
// a copy and may be modified by the caller.
func All() []Kind {
	out := make([]Kind, len(all))
	copy(out, all)
	return out
}

// Parse takes a user-provided string, normalizes it and validates it.
// On success it returns a canonical Kind value.
func Parse(s string) (Kind, error) {
	k := Kind(Normalize(s))
	if err := Validate(k); err != nil {
		return Empty, err
	}
	return k, nil
}

// MustParse is the panic-on-error variant of Parse.
func MustParse(s string) Kind {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Normalize brings an arbitrary string closer to the canonical kind form.
//
// It only performs obvious, non-lossy transformations:
//
//   - trims surrounding spaces;
//   - lowercases the value;
//   - replaces '-' and ' ' with '_'.
//
// It does NOT guarantee that the result is valid.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// Validate checks whether k is one of the known kinds.
func Validate(k Kind) error {
	for _, known := range all {
		if k == known {
			return nil
		}
	}
	return ErrKindInvalid
}

// IsNetwork reports whether k is a network-level failure: SocketError or
// SocketTimeoutError. Errors of these kinds never receive a server note
// because the connection layer already attached its own context.
func (k Kind) IsNetwork() bool {
	return k == SocketError || k == SocketTimeoutError
}

// String returns the canonical string representation of the kind.
func (k Kind) String() string {
	return string(k)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if err := Validate(k); err != nil {
		return nil, err
	}
	return []byte(k), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
//
// It normalizes and validates the provided text before assigning.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
