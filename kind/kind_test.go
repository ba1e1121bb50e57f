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
	"encoding"
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim spaces", "  auth_error  ", "auth_error"},
		{"to lower", "SOCKET_ERROR", "socket_error"},
		{"dash to underscore", "operation-failure", "operation_failure"},
		{"space to underscore", "socket timeout error", "socket_timeout_error"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Kind
	}{
		{"socket", "socket_error", SocketError},
		{"timeout upper dash", "SOCKET-TIMEOUT-ERROR", SocketTimeoutError},
		{"operation failure", " operation_failure ", OperationFailure},
		{"generic", "generic_driver_error", GenericDriverError},
		{"auth", "Auth-Error", AuthError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{"", "socket", "network_error", "operation__failure", "1auth_error"}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := Parse(in)
			if !errors.Is(err, ErrKindInvalid) {
				t.Fatalf("Parse(%q) err = %v, want ErrKindInvalid", in, err)
			}
			if got != Empty {
				t.Fatalf("Parse(%q) on error must return Empty, got %q", in, got)
			}
		})
	}
}

func TestAll_IsClosedAndCopied(t *testing.T) {
	got := All()
	if len(got) != 5 {
		t.Fatalf("All() returned %d kinds, want 5", len(got))
	}
	got[0] = "mutated"
	if All()[0] != SocketError {
		t.Fatal("All() must return a copy")
	}
	for _, k := range All() {
		if err := Validate(k); err != nil {
			t.Fatalf("Validate(%q) unexpected error: %v", k, err)
		}
	}
}

func TestIsNetwork(t *testing.T) {
	want := map[Kind]bool{
		SocketError:        true,
		SocketTimeoutError: true,
		OperationFailure:   false,
		GenericDriverError: false,
		AuthError:          false,
	}
	for k, w := range want {
		if got := k.IsNetwork(); got != w {
			t.Fatalf("%q.IsNetwork() = %v, want %v", k, got, w)
		}
	}
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustParse should panic on invalid input")
		}
	}()
	_ = MustParse("not a kind")
}

func TestTextMarshalling(t *testing.T) {
	var _ encoding.TextMarshaler = SocketError
	var _ encoding.TextUnmarshaler = (*Kind)(nil)

	b, err := OperationFailure.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText unexpected error: %v", err)
	}
	if string(b) != "operation_failure" {
		t.Fatalf("MarshalText = %q", b)
	}
	if _, err := Kind("bogus").MarshalText(); err == nil {
		t.Fatal("MarshalText must reject unknown kinds")
	}

	var k Kind
	if err := k.UnmarshalText([]byte("  AUTH_ERROR ")); err != nil {
		t.Fatalf("UnmarshalText unexpected error: %v", err)
	}
	if k != AuthError {
		t.Fatalf("UnmarshalText = %q, want %q", k, AuthError)
	}
	if err := k.UnmarshalText([]byte("bogus")); err == nil {
		t.Fatal("UnmarshalText must reject unknown kinds")
	}
}
