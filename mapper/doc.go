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

// Package mapper provides deterministic, immutable mappings from gRPC status
// codes (google.golang.org/grpc/codes) to the driver's error taxonomy
// (dirpx.dev/dresp/kind).
//
// # Overview
//
// When the driver talks to a server over gRPC, every failed call surfaces as
// a status code. The pipeline does not reason about status codes: it reasons
// about taxonomy kinds (socket_error, operation_failure, ...), because those
// drive labelling and diagnostics. Package mapper turns the former into the
// latter in a way that is:
//
//   - immutable: a Mapper is a snapshot, safe for concurrent reuse;
//   - overridable: callers can change library defaults per status code;
//   - explainable: Explain shows which rule decided.
//
// # Resolution model
//
// A Mapper resolves a kind in the following order:
//
//  1. exact override for the status code;
//  2. per-code default (library or user-adjusted);
//  3. fallback (generic_driver_error unless changed with WithFallback).
//
// # Library defaults
//
// Transport-level failures map to the network kinds (Unavailable ->
// socket_error, DeadlineExceeded -> socket_timeout_error), Unauthenticated
// maps to auth_error, Canceled to generic_driver_error, and the codes a
// server uses to reject a command (InvalidArgument, NotFound, Aborted,
// FailedPrecondition, ...) map to operation_failure.
//
// # Building a mapper
//
// A Mapper is created once and reused:
//
//	m, err := mapper.New(
//	    mapper.WithKindOverride(codes.Canceled, kind.SocketTimeoutError),
//	    mapper.WithFallback(kind.OperationFailure),
//	)
//	if err != nil {
//	    // invalid kind
//	}
//
//	k := m.Kind(codes.Unavailable) // kind.SocketError
//
// # Diagnostics
//
// Mapper.Explain returns a human-readable trace of how a particular status
// code was resolved. It is intended for inspection and logging, not for
// stable machine parsing.
//
// # Immutability
//
// All user-provided inputs are copied during New. After construction, the
// Mapper does not observe further changes to caller state.
package mapper
