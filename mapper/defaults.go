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

// defaultFallback is the kind for status codes without any rule.
const defaultFallback = kind.GenericDriverError

// defaultKinds defines the library's built-in status-to-kind mappings.
// Callers may adjust them with WithKindDefault or shadow them with
// WithKindOverride.
var defaultKinds = map[codes.Code]kind.Kind{
	// Transport: the call did not get a reply.
	codes.Unavailable:      kind.SocketError,        // Connection refused, reset, or server going away.
	codes.DeadlineExceeded: kind.SocketTimeoutError, // Time budget ran out before the reply arrived.

	// Authentication.
	codes.Unauthenticated: kind.AuthError,

	// Caller gave up; neither the server nor the network failed.
	codes.Canceled: kind.GenericDriverError,

	// The server replied and rejected the command.
	codes.PermissionDenied:   kind.OperationFailure, // Authenticated but not authorized for the command.
	codes.Internal:           kind.OperationFailure,
	codes.Unknown:            kind.OperationFailure,
	codes.Aborted:            kind.OperationFailure, // Write conflict, transaction aborted by the server.
	codes.FailedPrecondition: kind.OperationFailure, // Not primary, transaction in the wrong state.
	codes.InvalidArgument:    kind.OperationFailure,
	codes.NotFound:           kind.OperationFailure,
	codes.AlreadyExists:      kind.OperationFailure, // Duplicate key.
	codes.ResourceExhausted:  kind.OperationFailure,
	codes.OutOfRange:         kind.OperationFailure,
	codes.Unimplemented:      kind.OperationFailure, // Command not supported by this server.
	codes.DataLoss:           kind.OperationFailure,
}
