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

package wirecode

import "strconv"

// Code is a numeric server error code.
type Code int32

// None means the reply carried no code.
const None Code = 0

// Network / topology error codes
//
// These codes report that the server or the path to it went away while the
// command was in flight. They are all in the retryable-write set.
const (
	// HostUnreachable indicates the server could not reach another member.
	HostUnreachable Code = 6

	// HostNotFound indicates a host name could not be resolved.
	HostNotFound Code = 7

	// NetworkTimeout indicates a server-side network operation timed out.
	NetworkTimeout Code = 89

	// ShutdownInProgress indicates the server is shutting down.
	ShutdownInProgress Code = 91

	// PrimarySteppedDown indicates the primary stepped down while the
	// command was running.
	PrimarySteppedDown Code = 189

	// ExceededTimeLimit indicates an internal operation exceeded its time
	// limit. Unlike MaxTimeMSExpired this is not the user's budget.
	ExceededTimeLimit Code = 262

	// SocketException indicates a server-side socket failure.
	SocketException Code = 9001

	// NotWritablePrimary indicates the target is no longer the primary.
	NotWritablePrimary Code = 10107

	// InterruptedAtShutdown indicates the operation was killed at shutdown.
	InterruptedAtShutdown Code = 11600

	// InterruptedDueToReplStateChange indicates the operation was killed by
	// a replica set state change.
	InterruptedDueToReplStateChange Code = 11602

	// NotPrimaryNoSecondaryOk indicates a read hit a non-primary without
	// secondary reads being allowed.
	NotPrimaryNoSecondaryOk Code = 13435

	// NotPrimaryOrSecondary indicates the member is neither primary nor
	// secondary (e.g. recovering).
	NotPrimaryOrSecondary Code = 13436
)

// Time budget and write concern error codes
const (
	// MaxTimeMSExpired indicates the operation exceeded the user-supplied
	// maxTimeMS budget.
	MaxTimeMSExpired Code = 50

	// WriteConcernFailed indicates the write concern could not be satisfied
	// in time (typically paired with wtimeout).
	WriteConcernFailed Code = 64

	// UnknownReplWriteConcern indicates the requested write concern mode is
	// not defined on the replica set. This is a definite failure.
	UnknownReplWriteConcern Code = 79

	// UnsatisfiableWriteConcern indicates the write concern can never be
	// satisfied by the current configuration. This is a definite failure.
	UnsatisfiableWriteConcern Code = 100
)

var names = map[Code]string{
	HostUnreachable:                 "HostUnreachable",
	HostNotFound:                    "HostNotFound",
	MaxTimeMSExpired:                "MaxTimeMSExpired",
	WriteConcernFailed:              "WriteConcernFailed",
	UnknownReplWriteConcern:         "UnknownReplWriteConcern",
	NetworkTimeout:                  "NetworkTimeout",
	ShutdownInProgress:              "ShutdownInProgress",
	UnsatisfiableWriteConcern:       "UnsatisfiableWriteConcern",
	PrimarySteppedDown:              "PrimarySteppedDown",
	ExceededTimeLimit:               "ExceededTimeLimit",
	SocketException:                 "SocketException",
	NotWritablePrimary:              "NotWritablePrimary",
	InterruptedAtShutdown:           "InterruptedAtShutdown",
	InterruptedDueToReplStateChange: "InterruptedDueToReplStateChange",
	NotPrimaryNoSecondaryOk:         "NotPrimaryNoSecondaryOk",
	NotPrimaryOrSecondary:           "NotPrimaryOrSecondary",
}

// retryableWrite is the fixed set of codes after which a write may be resent.
var retryableWrite = map[Code]struct{}{
	HostUnreachable:                 {},
	HostNotFound:                    {},
	NetworkTimeout:                  {},
	ShutdownInProgress:              {},
	PrimarySteppedDown:              {},
	ExceededTimeLimit:               {},
	SocketException:                 {},
	NotWritablePrimary:              {},
	InterruptedAtShutdown:           {},
	InterruptedDueToReplStateChange: {},
	NotPrimaryNoSecondaryOk:         {},
	NotPrimaryOrSecondary:           {},
}

// unlabeledWriteConcern is the fixed set of write-concern codes that never
// indicate commit ambiguity.
var unlabeledWriteConcern = map[Code]struct{}{
	UnknownReplWriteConcern:   {},
	UnsatisfiableWriteConcern: {},
}

// Name returns the symbolic name of c, or "" when c is not catalogued.
func (c Code) Name() string {
	return names[c]
}

// String returns the symbolic name, or "Code(<n>)" for uncatalogued codes.
func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return "Code(" + strconv.Itoa(int(c)) + ")"
}

// Lookup resolves a symbolic name back to its code.
func Lookup(name string) (Code, bool) {
	for c, n := range names {
		if n == name {
			return c, true
		}
	}
	return None, false
}

// IsRetryableWrite reports whether c is in the retryable-write set.
func IsRetryableWrite(c Code) bool {
	_, ok := retryableWrite[c]
	return ok
}

// IsUnlabeledWriteConcern reports whether c is a write-concern code that is
// known not to indicate commit ambiguity.
func IsUnlabeledWriteConcern(c Code) bool {
	_, ok := unlabeledWriteConcern[c]
	return ok
}
