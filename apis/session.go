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

// Session is the view of a logical session the pipeline depends on.
//
// The session owns its transaction state and pin. The pipeline only queries
// the state and asks the session to drop its pin; it never reaches into
// session internals. Implementations serialize their own state.
type Session interface {
	// InTransaction reports whether a transaction is starting, in progress,
	// committing or aborting.
	InTransaction() bool
	// CommittingTransaction reports whether a commit is in flight.
	CommittingTransaction() bool
	// AbortingTransaction reports whether an abort is in flight.
	AbortingTransaction() bool
	// UnpinMaybe releases the pinned server if the session's policy says the
	// error mandates it. It is a no-op when nothing is pinned and MUST NOT panic.
	UnpinMaybe(err error)
}

// PinReporter is optionally implemented by sessions that can report whether
// they currently hold a pinned server. Observers use it to count unpins.
type PinReporter interface {
	Pinned() bool
}

// Server is a read-only reference to the server an operation was sent to.
type Server interface {
	// Address returns a human-readable address, e.g. "db1.example.com:27017".
	Address() string
}

// ConnectionDescriber is optionally implemented by server references that
// know which pooled connection carried the operation.
type ConnectionDescriber interface {
	// Generation returns the pool generation of the connection.
	Generation() uint64
	// ServiceID returns the backing service id in load-balanced mode, or "".
	ServiceID() string
}

// Validator is implemented by replies that must be checked before they are
// handed back to the caller. Validate returns a taxonomy error when the
// reply reports a failure.
type Validator interface {
	Validate() error
}
