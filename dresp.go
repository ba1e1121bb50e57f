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

// Package dresp is the response-handling and error-labelling core of a
// session-aware database driver.
//
// The concrete error type lives here; the label engine, the transaction
// state and the response pipeline live in sub-packages.
package dresp

import (
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/dresp/apis"
	"dirpx.dev/dresp/kind"
	"dirpx.dev/dresp/label"
	"dirpx.dev/dresp/wirecode"
)

// Error is the driver's taxonomy error.
//
// It is produced by lower layers (connection, wire decoding, reply
// validation) and enriched in place by the response pipeline:
//   - Kind: which branch of the taxonomy this failure belongs to (required);
//   - Message: human-oriented description;
//   - Code / CodeName / WriteConcern: server failure details, OperationFailure only;
//   - Cause: wrapped underlying error for errors.Is / errors.As;
//   - Generation / ServiceID: connection diagnostics attached by the pipeline.
//
// Labels form a set (adding twice is a no-op); notes are an append-only
// sequence. An Error is owned by one operation call and is not safe for
// concurrent mutation.
type Error struct {
	// Kind is the taxonomy kind. Must be one of the values in package kind.
	Kind kind.Kind

	// Message is a human-readable explanation of the failure.
	Message string

	// Code is the server error code carried by an OperationFailure reply.
	// wirecode.None for every other kind.
	Code wirecode.Code

	// CodeName is the symbolic name the server sent alongside Code, if any.
	CodeName string

	// WriteConcern holds the write-concern sub-error of the reply, or nil.
	WriteConcern *WriteConcernError

	// Cause holds the wrapped underlying error (if any).
	Cause error

	// Generation is the pool generation of the connection that produced the
	// failure. Zero when unknown.
	Generation uint64

	// ServiceID identifies the backing service in load-balanced deployments.
	// Empty when unknown.
	ServiceID string

	labels          label.Set
	serverRetryable bool
	notes           []string
}

// WriteConcernError is the write-concern sub-error of a failure reply.
type WriteConcernError struct {
	Code     wirecode.Code
	CodeName string
	Message  string
	// WTimeout is set when the server reported errInfo.wtimeout.
	WTimeout bool
}

var (
	_ apis.KindedError  = (*Error)(nil)
	_ apis.LabeledError = (*Error)(nil)
	_ apis.NotedError   = (*Error)(nil)
	_ apis.CausedError  = (*Error)(nil)
)

// E is a convenience constructor for Error.
//
// Usage:
//
//	return dresp.E(kind.OperationFailure, "not primary",
//	    dresp.WithCodeOption(wirecode.NotWritablePrimary),
//	    dresp.WithServerLabelsOption(label.RetryableWriteError),
//	)
//
// It always returns a *new* Error and applies all provided options in order.
func E(k kind.Kind, msg string, opts ...Option) *Error {
	e := &Error{Kind: k, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Socket returns a SocketError wrapping cause.
func Socket(msg string, cause error) *Error {
	return E(kind.SocketError, msg, WithCauseOption(cause))
}

// SocketTimeout returns a SocketTimeoutError wrapping cause.
func SocketTimeout(msg string, cause error) *Error {
	return E(kind.SocketTimeoutError, msg, WithCauseOption(cause))
}

// OperationFailed returns an OperationFailure carrying the server code c.
func OperationFailed(c wirecode.Code, msg string, opts ...Option) *Error {
	return E(kind.OperationFailure, msg, append([]Option{WithCodeOption(c)}, opts...)...)
}

// Auth returns an AuthError wrapping cause.
func Auth(msg string, cause error) *Error {
	return E(kind.AuthError, msg, WithCauseOption(cause))
}

// Generic returns a GenericDriverError wrapping cause.
func Generic(msg string, cause error) *Error {
	return E(kind.GenericDriverError, msg, WithCauseOption(cause))
}

// As finds the first taxonomy error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

// Error implements the built-in error interface.
//
// The format is:
//
//	<kind>: <message>[ [<code name>(<code>)]][ (<note>, <note>...)]
//
// The code part is rendered for operation failures only, the notes part
// only when notes were attached.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Kind == kind.OperationFailure && e.Code != wirecode.None {
		if name := e.codeName(); name != "" {
			_, _ = fmt.Fprintf(&b, " [%s(%d)]", name, e.Code)
		} else {
			_, _ = fmt.Fprintf(&b, " [%d]", e.Code)
		}
	}
	if len(e.notes) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(e.notes, ", "))
		b.WriteString(")")
	}
	return b.String()
}

// Unwrap returns the underlying cause, enabling errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Cause }

// ErrorKind implements apis.KindedError.
func (e *Error) ErrorKind() string { return string(e.Kind) }

// ErrorCause implements apis.CausedError.
func (e *Error) ErrorCause() error { return e.Cause }

// AddLabel attaches l and reports whether it was newly added.
func (e *Error) AddLabel(l label.Label) bool {
	return e.labels.Add(l)
}

// HasLabel reports whether l is attached. A nil Error has no labels.
func (e *Error) HasLabel(l label.Label) bool {
	if e == nil {
		return false
	}
	return e.labels.Has(l)
}

// Labels returns the attached labels in insertion order.
func (e *Error) Labels() []label.Label {
	if e == nil {
		return nil
	}
	return e.labels.Slice()
}

// ErrorLabels implements apis.LabeledError.
func (e *Error) ErrorLabels() []string {
	if e == nil {
		return nil
	}
	return e.labels.Strings()
}

// HasErrorLabel implements apis.LabeledError.
func (e *Error) HasErrorLabel(l string) bool {
	return e.HasLabel(label.Label(l))
}

// AddNote appends a diagnostic note. Notes are never deduplicated.
func (e *Error) AddNote(note string) {
	e.notes = append(e.notes, note)
}

// Notes returns a copy of the attached notes in order.
func (e *Error) Notes() []string {
	if len(e.notes) == 0 {
		return nil
	}
	out := make([]string, len(e.notes))
	copy(out, e.notes)
	return out
}

// ErrorNotes implements apis.NotedError.
func (e *Error) ErrorNotes() []string {
	return e.Notes()
}

// WriteRetryable reports whether the failed write may be resent.
//
// Network failures are always retryable. An OperationFailure is retryable
// when the server labelled its reply RetryableWriteError, or when the
// top-level or write-concern code is in the retryable-write set.
func (e *Error) WriteRetryable() bool {
	switch e.Kind {
	case kind.SocketError, kind.SocketTimeoutError:
		return true
	case kind.OperationFailure:
		if e.serverRetryable || wirecode.IsRetryableWrite(e.Code) {
			return true
		}
		return e.WriteConcern != nil && wirecode.IsRetryableWrite(e.WriteConcern.Code)
	default:
		return false
	}
}

// HasWriteConcernError reports whether the reply carried a write-concern error.
func (e *Error) HasWriteConcernError() bool {
	return e.WriteConcern != nil
}

// WriteConcernCode returns the write-concern error code, if any.
func (e *Error) WriteConcernCode() (wirecode.Code, bool) {
	if e.WriteConcern == nil {
		return wirecode.None, false
	}
	return e.WriteConcern.Code, true
}

// WTimeout reports whether the write concern timed out.
func (e *Error) WTimeout() bool {
	return e.WriteConcern != nil && e.WriteConcern.WTimeout
}

// MaxTimeMSExpired reports whether the operation ran out of its maxTimeMS budget.
func (e *Error) MaxTimeMSExpired() bool {
	return e.Kind == kind.OperationFailure && e.Code == wirecode.MaxTimeMSExpired
}

func (e *Error) codeName() string {
	if e.CodeName != "" {
		return e.CodeName
	}
	return e.Code.Name()
}
