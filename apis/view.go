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

// ViewProvider is implemented by errors that can produce a transport-friendly,
// self-contained representation of themselves.
type ViewProvider interface {
	error
	// ErrorView returns a transport-friendly snapshot of the error.
	ErrorView() ErrorView
}

// ErrorView is a minimal, serializable representation of an enriched error.
//
// This is *not* the concrete error type: it is the shape that is safe to log,
// print from the CLI, or ship over the wire.
type ErrorView struct {
	// Kind is the taxonomy kind, e.g. "operation_failure".
	Kind string `json:"kind" yaml:"kind"`

	// Message is the human-oriented message without notes.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// Code is the server error code. Zero when absent.
	Code int32 `json:"code,omitempty" yaml:"code,omitempty"`

	// CodeName is the symbolic name of Code, when known.
	CodeName string `json:"code_name,omitempty" yaml:"code_name,omitempty"`

	// Labels are the attached labels in insertion order.
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty"`

	// Notes are the diagnostic notes in the order they were appended.
	Notes []string `json:"notes,omitempty" yaml:"notes,omitempty"`

	// WriteConcern describes the write-concern sub-error, if any.
	WriteConcern *WriteConcernView `json:"write_concern,omitempty" yaml:"write_concern,omitempty"`

	// Generation is the pool generation of the failing connection.
	Generation uint64 `json:"generation,omitempty" yaml:"generation,omitempty"`

	// ServiceID is the backing service id in load-balanced mode.
	ServiceID string `json:"service_id,omitempty" yaml:"service_id,omitempty"`
}

// WriteConcernView is the serializable form of a write-concern sub-error.
type WriteConcernView struct {
	Code     int32  `json:"code" yaml:"code"`
	CodeName string `json:"code_name,omitempty" yaml:"code_name,omitempty"`
	Message  string `json:"message,omitempty" yaml:"message,omitempty"`
	WTimeout bool   `json:"wtimeout,omitempty" yaml:"wtimeout,omitempty"`
}
