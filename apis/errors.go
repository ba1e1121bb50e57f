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

// KindedError represents an error that belongs to the driver's closed error
// taxonomy.
//
// The kind is what the label engine dispatches on. Implementations MUST
// return one of the values declared in package kind; callers should treat
// anything else as a foreign error.
type KindedError interface {
	error
	// ErrorKind returns the canonical kind string, e.g. "socket_error".
	ErrorKind() string
}

// LabeledError represents an error carrying machine-readable labels such as
// "RetryableWriteError".
//
// Applications and the retry loop key their behaviour off label presence,
// never off notes or message text.
type LabeledError interface {
	error
	// ErrorLabels returns the attached labels in insertion order. May return nil.
	ErrorLabels() []string
	// HasErrorLabel reports whether the given label is attached.
	HasErrorLabel(label string) bool
}

// NotedError represents an error carrying human-oriented diagnostic notes,
// such as the address of the server that produced it.
type NotedError interface {
	error
	// ErrorNotes returns the notes in the order they were appended. May return nil.
	ErrorNotes() []string
}

// CausedError represents an error that exposes its underlying cause.
//
// Implementations SHOULD return the direct, immediate cause of the error. If
// there is no underlying cause, they SHOULD return nil.
type CausedError interface {
	error
	// ErrorCause returns the underlying error that triggered this error, if any.
	ErrorCause() error
}
