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

package dresp

import (
	"dirpx.dev/dresp/label"
	"dirpx.dev/dresp/wirecode"
)

// Option is a functional option for constructing an Error.
// It always takes an *Error and returns the *Error to continue with.
type Option func(*Error) *Error

// WithCauseOption attaches a cause on construction. A nil cause is ignored.
func WithCauseOption(err error) Option {
	return func(e *Error) *Error {
		if err != nil {
			e.Cause = err
		}
		return e
	}
}

// WithCodeOption sets the server error code.
func WithCodeOption(c wirecode.Code) Option {
	return func(e *Error) *Error {
		e.Code = c
		return e
	}
}

// WithCodeNameOption sets the symbolic code name reported by the server.
func WithCodeNameOption(name string) Option {
	return func(e *Error) *Error {
		e.CodeName = name
		return e
	}
}

// WithWriteConcernOption attaches a write-concern sub-error.
// The value is copied so later changes by the caller are not observed.
func WithWriteConcernOption(wc WriteConcernError) Option {
	return func(e *Error) *Error {
		cp := wc
		e.WriteConcern = &cp
		return e
	}
}

// WithServerLabelsOption attaches the labels the server put on its reply.
// A server-supplied RetryableWriteError makes the error write-retryable.
func WithServerLabelsOption(ls ...label.Label) Option {
	return func(e *Error) *Error {
		for _, l := range ls {
			e.labels.Add(l)
			if l == label.RetryableWriteError {
				e.serverRetryable = true
			}
		}
		return e
	}
}
