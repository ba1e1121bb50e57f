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

package labeler

// ClientContext carries the client options the label engine reads.
//
// The zero value disables retryable writes: a legacy retry count only counts
// when it is positive, and the modern flag is off unless set explicitly.
type ClientContext struct {
	// RetryWrites is the explicit, modern retryable-writes opt-in.
	RetryWrites bool
	// MaxWriteRetries is the legacy retry count. It only applies when
	// RetryWrites is false.
	MaxWriteRetries int
}

// Modern reports whether modern retryable writes are on.
func (c ClientContext) Modern() bool {
	return c.RetryWrites
}

// Legacy reports whether legacy retryable writes are on: the modern flag is
// off and a positive retry count is configured.
func (c ClientContext) Legacy() bool {
	return !c.RetryWrites && c.MaxWriteRetries > 0
}

// RetryWritesEffective reports whether either flavour is on.
func (c ClientContext) RetryWritesEffective() bool {
	return c.Modern() || c.Legacy()
}

// mode names the active flavour for Explain.
func (c ClientContext) mode() string {
	switch {
	case c.Modern():
		return "modern"
	case c.Legacy():
		return "legacy"
	default:
		return "disabled"
	}
}
