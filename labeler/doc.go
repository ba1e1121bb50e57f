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

// Package labeler decides which labels a failed operation's error carries.
//
// The decision depends on three inputs only: the error itself (its kind and
// the attributes it reports), the session's transaction state, and the
// client's retryable-writes configuration. Dispatch is a closed match over
// the error kind:
//
//	kind                  transaction rule                          then
//	socket_error          in txn, not committing -> Transient...    retryable-write rule
//	                      committing             -> UnknownCommit
//	socket_timeout_error  (none)                                    retryable-write rule
//	operation_failure     committing and ambiguous -> UnknownCommit retryable-write rule
//	anything else         (none)                                    (none)
//
// The retryable-write rule adds RetryableWriteError when the error is
// write-retryable and the session is committing, aborting, or outside a
// transaction with retryable writes enabled.
//
// Evaluate computes a Decision without touching the error; Classify applies
// it; Explain renders it for humans.
package labeler
