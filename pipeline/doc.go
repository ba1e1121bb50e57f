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

// Package pipeline wraps one driver operation and enriches its failure.
//
// Handle runs the operation, validates a successful result, and on failure
// passes the error through a fixed sequence of stages:
//
//	diagnostics -> labels -> unpin
//
// Diagnostics attaches server context (a note "on <address>" plus the
// connection generation and service id), the label stage asks package
// labeler which labels the error deserves, and the unpin stage lets the
// session release its pinned server. Stages only annotate: the error leaving
// the pipeline is the error the operation produced.
//
// Stages are guarded. A stage that panics or returns nil is logged and
// skipped, and the error it was given continues down the sequence.
//
// Successful operations leave no trace: no labels, no notes, no unpin.
package pipeline
