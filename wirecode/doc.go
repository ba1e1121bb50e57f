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

// Package wirecode catalogues the numeric error codes servers put into
// failure replies and write-concern sub-errors.
//
// Only the codes the response pipeline reasons about are named here. Two
// fixed sets are derived from them and never computed at runtime:
//
//   - the retryable-write set: failures after which a write may be resent;
//   - the unlabeled write-concern set: write-concern failures that are
//     definite and therefore never make a commit outcome ambiguous.
package wirecode
