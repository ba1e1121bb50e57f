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

// Package label defines the machine-readable labels attached to driver errors.
//
// Labels are the sole channel through which the driver tells application
// code and the retry loop whether a failure is safe to retry and whether a
// transaction commit outcome is known:
//
//   - "TransientTransactionError": the transaction hit a recoverable network
//     failure before commit and may be retried from the start;
//   - "UnknownTransactionCommitResult": the commit outcome is unknown;
//   - "RetryableWriteError": the write may be resent.
//
// Labels are CamelCase identifiers, matching the tokens servers put into the
// errorLabels array of a reply. A Set holds labels with duplicates suppressed,
// so adding a label twice is a no-op.
package label
