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

// Package kind defines the closed taxonomy of driver error kinds.
//
// A "kind" is the top-level classification of a failure observed while
// talking to one server, such as "socket_error" or "operation_failure".
// Kinds are:
//
//   - a closed set: unknown values never validate;
//   - lowercased and underscore-separated;
//   - suitable for use in JSON payloads, metric labels and log attributes.
//
// The response pipeline dispatches on the kind of an error, never on its
// message text.
package kind
