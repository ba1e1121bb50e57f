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

// Package apis defines the public Go-level contracts of the response
// pipeline.
//
// The goal of this package is to provide *small, composable* interfaces that
// the driver's other layers can depend on without importing the concrete
// error type, the concrete session, or the pipeline itself:
//
//   - what the pipeline reads from a logical session (Session);
//   - what it reads from a server reference (Server);
//   - what it asks of a successful reply (Validator);
//   - what enriched errors expose (KindedError, LabeledError, NotedError).
//
// This package must remain lightweight: it only contains interfaces and very
// small view types.
package apis
