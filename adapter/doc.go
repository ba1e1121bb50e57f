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

// Package adapter converts errors into their portable forms.
//
// ToView produces an apis.ErrorView for any error, taxonomy or not, and
// LogValue renders the same information as a log/slog group so enriched
// errors log uniformly across the pipeline, the gRPC interceptor and the CLI.
package adapter
