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

// Package txn holds the minimal transaction state machine of a logical
// session and the session's server pin.
//
// The response pipeline reads the state through apis.Session and performs a
// single mutation on it: releasing the pin via UnpinMaybe. Which transitions
// are legal is enforced here; who drives them (start, commit, abort calls)
// is the business of the session manager.
package txn
