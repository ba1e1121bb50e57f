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

import "dirpx.dev/dresp/apis"

var _ apis.ViewProvider = (*Error)(nil)

// ErrorView implements apis.ViewProvider. It exposes exactly what the error
// contains; no redaction is performed.
func (e *Error) ErrorView() apis.ErrorView {
	if e == nil {
		return apis.ErrorView{}
	}
	v := apis.ErrorView{
		Kind:       string(e.Kind),
		Message:    e.Message,
		Code:       int32(e.Code),
		CodeName:   e.codeName(),
		Labels:     e.labels.Strings(),
		Notes:      e.Notes(),
		Generation: e.Generation,
		ServiceID:  e.ServiceID,
	}
	if wc := e.WriteConcern; wc != nil {
		name := wc.CodeName
		if name == "" {
			name = wc.Code.Name()
		}
		v.WriteConcern = &apis.WriteConcernView{
			Code:     int32(wc.Code),
			CodeName: name,
			Message:  wc.Message,
			WTimeout: wc.WTimeout,
		}
	}
	return v
}
