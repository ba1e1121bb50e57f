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

package adapter

import (
	"errors"
	"log/slog"

	"dirpx.dev/dresp/apis"
)

// ToView converts any error into a public ErrorView.
//
// If err (or anything in its chain) implements apis.ViewProvider, its own
// view is returned. Otherwise the view is assembled from the generic
// interfaces in package apis: the kind from apis.KindedError, labels from
// apis.LabeledError and notes from apis.NotedError. A plain error yields a
// view carrying only its message.
//
// No redaction or filtering is performed.
func ToView(err error) apis.ErrorView {
	if err == nil {
		return apis.ErrorView{}
	}
	var vp apis.ViewProvider
	if errors.As(err, &vp) && vp != nil {
		return vp.ErrorView()
	}
	v := apis.ErrorView{Message: err.Error()}
	var ke apis.KindedError
	if errors.As(err, &ke) {
		v.Kind = ke.ErrorKind()
	}
	var le apis.LabeledError
	if errors.As(err, &le) {
		v.Labels = le.ErrorLabels()
	}
	var ne apis.NotedError
	if errors.As(err, &ne) {
		v.Notes = ne.ErrorNotes()
	}
	return v
}

// LogValue renders err as a slog group: kind, message, code, labels, notes.
// Empty fields are omitted.
func LogValue(err error) slog.Value {
	if err == nil {
		return slog.GroupValue()
	}
	v := ToView(err)
	attrs := make([]slog.Attr, 0, 6)
	if v.Kind != "" {
		attrs = append(attrs, slog.String("kind", v.Kind))
	}
	attrs = append(attrs, slog.String("message", v.Message))
	if v.Code != 0 {
		attrs = append(attrs, slog.Int("code", int(v.Code)))
	}
	if v.CodeName != "" {
		attrs = append(attrs, slog.String("code_name", v.CodeName))
	}
	if len(v.Labels) > 0 {
		attrs = append(attrs, slog.Any("labels", v.Labels))
	}
	if len(v.Notes) > 0 {
		attrs = append(attrs, slog.Any("notes", v.Notes))
	}
	return slog.GroupValue(attrs...)
}

// Attr is shorthand for slog.Attr{Key: key, Value: LogValue(err)}.
func Attr(key string, err error) slog.Attr {
	return slog.Attr{Key: key, Value: LogValue(err)}
}
