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
	"fmt"
	"log/slog"
	"testing"

	"dirpx.dev/dresp"
	"dirpx.dev/dresp/label"
	"dirpx.dev/dresp/wirecode"
)

type kindedErr struct{}

func (kindedErr) Error() string               { return "kinded" }
func (kindedErr) ErrorKind() string           { return "custom_kind" }
func (kindedErr) ErrorLabels() []string       { return []string{"Custom"} }
func (kindedErr) HasErrorLabel(l string) bool { return l == "Custom" }
func (kindedErr) ErrorNotes() []string        { return []string{"on db9:27017"} }

func TestToView_Taxonomy(t *testing.T) {
	e := dresp.OperationFailed(wirecode.NotWritablePrimary, "not primary",
		dresp.WithServerLabelsOption(label.RetryableWriteError))
	e.AddNote("on db1:27017")

	v := ToView(fmt.Errorf("insert: %w", e))
	if v.Kind != "operation_failure" {
		t.Fatalf("Kind = %q", v.Kind)
	}
	if v.Code != 10107 || v.CodeName != "NotWritablePrimary" {
		t.Fatalf("Code = %d %q", v.Code, v.CodeName)
	}
	if len(v.Labels) != 1 || v.Labels[0] != "RetryableWriteError" {
		t.Fatalf("Labels = %v", v.Labels)
	}
	if len(v.Notes) != 1 || v.Notes[0] != "on db1:27017" {
		t.Fatalf("Notes = %v", v.Notes)
	}
}

func TestToView_GenericInterfaces(t *testing.T) {
	v := ToView(kindedErr{})
	if v.Kind != "custom_kind" || v.Message != "kinded" {
		t.Fatalf("unexpected view: %+v", v)
	}
	if len(v.Labels) != 1 || len(v.Notes) != 1 {
		t.Fatalf("unexpected view: %+v", v)
	}
}

func TestToView_PlainAndNil(t *testing.T) {
	v := ToView(errors.New("boom"))
	if v.Kind != "" || v.Message != "boom" || v.Labels != nil {
		t.Fatalf("unexpected view: %+v", v)
	}
	if v := ToView(nil); v.Message != "" || v.Kind != "" {
		t.Fatalf("nil error should give empty view, got %+v", v)
	}
}

func TestLogValue(t *testing.T) {
	e := dresp.Socket("connection reset", nil)
	e.AddLabel(label.TransientTransactionError)

	v := LogValue(e)
	if v.Kind() != slog.KindGroup {
		t.Fatalf("LogValue kind = %v, want group", v.Kind())
	}
	got := map[string]slog.Value{}
	for _, a := range v.Group() {
		got[a.Key] = a.Value
	}
	if got["kind"].String() != "socket_error" {
		t.Fatalf("kind = %v", got["kind"])
	}
	if got["message"].String() != "connection reset" {
		t.Fatalf("message = %v", got["message"])
	}
	if _, ok := got["code"]; ok {
		t.Fatalf("code must be omitted for socket errors")
	}
	if _, ok := got["labels"]; !ok {
		t.Fatalf("labels missing")
	}

	if a := Attr("error", nil); len(a.Value.Group()) != 0 {
		t.Fatalf("nil error should log an empty group")
	}
}
