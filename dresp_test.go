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

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"dirpx.dev/dresp/kind"
	"dirpx.dev/dresp/label"
	"dirpx.dev/dresp/wirecode"
)

func TestError_Basics(t *testing.T) {
	e := OperationFailed(wirecode.NotWritablePrimary, "not primary",
		WithWriteConcernOption(WriteConcernError{Code: wirecode.WriteConcernFailed, WTimeout: true}),
	)

	if e.Kind != kind.OperationFailure {
		t.Fatal("kind mismatch")
	}
	if !e.HasWriteConcernError() || !e.WTimeout() {
		t.Fatal("write concern missing")
	}

	s := e.Error()
	wantSubs := []string{"operation_failure", "not primary", "NotWritablePrimary(10107)"}
	for _, sub := range wantSubs {
		if !strings.Contains(s, sub) {
			t.Fatalf("Error() missing %q in %q", sub, s)
		}
	}
}

func TestError_FormatUnknownCodeAndNotes(t *testing.T) {
	e := OperationFailed(11000, "duplicate key")
	e.AddNote("on db1:27017")
	e.AddNote("on db1:27017")
	want := "operation_failure: duplicate key [11000] (on db1:27017, on db1:27017)"
	if got := e.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	named := OperationFailed(11000, "duplicate key", WithCodeNameOption("DuplicateKey"))
	if got := named.Error(); got != "operation_failure: duplicate key [DuplicateKey(11000)]" {
		t.Fatalf("Error() = %q", got)
	}

	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatal("nil receiver must render <nil>")
	}
}

func TestError_LabelsAreASet(t *testing.T) {
	e := Socket("connection reset", nil)
	if !e.AddLabel(label.TransientTransactionError) {
		t.Fatal("first AddLabel must report insertion")
	}
	if e.AddLabel(label.TransientTransactionError) {
		t.Fatal("second AddLabel must be a no-op")
	}
	if len(e.Labels()) != 1 || len(e.ErrorLabels()) != 1 {
		t.Fatalf("labels = %v", e.Labels())
	}
	if !e.HasErrorLabel("TransientTransactionError") {
		t.Fatal("HasErrorLabel mismatch")
	}
}

func TestError_NotesAreAppendOnlyCopies(t *testing.T) {
	e := Auth("bad credentials", nil)
	if e.Notes() != nil {
		t.Fatal("fresh error must carry no notes")
	}
	e.AddNote("on a:1")
	n := e.Notes()
	n[0] = "mutated"
	if e.Notes()[0] != "on a:1" {
		t.Fatal("Notes must return a copy")
	}
}

func TestError_WriteRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want bool
	}{
		{"socket", Socket("reset", nil), true},
		{"socket timeout", SocketTimeout("timed out", nil), true},
		{"retryable code", OperationFailed(wirecode.PrimarySteppedDown, "stepped down"), true},
		{"non retryable code", OperationFailed(11000, "dup"), false},
		{"retryable write concern code", OperationFailed(wirecode.None, "wc",
			WithWriteConcernOption(WriteConcernError{Code: wirecode.ShutdownInProgress})), true},
		{"server label", OperationFailed(11000, "dup",
			WithServerLabelsOption(label.RetryableWriteError)), true},
		{"other server label", OperationFailed(11000, "dup",
			WithServerLabelsOption(label.TransientTransactionError)), false},
		{"auth", Auth("denied", nil), false},
		{"generic", Generic("boom", nil), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.WriteRetryable(); got != tt.want {
				t.Fatalf("WriteRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestError_MaxTimeMSExpired(t *testing.T) {
	if !OperationFailed(wirecode.MaxTimeMSExpired, "slow").MaxTimeMSExpired() {
		t.Fatal("code 50 must report MaxTimeMSExpired")
	}
	if OperationFailed(wirecode.ExceededTimeLimit, "slow").MaxTimeMSExpired() {
		t.Fatal("code 262 is not MaxTimeMSExpired")
	}
	if _, ok := OperationFailed(1, "x").WriteConcernCode(); ok {
		t.Fatal("no write concern error expected")
	}
}

func TestError_WithCause_Unwrap(t *testing.T) {
	root := errors.New("root")
	e := Socket("x", root)
	if !errors.Is(e, root) {
		t.Fatal("errors.Is failed")
	}
	if errors.Unwrap(e) != root || e.ErrorCause() != root {
		t.Fatal("Unwrap failed")
	}
}

func TestAs_FindsWrappedError(t *testing.T) {
	inner := SocketTimeout("deadline", nil)
	wrapped := fmt.Errorf("send: %w", inner)

	got, ok := As(wrapped)
	if !ok || got != inner {
		t.Fatal("As must find the taxonomy error in the chain")
	}
	if _, ok := As(errors.New("foreign")); ok {
		t.Fatal("As must not match foreign errors")
	}
	if _, ok := As(nil); ok {
		t.Fatal("As(nil) must not match")
	}
}

func TestWriteConcernOption_Copies(t *testing.T) {
	wc := WriteConcernError{Code: wirecode.WriteConcernFailed}
	e := OperationFailed(1, "x", WithWriteConcernOption(wc))
	wc.Code = wirecode.UnknownReplWriteConcern
	if c, _ := e.WriteConcernCode(); c != wirecode.WriteConcernFailed {
		t.Fatal("option must copy the write concern error")
	}
}

func TestErrorView(t *testing.T) {
	e := OperationFailed(wirecode.WriteConcernFailed, "waiting for replication timed out",
		WithWriteConcernOption(WriteConcernError{Code: wirecode.WriteConcernFailed, WTimeout: true}),
	)
	e.AddLabel(label.UnknownTransactionCommitResult)
	e.AddNote("on db2:27017")
	e.Generation = 3

	v := e.ErrorView()
	if v.Kind != "operation_failure" || v.Code != 64 || v.CodeName != "WriteConcernFailed" {
		t.Fatalf("unexpected view: %+v", v)
	}
	if len(v.Labels) != 1 || v.Labels[0] != "UnknownTransactionCommitResult" {
		t.Fatalf("labels = %v", v.Labels)
	}
	if len(v.Notes) != 1 || v.Generation != 3 {
		t.Fatalf("notes/generation = %v/%d", v.Notes, v.Generation)
	}
	if v.WriteConcern == nil || !v.WriteConcern.WTimeout || v.WriteConcern.CodeName != "WriteConcernFailed" {
		t.Fatalf("write concern view = %+v", v.WriteConcern)
	}
}
