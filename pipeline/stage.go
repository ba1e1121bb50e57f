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

package pipeline

import (
	"context"

	"dirpx.dev/dresp"
	"dirpx.dev/dresp/apis"
	"dirpx.dev/dresp/kind"
	"dirpx.dev/dresp/labeler"
)

// Scope is the per-call context the stages read.
type Scope struct {
	// Session is the session the operation runs in. May be nil.
	Session apis.Session
	// Client carries the retryable-writes configuration.
	Client labeler.ClientContext
	// Server is the server the operation was sent to. May be nil.
	Server apis.Server
}

// Stage is one enrichment step on the failure path.
//
// Enrich receives the error produced so far and returns the error to hand to
// the next stage. Built-in stages mutate taxonomy errors in place and return
// the same value.
type Stage interface {
	Name() string
	Enrich(ctx context.Context, err error, sc Scope) error
}

// DiagnosticsStage attaches server context to taxonomy errors.
//
// Socket errors get no note: the connection layer already names the server
// in their message. Every other known kind gets "on <address>". The
// generation and service id of a server implementing
// apis.ConnectionDescriber are copied when the error does not carry them.
type DiagnosticsStage struct{}

func (DiagnosticsStage) Name() string { return "diagnostics" }

func (DiagnosticsStage) Enrich(_ context.Context, err error, sc Scope) error {
	e, ok := dresp.As(err)
	if !ok || sc.Server == nil {
		return err
	}
	if cd, ok := sc.Server.(apis.ConnectionDescriber); ok {
		if e.Generation == 0 {
			e.Generation = cd.Generation()
		}
		if e.ServiceID == "" {
			e.ServiceID = cd.ServiceID()
		}
	}
	if e.Kind.IsNetwork() || kind.Validate(e.Kind) != nil {
		return err
	}
	if addr := sc.Server.Address(); addr != "" {
		e.AddNote("on " + addr)
	}
	return err
}

// LabelStage classifies taxonomy errors with labeler.Classify.
type LabelStage struct{}

func (LabelStage) Name() string { return "labels" }

func (LabelStage) Enrich(_ context.Context, err error, sc Scope) error {
	if e, ok := dresp.As(err); ok {
		labeler.Classify(e, sc.Client, sc.Session)
	}
	return err
}

// UnpinStage hands every error, taxonomy or not, to Session.UnpinMaybe.
type UnpinStage struct{}

func (UnpinStage) Name() string { return "unpin" }

func (UnpinStage) Enrich(_ context.Context, err error, sc Scope) error {
	if sc.Session != nil {
		sc.Session.UnpinMaybe(err)
	}
	return err
}
