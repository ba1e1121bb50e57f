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
	"log/slog"

	"dirpx.dev/dresp"
	"dirpx.dev/dresp/adapter"
	"dirpx.dev/dresp/apis"
	"dirpx.dev/dresp/kind"
	"dirpx.dev/dresp/label"
)

// Outcome summarises one call for observers.
type Outcome struct {
	// Err is the final error, nil on success.
	Err error
	// Kind is the taxonomy kind of Err. Empty on success and for errors
	// outside the taxonomy.
	Kind kind.Kind
	// LabelsAdded lists the labels added during this call, in order.
	LabelsAdded []label.Label
	// Noted reports whether a diagnostics note was added.
	Noted bool
	// Unpinned reports whether the session went from pinned to unpinned.
	// Only known for sessions implementing apis.PinReporter.
	Unpinned bool
}

// Failed reports whether the call failed.
func (o Outcome) Failed() bool { return o.Err != nil }

// Observer receives the outcome of every call handled by a Pipeline.
type Observer interface {
	Observe(ctx context.Context, o Outcome)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, o Outcome)

func (f ObserverFunc) Observe(ctx context.Context, o Outcome) { f(ctx, o) }

// Pipeline holds the fixed stage sequence and its collaborators.
// A Pipeline is immutable after New and safe for concurrent use.
type Pipeline struct {
	stages    []Stage
	observers []Observer
	log       *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Nil restores slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithObserver registers an observer. Observers are called in registration
// order after the stages have run.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) {
		if o != nil {
			p.observers = append(p.observers, o)
		}
	}
}

// New returns a pipeline with the stages diagnostics, labels and unpin.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		stages: []Stage{DiagnosticsStage{}, LabelStage{}, UnpinStage{}},
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	out := make([]string, len(p.stages))
	for i, st := range p.stages {
		out[i] = st.Name()
	}
	return out
}

// Handle runs op and returns its value or its enriched error.
//
// A successful value implementing apis.Validator is validated; a validation
// error takes the failure path like any other. On failure the zero value of
// T is returned together with the error produced by the stages. A nil p
// behaves like New().
func Handle[T any](ctx context.Context, p *Pipeline, sc Scope, op func(context.Context) (T, error)) (T, error) {
	if p == nil {
		p = New()
	}
	v, err := op(ctx)
	if err == nil {
		if vd, ok := any(v).(apis.Validator); ok {
			err = vd.Validate()
		}
	}
	if err == nil {
		p.notify(ctx, Outcome{})
		return v, nil
	}
	var zero T
	return zero, p.Fail(ctx, sc, err)
}

// Fail runs err through the stages and returns the result. A nil err is
// returned unchanged without running any stage.
func (p *Pipeline) Fail(ctx context.Context, sc Scope, err error) error {
	if err == nil {
		return nil
	}
	wasPinned := pinned(sc.Session)
	e, taxonomy := dresp.As(err)
	var labelsBefore, notesBefore int
	if taxonomy {
		labelsBefore, notesBefore = len(e.Labels()), len(e.Notes())
	}

	for _, st := range p.stages {
		err = p.run(ctx, st, err, sc)
	}

	o := Outcome{Err: err, Unpinned: wasPinned && !pinned(sc.Session)}
	if taxonomy {
		o.Kind = e.Kind
		if ls := e.Labels(); len(ls) > labelsBefore {
			o.LabelsAdded = ls[labelsBefore:]
		}
		o.Noted = len(e.Notes()) > notesBefore
	}
	p.log.DebugContext(ctx, "pipeline: failure enriched",
		adapter.Attr("error", err),
		slog.Any("labels_added", o.LabelsAdded),
		slog.Bool("unpinned", o.Unpinned),
	)
	p.notify(ctx, o)
	return err
}

// run executes one stage so that it cannot replace err with nil or abort
// the sequence by panicking.
func (p *Pipeline) run(ctx context.Context, st Stage, err error, sc Scope) (out error) {
	out = err
	defer func() {
		if r := recover(); r != nil {
			p.log.ErrorContext(ctx, "pipeline: stage panicked",
				slog.String("stage", st.Name()),
				slog.Any("panic", r),
				adapter.Attr("error", err),
			)
			out = err
		}
	}()
	if next := st.Enrich(ctx, err, sc); next != nil {
		return next
	}
	p.log.ErrorContext(ctx, "pipeline: stage returned nil error",
		slog.String("stage", st.Name()),
		adapter.Attr("error", err),
	)
	return err
}

// notify hands o to every observer. A panicking observer is logged and
// skipped; the remaining observers still run.
func (p *Pipeline) notify(ctx context.Context, o Outcome) {
	for _, obs := range p.observers {
		p.observe(ctx, obs, o)
	}
}

func (p *Pipeline) observe(ctx context.Context, obs Observer, o Outcome) {
	defer func() {
		if r := recover(); r != nil {
			p.log.ErrorContext(ctx, "pipeline: observer panicked",
				slog.Any("panic", r),
				adapter.Attr("error", o.Err),
			)
		}
	}()
	obs.Observe(ctx, o)
}

func pinned(s apis.Session) bool {
	pr, ok := s.(apis.PinReporter)
	return ok && pr.Pinned()
}
