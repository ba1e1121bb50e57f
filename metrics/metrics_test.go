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

package metrics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"dirpx.dev/dresp"
	"dirpx.dev/dresp/label"
	"dirpx.dev/dresp/labeler"
	"dirpx.dev/dresp/pipeline"
	"dirpx.dev/dresp/txn"
	"dirpx.dev/dresp/wirecode"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type server string

func (s server) Address() string { return string(s) }

func TestCollector_Observe(t *testing.T) {
	c := New(prometheus.NewRegistry())
	ctx := context.Background()

	c.Observe(ctx, pipeline.Outcome{})
	c.Observe(ctx, pipeline.Outcome{
		Err:         errors.New("x"),
		Kind:        "socket_error",
		LabelsAdded: []label.Label{label.UnknownTransactionCommitResult, label.RetryableWriteError},
		Unpinned:    true,
	})
	c.Observe(ctx, pipeline.Outcome{Err: errors.New("y")})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.operations.WithLabelValues("success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.operations.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.failures.WithLabelValues("socket_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.failures.WithLabelValues(ForeignKind)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.labels.WithLabelValues("RetryableWriteError")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.notes))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.unpins))
}

func TestCollector_WiredIntoPipeline(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)
	p := pipeline.New(
		pipeline.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		pipeline.WithObserver(c),
	)

	s := txn.New(txn.WithState(txn.StateCommitting))
	s.Pin(server("db1:27017"))
	sc := pipeline.Scope{Session: s, Client: labeler.ClientContext{RetryWrites: true}, Server: server("db1:27017")}

	_, err := pipeline.Handle(context.Background(), p, sc, func(context.Context) (int, error) {
		return 0, dresp.OperationFailed(wirecode.PrimarySteppedDown, "primary stepped down")
	})
	require.Error(t, err)

	want := `
# HELP dresp_labels_added_total Total number of labels added to errors
# TYPE dresp_labels_added_total counter
dresp_labels_added_total{label="RetryableWriteError"} 1
dresp_labels_added_total{label="UnknownTransactionCommitResult"} 1
# HELP dresp_notes_added_total Total number of diagnostics notes added to errors
# TYPE dresp_notes_added_total counter
dresp_notes_added_total 1
# HELP dresp_session_unpins_total Total number of sessions unpinned after a failure
# TYPE dresp_session_unpins_total counter
dresp_session_unpins_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want),
		"dresp_labels_added_total", "dresp_notes_added_total", "dresp_session_unpins_total"))
	assert.Equal(t, 1, testutil.CollectAndCount(c.failures))
}

func TestNew_NilRegisterer(t *testing.T) {
	c := New(nil)
	c.Observe(context.Background(), pipeline.Outcome{})
	assert.Equal(t, 1.0, testutil.ToFloat64(c.operations.WithLabelValues("success")))
}
