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

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	spb "google.golang.org/genproto/googleapis/rpc/status"
	"google.golang.org/grpc/codes"
	"google.golang.org/protobuf/encoding/protojson"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--no-color"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func decode(t *testing.T, out string) classifyResult {
	t.Helper()
	var res classifyResult
	require.NoError(t, json.Unmarshal([]byte(out), &res), out)
	return res
}

func TestClassify_SocketErrorInTransaction(t *testing.T) {
	out, err := run(t, "classify", "--kind", "socket_error", "--state", "in_progress", "--pinned")
	require.NoError(t, err)

	res := decode(t, out)
	assert.Equal(t, "socket_error", res.Error.Kind)
	assert.Equal(t, []string{"TransientTransactionError"}, res.Error.Labels)
	assert.Empty(t, res.Error.Notes)
	assert.True(t, res.Unpinned)
	assert.Empty(t, res.Explain)
}

func TestClassify_CommitWriteConcernYAML(t *testing.T) {
	out, err := run(t, "classify",
		"--kind", "operation_failure",
		"--wc-code", "64",
		"--wtimeout",
		"--state", "committing",
		"--server", "db1:27017",
		"--explain",
		"-o", "yaml",
	)
	require.NoError(t, err)

	var res classifyResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &res), out)
	assert.Equal(t, []string{"UnknownTransactionCommitResult"}, res.Error.Labels)
	assert.Equal(t, []string{"on db1:27017"}, res.Error.Notes)
	require.NotNil(t, res.Error.WriteConcern)
	assert.True(t, res.Error.WriteConcern.WTimeout)
	assert.Contains(t, res.Explain, "UnknownTransactionCommitResult: fired (wtimeout)")
	assert.False(t, res.Unpinned)
}

func TestClassify_RetryWritesFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dresp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retry_writes: true\nlogging:\n  level: debug\n"), 0o600))

	out, err := run(t, "--config", path, "classify", "--kind", "socket_timeout_error")
	require.NoError(t, err)
	assert.Equal(t, []string{"RetryableWriteError"}, decode(t, out).Error.Labels)

	out, err = run(t, "--config", path, "classify", "--kind", "socket_timeout_error", "--retry-writes=false")
	require.NoError(t, err)
	assert.Empty(t, decode(t, out).Error.Labels)
}

func TestClassify_ServerLabel(t *testing.T) {
	out, err := run(t, "classify", "--code", "11000", "--server-label", "RetryableWriteError", "--max-write-retries", "1")
	require.NoError(t, err)

	res := decode(t, out)
	assert.Equal(t, int32(11000), res.Error.Code)
	assert.Equal(t, []string{"RetryableWriteError"}, res.Error.Labels)
	assert.Equal(t, []string{"on localhost:27017"}, res.Error.Notes)
}

func TestClassify_StatusOutput(t *testing.T) {
	out, err := run(t, "classify", "--kind", "auth_error", "--message", "bad credentials", "-o", "status")
	require.NoError(t, err)

	var st spb.Status
	require.NoError(t, protojson.Unmarshal([]byte(out), &st), out)
	assert.Equal(t, int32(codes.Unauthenticated), st.GetCode())
	assert.Equal(t, "bad credentials", st.GetMessage())
	require.Len(t, st.GetDetails(), 1)

	info := &errdetails.ErrorInfo{}
	require.NoError(t, st.GetDetails()[0].UnmarshalTo(info))
	assert.Equal(t, "AUTH_ERROR", info.GetReason())
}

func TestClassify_InvalidFlags(t *testing.T) {
	_, err := run(t, "classify", "--kind", "disk_full")
	assert.Error(t, err)

	_, err = run(t, "classify", "--state", "sleeping")
	assert.Error(t, err)

	_, err = run(t, "classify", "--server-label", "lowercase")
	assert.Error(t, err)

	_, err = run(t, "classify", "-o", "xml")
	assert.Error(t, err)
}

func TestClassify_MissingExplicitConfig(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "classify")
	assert.Error(t, err)
}

func TestClassify_Metrics(t *testing.T) {
	out, err := run(t, "classify", "--kind", "socket_error", "--state", "in_progress", "--pinned", "-o", "yaml", "--metrics")
	require.NoError(t, err)

	assert.Contains(t, out, "- TransientTransactionError")
	assert.Contains(t, out, `dresp_operations_total{outcome="failure"} 1`)
	assert.Contains(t, out, `dresp_failures_total{kind="socket_error"} 1`)
	assert.Contains(t, out, `dresp_labels_added_total{label="TransientTransactionError"} 1`)
	assert.Contains(t, out, "dresp_session_unpins_total 1")
}

func TestExitCode_PrintsErrorToErrStream(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "absent.yaml"), "classify"})

	assert.Equal(t, 1, exitCode(cmd))
	assert.Contains(t, errOut.String(), "Error: ")
	assert.Contains(t, errOut.String(), "absent.yaml")
	assert.Empty(t, out.String())

	cmd = NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--no-color", "map", "UNAVAILABLE"})
	assert.Equal(t, 0, exitCode(cmd))
}

func TestMap(t *testing.T) {
	for _, arg := range []string{"UNAVAILABLE", "unavailable", "14"} {
		out, err := run(t, "map", arg)
		require.NoError(t, err, arg)
		assert.Equal(t, "grpc=UNAVAILABLE(14)\nkind: source=default -> socket_error\n", out)
	}

	_, err := run(t, "map", "NOT_A_CODE")
	assert.Error(t, err)
}
