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

package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"dirpx.dev/dresp/labeler"
	"dirpx.dev/dresp/txn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, labeler.ClientContext{}, cfg.ClientContext())
	assert.False(t, cfg.ClientContext().RetryWritesEffective())
	assert.Equal(t, txn.UnpinAlways, cfg.Policy())
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
retry_writes: false
max_write_retries: 2
unpin_policy: on_labels
logging:
  level: debug
  format: json
`))
	require.NoError(t, err)
	assert.Equal(t, labeler.ClientContext{MaxWriteRetries: 2}, cfg.ClientContext())
	assert.True(t, cfg.ClientContext().Legacy())
	assert.Equal(t, txn.UnpinOnLabels, cfg.Policy())
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("retry_writes: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.RetryWrites)
	assert.Equal(t, "always", cfg.UnpinPolicy)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("DRESP_RETRY_WRITES", "true")
	t.Setenv("DRESP_LOGGING_LEVEL", "warn")

	cfg, err := Parse([]byte("retry_writes: false\n"))
	require.NoError(t, err)
	assert.True(t, cfg.RetryWrites)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"negative retries": "max_write_retries: -1\n",
		"unknown policy":   "unpin_policy: sometimes\n",
		"unknown level":    "logging:\n  level: loud\n",
		"unknown format":   "logging:\n  format: xml\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
		})
	}

	_, err := Parse([]byte("retry_writes: [nope\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dresp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retry_writes: true\nunpin_policy: on_labels\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.RetryWrites)
	assert.Equal(t, txn.UnpinOnLabels, cfg.Policy())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_SearchWithoutFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}
