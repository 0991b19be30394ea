package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vnykmshr/seqflow/internal/testutil"
	gferrors "github.com/vnykmshr/seqflow/pkg/common/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	testutil.AssertNoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, cfg.Log.Level, "info")
	testutil.AssertEqual(t, cfg.Words.LongerThan, 12)
	testutil.AssertEqual(t, cfg.Parallel.Workers, 4)
	testutil.AssertEqual(t, cfg.Redis.Addr, "localhost:6379")
	testutil.AssertEqual(t, cfg.Redis.PageSize, int64(500))
	testutil.AssertEqual(t, cfg.Watch.Schedule, "")
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "seqflow.yml", `
words:
  file: alice.txt
  longer_than: 8
parallel:
  workers: 2
watch:
  schedule: "@every 5m"
`)

	cfg, err := Load(WithConfigFile(path))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cfg.Words.File, "alice.txt")
	testutil.AssertEqual(t, cfg.Words.LongerThan, 8)
	testutil.AssertEqual(t, cfg.Parallel.Workers, 2)
	testutil.AssertEqual(t, cfg.Watch.Schedule, "@every 5m")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "seqflow.yml", "parallel:\n  workers: 2\n")
	t.Setenv("SEQFLOW_PARALLEL_WORKERS", "16")
	t.Setenv("SEQFLOW_REDIS_KEY", "alice:words")

	cfg, err := Load(WithConfigFile(path))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cfg.Parallel.Workers, 16)
	testutil.AssertEqual(t, cfg.Redis.Key, "alice:words")
}

func TestLoad_EnvFile(t *testing.T) {
	path := writeFile(t, ".env", "SEQFLOW_WORDS_LONGER_THAN=20\n")
	t.Cleanup(func() { _ = os.Unsetenv("SEQFLOW_WORDS_LONGER_THAN") })

	cfg, err := Load(WithEnvFile(path))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, cfg.Words.LongerThan, 20)
}

func TestLoad_MissingFiles(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yml")

	_, err := Load(WithConfigFile(missing))
	testutil.AssertError(t, err)

	_, err = Load(WithEnvFile(missing))
	testutil.AssertError(t, err)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"zero workers", map[string]string{"SEQFLOW_PARALLEL_WORKERS": "0"}},
		{"negative length", map[string]string{"SEQFLOW_WORDS_LONGER_THAN": "-1"}},
		{"bad redis addr", map[string]string{"SEQFLOW_REDIS_ADDR": "no-port"}},
		{"bad schedule", map[string]string{"SEQFLOW_WATCH_SCHEDULE": "sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			testutil.AssertEqual(t, gferrors.IsValidationError(err), true)
			testutil.AssertEqual(t, errors.Is(err, gferrors.ErrInvalidConfiguration), true)
		})
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("SEQFLOW_LOG_LEVEL", "chatty")

	_, err := Load()
	testutil.AssertError(t, err)
}
