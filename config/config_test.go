package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ldconformance/ld-test-harness/suite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Suite.Dir)
	assert.Equal(t, suite.DefaultManifestFile, cfg.Suite.Manifest)
	assert.Equal(t, suite.DefaultRemoteBaseURL, cfg.Suite.Remote)
	assert.Equal(t, "http://localhost:8000", cfg.Service.URL)
	assert.Equal(t, "localhost", cfg.Service.Host)
	assert.Equal(t, 8111, cfg.Service.Port)
	assert.False(t, cfg.Report.StopOnFailure)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harness.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
suite:
  dir: /work/json-ld.org/test-suite
service:
  port: 9000
report:
  earl: earl.jsonld
  stoponfailure: true
project:
  id: https://github.com/example/processor
  name: example-processor
  language: Go
  developer:
    id: https://github.com/example
    name: Example Developer
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/work/json-ld.org/test-suite", cfg.Suite.Dir)
	assert.Equal(t, suite.DefaultRemoteBaseURL, cfg.Suite.Remote)
	assert.Equal(t, 9000, cfg.Service.Port)
	assert.Equal(t, "localhost", cfg.Service.Host)
	assert.Equal(t, "earl.jsonld", cfg.Report.EARL)
	assert.True(t, cfg.Report.StopOnFailure)
	assert.Equal(t, "https://github.com/example/processor", cfg.Project.ID)
	assert.Equal(t, "example-processor", cfg.Project.Name)
	assert.Equal(t, "Go", cfg.Project.ProgrammingLanguage)
	assert.Equal(t, "Example Developer", cfg.Project.Developer.Name)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harness.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service:\n  url: http://file:8000\n"), 0o600))
	t.Setenv("LDTH_SERVICE_URL", "http://env:8000")
	t.Setenv("LDTH_PROJECT_DEVELOPER_HOMEPAGE", "https://example.org/dev")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://env:8000", cfg.Service.URL)
	assert.Equal(t, "https://example.org/dev", cfg.Project.Developer.Homepage)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	assert.Error(t, err)
}

func TestLoadDotEnvNextToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "harness.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service:\n  port: 9000\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("LDTH_SERVICE_HOST=dotenv-host\nLDTH_SERVICE_URL=http://dotenv:8000\n"), 0o600))
	t.Setenv("LDTH_SERVICE_URL", "http://env:8000")
	t.Cleanup(func() { _ = os.Unsetenv("LDTH_SERVICE_HOST") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dotenv-host", cfg.Service.Host)
	assert.Equal(t, "http://env:8000", cfg.Service.URL)
	assert.Equal(t, 9000, cfg.Service.Port)
}
