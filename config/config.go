// Package config loads the harness configuration from an optional YAML file and from LDTH_
// environment variables, which may also come from a .env file. Command-line flags are applied
// on top of it by the caller.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ldconformance/ld-test-harness/earl"
	"github.com/ldconformance/ld-test-harness/suite"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override configuration values, for
// instance LDTH_SERVICE_URL for service.url.
const EnvPrefix = "LDTH_"

type Config struct {
	Suite   SuiteConfig   `koanf:"suite"`
	Service ServiceConfig `koanf:"service"`
	Report  ReportConfig  `koanf:"report"`
	Project earl.Project  `koanf:"project"`
}

type SuiteConfig struct {
	// Dir is the local copy of the test suite; it must contain the root manifest.
	Dir string `koanf:"dir"`
	// Manifest is the file name of the root manifest inside Dir.
	Manifest string `koanf:"manifest"`
	// Remote is the URL that the suite's documents claim to be published at.
	Remote string `koanf:"remote"`
}

type ServiceConfig struct {
	URL  string `koanf:"url"`
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

type ReportConfig struct {
	EARL           string `koanf:"earl"`
	JUnit          string `koanf:"junit"`
	RecordFailures string `koanf:"failures"`
	StopOnFailure  bool   `koanf:"stoponfailure"`
}

// Load reads the configuration. If path is empty, only defaults and the environment are used.
//
// Variables in a .env file next to the configuration file (or in the working directory, if
// there is no file) are added to the environment first; variables that are already set win.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	_ = k.Set("suite.manifest", suite.DefaultManifestFile)
	_ = k.Set("suite.remote", suite.DefaultRemoteBaseURL)
	_ = k.Set("service.url", "http://localhost:8000")
	_ = k.Set("service.host", "localhost")
	_ = k.Set("service.port", 8111)
	_ = k.Set("project.language", "unknown")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// LDTH_PROJECT_DEVELOPER_NAME -> project.developer.name
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil //nolint:nilerr
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}
	return nil
}
