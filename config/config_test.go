package config

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"
	"time"
)

type testSection struct {
	URI     string        `mapstructure:"uri"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Port          int         `mapstructure:"port"`
	Mongo         testSection `mapstructure:"mongo"`
	Ignored       string      `mapstructure:"-"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: voxrelay
environment: staging
port: 9090
mongo:
  uri: mongodb://db:27017
  timeout: 5s
`)

	var cfg testConfig
	if err := LoadConfig("voxrelay", &cfg, WithConfigFile(path), WithFileSystem(RealFileSystem{})); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "voxrelay" || cfg.Environment != "staging" {
		t.Errorf("unexpected service config %+v", cfg.ServiceConfig)
	}
	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.Mongo.URI != "mongodb://db:27017" {
		t.Errorf("unexpected uri %q", cfg.Mongo.URI)
	}
	if cfg.Mongo.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.Mongo.Timeout)
	}
}

func TestLoadConfigEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: voxrelay\nport: 9090\n")

	t.Setenv("PORT", "7000")
	t.Setenv("MONGO_URI", "mongodb://env:27017")

	var cfg testConfig
	if err := LoadConfig("voxrelay", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != 7000 {
		t.Errorf("expected env port 7000, got %d", cfg.Port)
	}
	if cfg.Mongo.URI != "mongodb://env:27017" {
		t.Errorf("expected env uri, got %q", cfg.Mongo.URI)
	}
}

func TestLoadConfigEnvAlias(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: voxrelay\n")
	t.Setenv("MONGODB_URI", "mongodb://alias:27017")

	var cfg testConfig
	err := LoadConfig("voxrelay", &cfg, WithConfigFile(path), WithEnvAlias("MONGODB_URI", "mongo.uri"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Mongo.URI != "mongodb://alias:27017" {
		t.Errorf("expected alias uri, got %q", cfg.Mongo.URI)
	}
}

func TestLoadConfigMissingFileUsesEnvOnly(t *testing.T) {
	t.Setenv("NAME", "from-env")
	var cfg testConfig
	if err := LoadConfig("nothing-here", &cfg, WithFileSystem(&mockFS{})); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "from-env" {
		t.Errorf("expected name from env, got %q", cfg.Name)
	}
}

func TestLoadConfigUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: [unterminated\n")
	var cfg testConfig
	if err := LoadConfig("voxrelay", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(string) error    { return nil }

func TestResolverSearchOrder(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/voxrelay/config.yml": true,
		"./config.yml":              true,
		"./.env":                    true,
	}}
	r := &Resolver{FileSystem: fs}
	files := r.ResolveFiles("voxrelay", LoaderConfig{})
	if files.ConfigFile != "./cmd/voxrelay/config.yml" {
		t.Errorf("expected cmd config first, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env" {
		t.Errorf("expected ./.env, got %q", files.EnvFile)
	}
}

func TestResolverExplicitPaths(t *testing.T) {
	r := &Resolver{FileSystem: &mockFS{}}
	files := r.ResolveFiles("svc", LoaderConfig{ConfigFile: "a.yml", EnvFile: "b.env"})
	if files.ConfigFile != "a.yml" || files.EnvFile != "b.env" {
		t.Errorf("explicit paths must win, got %+v", files)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("REGISTRY_MONGO_URI")
	want := []string{"registry_mongo_uri", "registry.mongo_uri", "registry_mongo.uri", "registry.mongo.uri"}
	if len(got) != len(want) {
		t.Fatalf("expected %d variants, got %v", len(want), got)
	}
	for _, w := range want {
		if !slices.Contains(got, w) {
			t.Errorf("missing variant %q in %v", w, got)
		}
	}
	if v := envKeyVariants("PORT"); len(v) != 1 || v[0] != "port" {
		t.Errorf("unexpected single-part variants %v", v)
	}
}

func TestKnownKeys(t *testing.T) {
	keys := knownKeys(reflect.TypeOf(&testConfig{}), "")
	for _, k := range []string{"name", "environment", "logging.level", "port", "mongo.uri", "mongo.timeout"} {
		if !keys[k] {
			t.Errorf("expected key %q", k)
		}
	}
	if keys["ignored"] {
		t.Error("fields tagged '-' must be skipped")
	}
	if keys["logging.servicename"] {
		t.Error("logging.ServiceName is tagged '-' and must be skipped")
	}
}

func TestServiceConfigDefaultsAndValidate(t *testing.T) {
	cfg := ServiceConfig{Name: "voxrelay"}
	cfg.ApplyDefaults()
	if cfg.Environment != "development" || !cfg.Debug {
		t.Errorf("expected development defaults, got %+v", cfg)
	}
	if cfg.Logging.ServiceName != "voxrelay" {
		t.Errorf("expected logging service name propagated, got %q", cfg.Logging.ServiceName)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	bad := ServiceConfig{Name: "x", Environment: "qa"}
	bad.ApplyDefaults()
	if err := bad.Validate(); err == nil {
		t.Error("expected error for unknown environment")
	}

	missing := ServiceConfig{}
	missing.ApplyDefaults()
	if err := missing.Validate(); err == nil {
		t.Error("expected error for missing name")
	}
}
