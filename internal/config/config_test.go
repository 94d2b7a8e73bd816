package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func resetGlobalConfig() {
	globalConfig = &Config{
		Owner:           "",
		DatabasePath:    ".agora",
		BindAddr:        "0.0.0.0",
		ApiPort:         8080,
		MetricsPort:     12798,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

func TestLoad_CompareFullStruct(t *testing.T) {
	resetGlobalConfig()
	yamlContent := `
owner: "ST1OWNER"
databasePath: ".agora-test"
bindAddr: "127.0.0.1"
apiPort: 8090
metricsPort: 8088
shutdownTimeout: "10s"
tracing: true
tracingStdout: true
`

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test-agora.yaml")

	err := os.WriteFile(tmpFile, []byte(yamlContent), 0644)
	if err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	defer os.Remove(tmpFile)

	expected := &Config{
		Owner:           "ST1OWNER",
		DatabasePath:    ".agora-test",
		BindAddr:        "127.0.0.1",
		ApiPort:         8090,
		MetricsPort:     8088,
		ShutdownTimeout: "10s",
		Tracing:         true,
		TracingStdout:   true,
	}

	actual, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if !reflect.DeepEqual(actual, expected) {
		t.Fatalf("config mismatch\ngot: %+v\nwant: %+v", actual, expected)
	}
}

func TestLoad_Defaults(t *testing.T) {
	resetGlobalConfig()

	expected := &Config{
		Owner:           "",
		DatabasePath:    ".agora",
		BindAddr:        "0.0.0.0",
		ApiPort:         8080,
		MetricsPort:     12798,
		ShutdownTimeout: DefaultShutdownTimeout,
	}

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if !reflect.DeepEqual(cfg, expected) {
		t.Fatalf("config mismatch\ngot: %+v\nwant: %+v", cfg, expected)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	resetGlobalConfig()
	yamlContent := `
owner: "ST1OWNER"
bindAddr: "127.0.0.1"
`

	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test-agora.yaml")

	err := os.WriteFile(tmpFile, []byte(yamlContent), 0644)
	if err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	defer os.Remove(tmpFile)

	t.Setenv("AGORA_OWNER", "ST2OVERRIDE")
	t.Setenv("AGORA_METRICS_PORT", "9999")

	cfg, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Owner != "ST2OVERRIDE" {
		t.Fatalf("expected env to override owner, got %q", cfg.Owner)
	}
	if cfg.MetricsPort != 9999 {
		t.Fatalf("expected env to override metrics port, got %d", cfg.MetricsPort)
	}
	if cfg.BindAddr != "127.0.0.1" {
		t.Fatalf("expected file value for bind addr, got %q", cfg.BindAddr)
	}
}
