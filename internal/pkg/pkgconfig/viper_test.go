package pkgconfig

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestViperConfigValues(t *testing.T) {
	path := writeConfigFile(t, "int: 42\nbool: true\nstring: hi\narray: \"a, b,,c\"\ntimeout: 1m30s\n")

	cfg, err := NewViper(path)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}
	defer func() {
		if err := cfg.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}()

	if got := cfg.GetInt("int"); got != 42 {
		t.Fatalf("GetInt: expected 42, got %d", got)
	}
	if got := cfg.GetBool("bool"); got != true {
		t.Fatalf("GetBool: expected true, got %v", got)
	}
	if got := cfg.GetString("string"); got != "hi" {
		t.Fatalf("GetString: expected hi, got %q", got)
	}
	if got := cfg.GetArray("array"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("GetArray: unexpected value: %#v", got)
	}
	if got := cfg.GetArray("missing"); len(got) != 0 {
		t.Fatalf("GetArray: expected empty for unset key, got %#v", got)
	}
	if got := cfg.GetDuration("timeout"); got != 90*time.Second {
		t.Fatalf("GetDuration: expected 1m30s, got %v", got)
	}
}

func TestViperArrayFromEnvironment(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := NewViper("")
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}

	want := []string{"https://a.example", "https://b.example"}
	if got := cfg.GetArray("cors.allowed_origins"); !reflect.DeepEqual(got, want) {
		t.Fatalf("GetArray: expected %#v, got %#v", want, got)
	}
}

func TestViperMissingFileUsesDefaults(t *testing.T) {
	cfg, err := NewViper(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}

	cfg.SetDefault("server.address.http", ":8080")
	if got := cfg.GetString("server.address.http"); got != ":8080" {
		t.Fatalf("expected default address, got %q", got)
	}
}

func TestViperEnvironmentOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "auth:\n  api_key: from-file\nanalysis:\n  model: file-model\n")
	t.Setenv("ANALYSIS_MODEL", "env-model")
	t.Setenv("API_KEY", "from-env")

	cfg, err := NewViper(path)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}
	if err := cfg.BindEnv("auth.api_key", "AUTH_API_KEY", "API_KEY"); err != nil {
		t.Fatalf("BindEnv: %v", err)
	}

	if got := cfg.GetString("analysis.model"); got != "env-model" {
		t.Fatalf("expected automatic env mapping, got %q", got)
	}
	if got := cfg.GetString("auth.api_key"); got != "from-env" {
		t.Fatalf("expected bound env value, got %q", got)
	}
}
