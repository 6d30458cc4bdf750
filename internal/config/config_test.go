package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir string, data []byte) {
	t.Helper()
	configDir := filepath.Join(dir, ".disclose")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("setup: mkdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), data, 0644); err != nil {
		t.Fatalf("setup: write failed: %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Run("existing file", func(t *testing.T) {
		dir := t.TempDir()

		expected := &Config{LogLevel: "debug", LogFile: "/tmp/disclose.log"}
		expected.SetHoverDelayMS(120)

		data, err := json.MarshalIndent(expected, "", "  ")
		if err != nil {
			t.Fatalf("setup: marshal failed: %v", err)
		}
		writeConfig(t, dir, data)

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if cfg.HoverDelay() != 120*time.Millisecond {
			t.Errorf("HoverDelay: got %v, want 120ms", cfg.HoverDelay())
		}
		if cfg.LogLevel != expected.LogLevel {
			t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, expected.LogLevel)
		}
		if cfg.LogFile != expected.LogFile {
			t.Errorf("LogFile: got %q, want %q", cfg.LogFile, expected.LogFile)
		}
	})

	t.Run("non-existent file returns empty config", func(t *testing.T) {
		dir := t.TempDir()

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg == nil {
			t.Fatal("Load returned nil config")
		}
		if cfg.HoverDelayMS != nil {
			t.Errorf("HoverDelayMS: got %d, want unset", *cfg.HoverDelayMS)
		}
		if cfg.HoverDelay() != DefaultHoverDelayMS*time.Millisecond {
			t.Errorf("HoverDelay: got %v, want default", cfg.HoverDelay())
		}
	})

	t.Run("invalid JSON returns error", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, []byte("not valid json{"))

		if _, err := Load(dir); err == nil {
			t.Fatal("Load should fail for invalid JSON")
		}
	})

	t.Run("zero delay is kept", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, []byte(`{"hover_delay_ms": 0}`))

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.HoverDelay() != 0 {
			t.Errorf("HoverDelay: got %v, want 0", cfg.HoverDelay())
		}
	})
}

func TestSave(t *testing.T) {
	t.Run("creates directories and writes valid JSON", func(t *testing.T) {
		dir := t.TempDir()

		cfg := &Config{LogLevel: "warn"}
		cfg.SetHoverDelayMS(75)
		if err := Save(dir, cfg); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		data, err := os.ReadFile(filepath.Join(dir, ".disclose", "config.json"))
		if err != nil {
			t.Fatalf("config file not created: %v", err)
		}
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			t.Fatalf("saved config is not valid JSON: %v", err)
		}
		if raw["hover_delay_ms"] != float64(75) {
			t.Errorf("hover_delay_ms: got %v, want 75", raw["hover_delay_ms"])
		}
	})

	t.Run("overwrites without leaving temp files", func(t *testing.T) {
		dir := t.TempDir()

		for _, ms := range []int{10, 20} {
			cfg := &Config{}
			cfg.SetHoverDelayMS(ms)
			if err := Save(dir, cfg); err != nil {
				t.Fatalf("Save(%d) failed: %v", ms, err)
			}
		}

		entries, err := os.ReadDir(filepath.Join(dir, ".disclose"))
		if err != nil {
			t.Fatalf("ReadDir: %v", err)
		}
		if len(entries) != 1 || entries[0].Name() != "config.json" {
			var names []string
			for _, e := range entries {
				names = append(names, e.Name())
			}
			t.Errorf("config dir holds %v, want only config.json", names)
		}

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if got := cfg.HoverDelay(); got != 20*time.Millisecond {
			t.Errorf("HoverDelay() = %v, want 20ms", got)
		}
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		dir := t.TempDir()

		cfg := &Config{}
		cfg.SetHoverDelayMS(-1)
		err := Save(dir, cfg)

		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Save error = %v, want *ValidationError", err)
		}
		if verr.Field != "hover_delay_ms" {
			t.Errorf("Field: got %q, want hover_delay_ms", verr.Field)
		}
		if _, statErr := os.Stat(Path(dir)); !os.IsNotExist(statErr) {
			t.Error("invalid config should not be written")
		}
	})
}

func TestSetHoverDelay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, []byte(`{"log_level": "debug"}`))

	if err := SetHoverDelay(dir, 300); err != nil {
		t.Fatalf("SetHoverDelay failed: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HoverDelay() != 300*time.Millisecond {
		t.Errorf("HoverDelay: got %v, want 300ms", cfg.HoverDelay())
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel should survive SetHoverDelay, got %q", cfg.LogLevel)
	}

	if err := SetHoverDelay(dir, MaxHoverDelayMS+1); err == nil {
		t.Error("SetHoverDelay should reject values above the maximum")
	}
}

func TestResolve(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv(EnvHoverDelayMS, "")
		t.Setenv(EnvLogLevel, "")
		t.Setenv(EnvLogFile, "")

		cfg, err := Resolve(t.TempDir())
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if cfg.HoverDelay() != DefaultHoverDelayMS*time.Millisecond {
			t.Errorf("HoverDelay: got %v, want default", cfg.HoverDelay())
		}
		if cfg.LogLevel != DefaultLogLevel {
			t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, DefaultLogLevel)
		}
	})

	t.Run("env overrides file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, []byte(`{"hover_delay_ms": 200, "log_level": "warn"}`))
		t.Setenv(EnvHoverDelayMS, "10")
		t.Setenv(EnvLogLevel, "debug")
		t.Setenv(EnvLogFile, "")

		cfg, err := Resolve(dir)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if cfg.HoverDelay() != 10*time.Millisecond {
			t.Errorf("HoverDelay: got %v, want 10ms", cfg.HoverDelay())
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("LogLevel: got %q, want debug", cfg.LogLevel)
		}
	})

	t.Run("file used without env", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, []byte(`{"hover_delay_ms": 200}`))
		t.Setenv(EnvHoverDelayMS, "")
		t.Setenv(EnvLogLevel, "")
		t.Setenv(EnvLogFile, "")

		cfg, err := Resolve(dir)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if cfg.HoverDelay() != 200*time.Millisecond {
			t.Errorf("HoverDelay: got %v, want 200ms", cfg.HoverDelay())
		}
	})

	t.Run("bad env value", func(t *testing.T) {
		t.Setenv(EnvHoverDelayMS, "soon")

		_, err := Resolve(t.TempDir())
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Resolve error = %v, want *ValidationError", err)
		}
	})

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv(EnvHoverDelayMS, "")
		t.Setenv(EnvLogLevel, "loud")

		if _, err := Resolve(t.TempDir()); err == nil {
			t.Error("Resolve should reject an unknown log level")
		}
	})
}

func TestPermissionErrors(t *testing.T) {
	// Skip on CI or if running as root
	if os.Getuid() == 0 {
		t.Skip("skipping permission tests when running as root")
	}

	t.Run("unreadable config file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, []byte("{}"))

		configPath := Path(dir)
		if err := os.Chmod(configPath, 0000); err != nil {
			t.Fatalf("chmod failed: %v", err)
		}
		defer os.Chmod(configPath, 0644) // Restore for cleanup

		if _, err := Load(dir); err == nil {
			t.Error("Load should fail for unreadable file")
		}
	})

	t.Run("unwritable directory", func(t *testing.T) {
		dir := t.TempDir()
		configDir := filepath.Join(dir, ".disclose")
		if err := os.MkdirAll(configDir, 0755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}

		if err := os.Chmod(configDir, 0555); err != nil {
			t.Fatalf("chmod failed: %v", err)
		}
		defer os.Chmod(configDir, 0755) // Restore for cleanup

		if err := SetHoverDelay(dir, 10); err == nil {
			t.Error("Save should fail for unwritable directory")
		}
	})
}
