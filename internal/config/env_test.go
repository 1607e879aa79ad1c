package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("ROCKET_TEST_VALUE", "abc")
	if got := GetEnv("ROCKET_TEST_VALUE", "x"); got != "abc" {
		t.Fatalf("GetEnv = %q, want abc", got)
	}
	if got := GetEnv("ROCKET_TEST_UNSET", "x"); got != "x" {
		t.Fatalf("GetEnv fallback = %q, want x", got)
	}
}

func TestGetEnvEmptyIsSet(t *testing.T) {
	t.Setenv("ROCKET_TEST_EMPTY", "")
	if got := GetEnv("ROCKET_TEST_EMPTY", "x"); got != "" {
		t.Fatalf("GetEnv = %q, want empty string", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("ROCKET_TEST_INT", "42")
	t.Setenv("ROCKET_TEST_BAD_INT", "forty")
	if got := GetEnvInt("ROCKET_TEST_INT", 1); got != 42 {
		t.Fatalf("GetEnvInt = %d, want 42", got)
	}
	if got := GetEnvInt("ROCKET_TEST_BAD_INT", 1); got != 1 {
		t.Fatalf("GetEnvInt malformed = %d, want fallback 1", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"500ms", 500 * time.Millisecond},
		{"3s", 3 * time.Second},
		{"soon", 2 * time.Second},
		{"-1s", 2 * time.Second},
		{"0s", 2 * time.Second},
	}
	for _, tt := range tests {
		t.Setenv("ROCKET_TEST_DURATION", tt.value)
		if got := GetEnvDuration("ROCKET_TEST_DURATION", 2*time.Second); got != tt.want {
			t.Errorf("GetEnvDuration(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("ROCKET_TEST_DOTENV=from-file\nROCKET_TEST_PRESET=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ROCKET_TEST_PRESET", "from-env")
	t.Cleanup(func() { os.Unsetenv("ROCKET_TEST_DOTENV") })

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("ROCKET_TEST_DOTENV"); got != "from-file" {
		t.Fatalf("ROCKET_TEST_DOTENV = %q, want from-file", got)
	}
	if got := os.Getenv("ROCKET_TEST_PRESET"); got != "from-env" {
		t.Fatalf("preset variable overridden: %q", got)
	}
}
