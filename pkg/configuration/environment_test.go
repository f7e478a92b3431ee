package configuration

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnv_FallsBackToGoModRoot(t *testing.T) {
	tmp := t.TempDir()

	requireWriteFile(t, filepath.Join(tmp, "go.mod"), "module example.com/test\n\ngo 1.22\n")
	requireWriteFile(t, filepath.Join(tmp, ".env.local"), "ENTITY_REGISTRY_TEST_ENV_LOAD=ok\n")

	sub := filepath.Join(tmp, "pkg", "composables")
	requireMkdirAll(t, sub)

	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(sub); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	_ = os.Unsetenv("ENTITY_REGISTRY_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{".env", ".env.local"})
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 env file loaded, got %d", n)
	}
	if got := os.Getenv("ENTITY_REGISTRY_TEST_ENV_LOAD"); got != "ok" {
		t.Fatalf("expected env var loaded from repo root, got %q", got)
	}
}

func TestRateLimitOptions_Validate(t *testing.T) {
	valid := RateLimitOptions{Enabled: true, GlobalRPS: 100, Storage: "memory"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid options, got %v", err)
	}

	negative := RateLimitOptions{GlobalRPS: -1, Storage: "memory"}
	if err := negative.Validate(); err == nil {
		t.Fatal("expected error for negative RPS")
	}

	badStorage := RateLimitOptions{GlobalRPS: 10, Storage: "dynamo"}
	if err := badStorage.Validate(); err == nil {
		t.Fatal("expected error for unknown storage")
	}

	redisNoURL := RateLimitOptions{GlobalRPS: 10, Storage: "redis"}
	if err := redisNoURL.Validate(); err == nil {
		t.Fatal("expected error for redis storage without URL")
	}
}

func TestDatabaseOptions_ConnectionString(t *testing.T) {
	opts := DatabaseOptions{
		Name:     "entity_registry",
		Host:     "db.internal",
		Port:     "5433",
		User:     "registry",
		Password: "secret",
	}
	want := "host=db.internal port=5433 user=registry dbname=entity_registry password=secret sslmode=disable"
	if got := opts.ConnectionString(); got != want {
		t.Fatalf("unexpected connection string: %q", got)
	}
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func requireMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}
