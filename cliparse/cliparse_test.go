// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "file:festival.db")
	os.Setenv("ACCESS_KEY_SALT", "test-salt")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.StoreType != StoreSQLite {
		t.Errorf("expected default store type sqlite, got %s", cfg.StoreType)
	}
	if cfg.SweepInterval != time.Second {
		t.Errorf("expected default sweep interval 1s, got %s", cfg.SweepInterval)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_MemoryStoreNeedsNoDatabase(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-t", "memory", "-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StoreType != StoreMemory {
		t.Errorf("expected store type memory, got %s", cfg.StoreType)
	}
}

func TestParseFlags_Validation(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	// Missing database URL for sqlite
	if _, err := ParseFlags([]string{"-salt", "s1"}); err == nil {
		t.Error("expected error when database URL missing")
	}

	// Missing salt
	if _, err := ParseFlags([]string{"-d", "file:test.db"}); err == nil {
		t.Error("expected error when ACCESS_KEY_SALT missing")
	}

	// Unknown store type
	if _, err := ParseFlags([]string{"-t", "mongo", "-d", "x", "-salt", "s1"}); err == nil {
		t.Error("expected error for unknown store type")
	}
}
