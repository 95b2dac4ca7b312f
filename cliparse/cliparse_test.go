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
	os.Setenv("STORE_DRIVER", "postgres")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.StoreDriver != DriverPostgres {
		t.Errorf("expected postgres driver, got %s", cfg.StoreDriver)
	}
	if cfg.DatabaseURL != "postgres://test" {
		t.Errorf("expected postgres://test, got %s", cfg.DatabaseURL)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("STORE_DRIVER", "postgres")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-t", "sqlite", "-d", "file:test.db", "-jwt-secret", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.StoreDriver != DriverSQLite {
		t.Errorf("CLI should override env: expected sqlite, got %s", cfg.StoreDriver)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", cfg.Port)
	}
	if cfg.StoreDriver != DriverMemory {
		t.Errorf("expected default memory driver, got %s", cfg.StoreDriver)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Errorf("expected default one-week TTL, got %s", cfg.TokenTTL)
	}
}

func TestParseFlags_MissingSecret(t *testing.T) {
	os.Clearenv()

	if _, err := ParseFlags([]string{}); err == nil {
		t.Error("expected error when JWT_SECRET is missing")
	}
}

func TestParseFlags_DatabaseURLRequiredForExternalStores(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Clearenv()

	for _, driver := range []string{DriverPostgres, DriverSQLite, DriverMongo} {
		if _, err := ParseFlags([]string{"-t", driver}); err == nil {
			t.Errorf("expected error for driver %s without a database URL", driver)
		}
	}

	// memory needs no URL
	if _, err := ParseFlags([]string{"-t", DriverMemory}); err != nil {
		t.Errorf("memory driver should not require a database URL, got %v", err)
	}
}

func TestParseFlags_UnknownDriver(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Clearenv()

	if _, err := ParseFlags([]string{"-t", "cassandra"}); err == nil {
		t.Error("expected error for unknown store driver")
	}
}

func TestParseFlags_TokenTTL(t *testing.T) {
	os.Clearenv()
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("TOKEN_TTL_HOURS", "24")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected 24h TTL, got %s", cfg.TokenTTL)
	}
}
