package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

// Store driver names accepted by -t / STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

type Config struct {
	Port        int
	StoreDriver string
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
}

// ParseFlags validates flags and fills in defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var ttlHours int

	fs := flag.NewFlagSet("pollbox", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.StoreDriver, "t", "", "Store driver (memory, postgres, sqlite or mongo)")
	fs.IntVar(&ttlHours, "token-ttl", 0, "Bearer token lifetime in hours")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "Token signing secret (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3000 // default
		}
	}

	if cfg.StoreDriver == "" {
		cfg.StoreDriver = os.Getenv("STORE_DRIVER")
		if cfg.StoreDriver == "" {
			cfg.StoreDriver = DriverMemory
		}
	}
	switch cfg.StoreDriver {
	case DriverMemory, DriverPostgres, DriverSQLite, DriverMongo:
	default:
		return Config{}, errors.New("unknown store driver: " + cfg.StoreDriver)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.StoreDriver != DriverMemory {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if ttlHours == 0 {
		if ttlStr := os.Getenv("TOKEN_TTL_HOURS"); ttlStr != "" {
			hours, err := strconv.Atoi(ttlStr)
			if err != nil {
				return Config{}, errors.New("invalid TOKEN_TTL_HOURS env variable")
			}
			ttlHours = hours
		}
	}
	if ttlHours <= 0 {
		ttlHours = 7 * 24 // default: one week
	}
	cfg.TokenTTL = time.Duration(ttlHours) * time.Hour

	return cfg, nil
}
