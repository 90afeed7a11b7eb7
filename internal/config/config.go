package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable.  The venue layout lives
// here because it is fixed for the process lifetime: every date and
// session shares the same grid.
type Config struct {
	Env         string // application environment (e.g. "dev", "prod")
	Port        string // HTTP port to listen on
	StoreDriver string // occupancy store driver: "mysql" or "memory"
	DBUser      string // database username
	DBPass      string // database password (optional)
	DBHost      string // database host address
	DBPort      string // database port number
	DBName      string // database name
	VenueRows   int    // number of seat rows in the venue
	SeatsPerRow int    // seats in each row
	CatalogFile string // optional JSON schedule file; empty uses the built-in schedule
}

// Load reads configuration values from environment variables and
// returns a Config.  Database variables are required only for the
// mysql store driver; the memory driver needs none.
func Load() Config {
	cfg := Config{
		Env:         must("APP_ENV"),
		Port:        must("APP_PORT"),
		StoreDriver: getenvDefault("STORE_DRIVER", "mysql"),
		VenueRows:   intDefault("VENUE_ROWS", 3),
		SeatsPerRow: intDefault("VENUE_SEATS_PER_ROW", 8),
		CatalogFile: os.Getenv("CATALOG_FILE"),
	}
	if cfg.StoreDriver != "mysql" && cfg.StoreDriver != "memory" {
		log.Fatalf("unsupported STORE_DRIVER: %q", cfg.StoreDriver)
	}
	if cfg.VenueRows < 1 || cfg.SeatsPerRow < 1 {
		log.Fatalf("venue layout must be positive: rows=%d seats=%d", cfg.VenueRows, cfg.SeatsPerRow)
	}
	if cfg.StoreDriver == "mysql" {
		cfg.DBUser = must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS") // empty allowed
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenvDefault returns the variable's value or a default when unset.
func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// intDefault reads an integer variable, falling back to a default when
// unset and exiting on malformed values.
func intDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
