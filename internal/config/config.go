package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// defaultTokenDuration keeps sessions alive for a full shop day and then some.
const defaultTokenDuration = 24 * time.Hour

type Config struct {
	ServerPort string

	// DBPath is the SQLite database file, used unless DatabaseURL is set.
	DBPath string

	// DatabaseURL selects the PostgreSQL backend when non-empty.
	DatabaseURL string

	// JWTSecret signs session tokens.
	JWTSecret string

	// TokenDuration is how long session tokens stay valid.
	TokenDuration time.Duration

	// StrictTotals enables server-side recomputation of bill totals.
	// Off by default: the stock behavior persists client-declared amounts.
	StrictTotals bool
}

func Load() (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/khata.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	tokenDuration := defaultTokenDuration
	if v := os.Getenv("TOKEN_DURATION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_DURATION %q: %w", v, err)
		}
		tokenDuration = d
	}

	strictTotals := false
	if v := os.Getenv("STRICT_TOTALS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid STRICT_TOTALS %q: %w", v, err)
		}
		strictTotals = b
	}

	return &Config{
		ServerPort:    serverPort,
		DBPath:        dbPath,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     jwtSecret,
		TokenDuration: tokenDuration,
		StrictTotals:  strictTotals,
	}, nil
}
