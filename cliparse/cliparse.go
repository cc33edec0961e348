package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	OCRURL        string
	SubmitURL     string
	CandidatesURL string
	AgentKeySalt  string
}

// ParseFlags validates flags with environment fallback
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("fieldtally", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or sqlite file path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Collaborator endpoints
	fs.StringVar(&cfg.OCRURL, "ocr", "", "OCR recognition service URL")
	fs.StringVar(&cfg.SubmitURL, "submit", "", "Results submission endpoint URL")
	fs.StringVar(&cfg.CandidatesURL, "candidates", "", "Candidate source URL (optional)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AgentKeySalt, "agent-salt", "", "Agent key salt (prefer env)")

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
			cfg.Port = 4034 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "sqlite" {
			cfg.DatabaseURL = "fieldtally.db" // local capture DB next to the binary
		} else {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	}

	if cfg.OCRURL == "" {
		cfg.OCRURL = os.Getenv("OCR_URL")
	}
	if cfg.OCRURL == "" {
		return Config{}, errors.New("OCR service URL required (use -ocr or OCR_URL env)")
	}

	if cfg.SubmitURL == "" {
		cfg.SubmitURL = os.Getenv("SUBMIT_URL")
	}
	if cfg.SubmitURL == "" {
		return Config{}, errors.New("submission endpoint URL required (use -submit or SUBMIT_URL env)")
	}

	if cfg.CandidatesURL == "" {
		cfg.CandidatesURL = os.Getenv("CANDIDATES_URL")
	}

	// Secrets - MUST be provided
	if cfg.AgentKeySalt == "" {
		cfg.AgentKeySalt = os.Getenv("AGENT_KEY_SALT")
	}
	if cfg.AgentKeySalt == "" {
		return Config{}, errors.New("AGENT_KEY_SALT required")
	}

	return cfg, nil
}
