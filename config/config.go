package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	YouTubeAPIKey string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	ApifyActorID string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	SheetsCredentialsFile string
	SheetID               string
	SheetTabName          string

	CSVOutputPath string

	Run RunConfig
}

// RunConfig is the per-run surface: supplied once at run start and
// read-only thereafter.
type RunConfig struct {
	Keywords         []string
	AllowedCountries []string
	MinSubscribers   int64
	MaxSubscribers   int64
	MaxPerKeyword    int

	// ApifyToken is the email-scraper credential. Empty switches the
	// email resolver to the browser fallback scraper.
	ApifyToken string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		YouTubeAPIKey: getEnv("YOUTUBE_API_KEY", ""),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		ApifyActorID: getEnv("APIFY_ACTOR_ID", "exporter24~youtube-email-scraper"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "leadgen"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "leadgen123"),
		PostgresDB:       getEnv("POSTGRES_DB", "leadgen_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		SheetsCredentialsFile: getEnv("GOOGLE_SHEETS_CREDENTIALS_FILE", "credentials.json"),
		SheetID:               getEnv("GOOGLE_SHEET_ID", ""),
		SheetTabName:          getEnv("GOOGLE_SHEET_TAB_NAME", "Instantly"),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", ""),

		Run: RunConfig{
			Keywords: getEnvList("SEARCH_KEYWORDS",
				"amazon fba, etsy coaching, shopify dropshipping, digital marketing agency, AI automation agency"),
			AllowedCountries: getEnvList("ALLOWED_COUNTRIES", "US, UK, CA, DE, AU"),
			MinSubscribers:   getEnvInt64("MIN_SUBSCRIBERS", 1000),
			MaxSubscribers:   getEnvInt64("MAX_SUBSCRIBERS", 500000),
			MaxPerKeyword:    getEnvInt("MAX_CHANNELS_PER_KEYWORD", 10),
			ApifyToken:       getEnv("APIFY_API_TOKEN", ""),
		},
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// Validate checks the run configuration once at run start.
func (r *RunConfig) Validate() error {
	if len(r.Keywords) == 0 {
		return fmt.Errorf("run config: at least one search keyword is required")
	}
	if len(r.AllowedCountries) == 0 {
		return fmt.Errorf("run config: allowed-country list is empty")
	}
	if r.MinSubscribers < 0 {
		return fmt.Errorf("run config: min subscribers must not be negative, got %d", r.MinSubscribers)
	}
	if r.MaxSubscribers < r.MinSubscribers {
		return fmt.Errorf("run config: subscriber bounds inverted: [%d, %d]",
			r.MinSubscribers, r.MaxSubscribers)
	}
	if r.MaxPerKeyword < 1 {
		return fmt.Errorf("run config: per-keyword channel cap must be at least 1, got %d", r.MaxPerKeyword)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.ParseInt(val, 10, 64)
		if err == nil {
			return n
		}
	}
	return fallback
}

// getEnvList splits a comma-separated env var into trimmed, non-empty items.
func getEnvList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
