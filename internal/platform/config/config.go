package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Document store
	StoreBaseURL     string
	StoreAPIKey      string
	StoreTimeout     time.Duration
	LedgerDocumentID string
	RosterDocumentID string

	// Auth
	JWTSecret          string
	JWTExpiryDuration  time.Duration
	JWTIssuer          string
	ClubPasswordHash   string
	AdminID            string
	FundManagerID      string
	MatchFundManagerID string
	LoginRateLimit     string

	// Ledger policy
	PenaltyPerDay decimal.Decimal
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORE_BASE_URL", "http://localhost:9090")
	viper.SetDefault("STORE_API_KEY", "")
	viper.SetDefault("STORE_TIMEOUT", "10s")
	viper.SetDefault("LEDGER_DOCUMENT_ID", "club-ledger")
	viper.SetDefault("ROSTER_DOCUMENT_ID", "club-roster")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "club-funds-app")
	viper.SetDefault("CLUB_PASSWORD_HASH", "")
	viper.SetDefault("ADMIN_ID", "")
	viper.SetDefault("FUND_MANAGER_ID", "")
	viper.SetDefault("MATCH_FUND_MANAGER_ID", "")
	viper.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	viper.SetDefault("PENALTY_PER_DAY", "10")

	viper.AutomaticEnv()

	cfg := &Config{}
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.StoreBaseURL = viper.GetString("STORE_BASE_URL")
	cfg.StoreAPIKey = viper.GetString("STORE_API_KEY")
	if cfg.StoreAPIKey == "" {
		log.Println("Warning: STORE_API_KEY environment variable not set.")
	}
	storeTimeout, err := time.ParseDuration(viper.GetString("STORE_TIMEOUT"))
	if err != nil {
		storeTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for STORE_TIMEOUT. Defaulting to %s.\n", storeTimeout)
	}
	cfg.StoreTimeout = storeTimeout
	cfg.LedgerDocumentID = viper.GetString("LEDGER_DOCUMENT_ID")
	cfg.RosterDocumentID = viper.GetString("ROSTER_DOCUMENT_ID")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	jwtExpiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		jwtExpiry = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION. Defaulting to %s.\n", jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.ClubPasswordHash = viper.GetString("CLUB_PASSWORD_HASH")
	if cfg.ClubPasswordHash == "" {
		log.Println("Warning: CLUB_PASSWORD_HASH environment variable not set. Logins will fail.")
	}
	cfg.AdminID = viper.GetString("ADMIN_ID")
	cfg.FundManagerID = viper.GetString("FUND_MANAGER_ID")
	cfg.MatchFundManagerID = viper.GetString("MATCH_FUND_MANAGER_ID")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	penaltyPerDay, err := decimal.NewFromString(viper.GetString("PENALTY_PER_DAY"))
	if err != nil || penaltyPerDay.IsNegative() {
		return nil, fmt.Errorf("invalid PENALTY_PER_DAY %q: must be a non-negative decimal", viper.GetString("PENALTY_PER_DAY"))
	}
	cfg.PenaltyPerDay = penaltyPerDay

	return cfg, nil
}
