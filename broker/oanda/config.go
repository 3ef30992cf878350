package oanda

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Credentials are the OANDA v20 API credentials, loaded from the
// environment. Missing credentials are fatal at construction time.
type Credentials struct {
	Token     string
	AccountID string
	Env       string // "practice" or "live"
}

// LoadCredentials reads OANDA_API_KEY, OANDA_ACCOUNT_ID and OANDA_ENV from
// the environment, after loading a .env file if one is present.
func LoadCredentials() (Credentials, error) {
	// A missing .env file is fine; the variables may be set directly.
	_ = godotenv.Load()

	creds := Credentials{
		Token:     os.Getenv("OANDA_API_KEY"),
		AccountID: os.Getenv("OANDA_ACCOUNT_ID"),
		Env:       os.Getenv("OANDA_ENV"),
	}
	if creds.Env == "" {
		creds.Env = "practice"
	}

	var missing []string
	if creds.Token == "" {
		missing = append(missing, "OANDA_API_KEY")
	}
	if creds.AccountID == "" {
		missing = append(missing, "OANDA_ACCOUNT_ID")
	}
	if len(missing) > 0 {
		return Credentials{}, fmt.Errorf("missing environment variables: %s", strings.Join(missing, ", "))
	}
	return creds, nil
}

// BaseURL maps an OANDA environment name to its REST endpoint.
func BaseURL(env string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "practice", "demo":
		return "https://api-fxpractice.oanda.com", nil
	case "live":
		return "https://api-fxtrade.oanda.com", nil
	default:
		return "", fmt.Errorf("unknown OANDA env %q (want practice|live)", env)
	}
}
