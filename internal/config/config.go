package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Required values are enforced by must(); the
// rest fall back to defaults suitable for local development.
type Config struct {
	Env             string // application environment (e.g. "dev", "prod")
	Port            string // HTTP port to listen on
	BaseURL         string // public base URL, used to build password reset links
	DBUser          string // database username
	DBPass          string // database password (optional)
	DBHost          string // database host address
	DBPort          string // database port number
	DBName          string // database name
	JWTSecret       string // secret used to sign API access tokens
	AccessTTLMin    int    // access token time-to-live in minutes
	SessionTTLHours int    // server-side session time-to-live in hours
	BcryptCost      int    // bcrypt cost for password hashing
	AdminCode       string // secret code that grants the admin flag at registration (optional)

	// Collaborator services. All optional: the matching feature answers
	// with a logged upstream error when unset.
	GeocoderURL  string // geocoding endpoint base URL
	GeocoderKey  string // geocoding API key
	ImageHostURL string // image host API base URL
	ImageHostKey string // image host API key
	PaymentURL   string // payment processor API base URL
	PaymentKey   string // payment processor secret key
	MailFrom     string // From address on outbound mail
	SMTPHost     string // SMTP relay host
	SMTPPort     string // SMTP relay port
	SMTPUser     string // SMTP username (optional)
	SMTPPass     string // SMTP password (optional)
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),
		Port:            must("APP_PORT"),
		BaseURL:         getenv("APP_BASE_URL", "http://localhost:8080"),
		DBUser:          must("DB_USER"),
		DBPass:          os.Getenv("DB_PASS"), // empty allowed
		DBHost:          must("DB_HOST"),
		DBPort:          must("DB_PORT"),
		DBName:          must("DB_NAME"),
		JWTSecret:       must("JWT_SECRET"),
		AccessTTLMin:    mustInt("ACCESS_TOKEN_TTL_MIN"),
		SessionTTLHours: envIntDef("SESSION_TTL_HOURS", 72),
		BcryptCost:      mustInt("BCRYPT_COST"),
		AdminCode:       os.Getenv("ADMIN_CODE"),

		GeocoderURL:  os.Getenv("GEOCODER_URL"),
		GeocoderKey:  os.Getenv("GEOCODER_API_KEY"),
		ImageHostURL: os.Getenv("IMAGE_HOST_URL"),
		ImageHostKey: os.Getenv("IMAGE_HOST_API_KEY"),
		PaymentURL:   getenv("PAYMENT_API_URL", "https://api.stripe.com/v1"),
		PaymentKey:   os.Getenv("PAYMENT_SECRET_KEY"),
		MailFrom:     getenv("MAIL_FROM", "no-reply@campora.local"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getenv("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPass:     os.Getenv("SMTP_PASS"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// envIntDef reads an optional integer variable, falling back to def when
// unset. A present but malformed value is still fatal.
func envIntDef(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
