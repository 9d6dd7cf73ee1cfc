package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

// DefaultAudienceCap bounds how many acks one session will issue. Soft cap
// around 30 participants, allow up to 35.
const DefaultAudienceCap = 35

type Config struct {
	Port         int
	ClientOrigin string
	AudienceCap  int

	// Quiz content store (Supabase PostgREST). Optional: when unset, quiz
	// loading reports the source as unavailable but everything else works.
	SupabaseURL     string
	SupabaseAnonKey string
	QuizTimeout     time.Duration

	// Hardening scaffolds, disabled by default.
	EnableHMAC      bool
	HMACSecret      string
	EnableRateLimit bool
}

// ParseFlags validates flags, falling back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("ask-the-audience", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.ClientOrigin, "origin", "", "Client origin for CORS and join links")
	fs.IntVar(&cfg.AudienceCap, "cap", 0, "Max audience members per session")
	fs.DurationVar(&cfg.QuizTimeout, "quiz-timeout", 0, "Timeout for quiz content lookups")

	// Quiz source (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SupabaseURL, "supabase-url", "", "Supabase project URL (prefer env)")
	fs.StringVar(&cfg.SupabaseAnonKey, "supabase-key", "", "Supabase anon key (prefer env)")

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
			cfg.Port = 3001 // default
		}
	}

	if cfg.ClientOrigin == "" {
		cfg.ClientOrigin = os.Getenv("CLIENT_ORIGIN")
	}
	if cfg.ClientOrigin == "" {
		cfg.ClientOrigin = "http://localhost:5173"
	}

	if cfg.AudienceCap == 0 {
		if capStr := os.Getenv("ATA_AUDIENCE_CAP"); capStr != "" {
			audCap, err := strconv.Atoi(capStr)
			if err != nil || audCap <= 0 {
				return Config{}, errors.New("invalid ATA_AUDIENCE_CAP env variable")
			}
			cfg.AudienceCap = audCap
		} else {
			cfg.AudienceCap = DefaultAudienceCap
		}
	}

	if cfg.SupabaseURL == "" {
		cfg.SupabaseURL = os.Getenv("SUPABASE_URL")
	}
	if cfg.SupabaseAnonKey == "" {
		cfg.SupabaseAnonKey = os.Getenv("SUPABASE_ANON_KEY")
	}

	if cfg.QuizTimeout == 0 {
		if d := os.Getenv("ATA_QUIZ_TIMEOUT"); d != "" {
			timeout, err := time.ParseDuration(d)
			if err != nil || timeout <= 0 {
				return Config{}, errors.New("invalid ATA_QUIZ_TIMEOUT env variable")
			}
			cfg.QuizTimeout = timeout
		} else {
			cfg.QuizTimeout = 5 * time.Second
		}
	}

	// Hardening switches are env-only; both off unless explicitly enabled.
	cfg.EnableHMAC = envBool("ATA_ENABLE_HMAC")
	cfg.HMACSecret = os.Getenv("ATA_HMAC_SECRET")
	cfg.EnableRateLimit = envBool("ATA_ENABLE_RATE_LIMIT")

	return cfg, nil
}

func envBool(key string) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "yes":
		return true
	}
	return false
}
