package cliparse

import (
	"testing"
	"time"
)

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 3001 {
		t.Errorf("Expected default port 3001, got %d", cfg.Port)
	}
	if cfg.ClientOrigin != "http://localhost:5173" {
		t.Errorf("Unexpected default origin %q", cfg.ClientOrigin)
	}
	if cfg.AudienceCap != DefaultAudienceCap {
		t.Errorf("Expected default cap %d, got %d", DefaultAudienceCap, cfg.AudienceCap)
	}
	if cfg.QuizTimeout != 5*time.Second {
		t.Errorf("Expected default quiz timeout 5s, got %v", cfg.QuizTimeout)
	}
	if cfg.EnableHMAC || cfg.EnableRateLimit {
		t.Error("Hardening switches should be off by default")
	}
}

func TestParseFlagsOverrides(t *testing.T) {
	cfg, err := ParseFlags([]string{"-p", "8080", "-origin", "https://example.com", "-cap", "10", "-quiz-timeout", "2s"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Port)
	}
	if cfg.ClientOrigin != "https://example.com" {
		t.Errorf("Expected overridden origin, got %q", cfg.ClientOrigin)
	}
	if cfg.AudienceCap != 10 {
		t.Errorf("Expected cap 10, got %d", cfg.AudienceCap)
	}
	if cfg.QuizTimeout != 2*time.Second {
		t.Errorf("Expected quiz timeout 2s, got %v", cfg.QuizTimeout)
	}
}

func TestParseFlagsEnvFallback(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("CLIENT_ORIGIN", "https://env.example.com")
	t.Setenv("ATA_AUDIENCE_CAP", "20")
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon-key")
	t.Setenv("ATA_ENABLE_RATE_LIMIT", "true")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 4000 {
		t.Errorf("Expected env port 4000, got %d", cfg.Port)
	}
	if cfg.ClientOrigin != "https://env.example.com" {
		t.Errorf("Expected env origin, got %q", cfg.ClientOrigin)
	}
	if cfg.AudienceCap != 20 {
		t.Errorf("Expected env cap 20, got %d", cfg.AudienceCap)
	}
	if cfg.SupabaseURL != "https://proj.supabase.co" || cfg.SupabaseAnonKey != "anon-key" {
		t.Error("Supabase env variables not picked up")
	}
	if !cfg.EnableRateLimit {
		t.Error("Expected rate limit enabled from env")
	}
	if cfg.EnableHMAC {
		t.Error("HMAC should stay disabled")
	}
}

func TestParseFlagsInvalidEnv(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	if _, err := ParseFlags(nil); err == nil {
		t.Error("Expected error for invalid PORT")
	}
}

func TestParseFlagsInvalidCap(t *testing.T) {
	t.Setenv("ATA_AUDIENCE_CAP", "-5")
	if _, err := ParseFlags(nil); err == nil {
		t.Error("Expected error for negative audience cap")
	}
}
