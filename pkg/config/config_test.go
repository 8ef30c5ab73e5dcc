package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Set test environment variables
	t.Setenv("PORT", "8080")
	t.Setenv("SUBSCRIBERS_FILE", "data/subs.json")
	t.Setenv("STATIC_DIR", "public")
	t.Setenv("EMAIL_ENABLED", "true")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_USER", "mailer@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("FROM_NAME", "Daily News")
	t.Setenv("LANDING_PAGE_URL", "https://news.example.com")

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Assertions
	assert.NotNil(t, cfg)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "data/subs.json", cfg.SubscribersFile)
	assert.Equal(t, "public", cfg.StaticDir)
	assert.False(t, cfg.Serverless)
	assert.Equal(t, StorageFileBased, cfg.StorageLabel())
	assert.Equal(t, "smtp.example.com", cfg.Mail.Host)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Equal(t, "Daily News", cfg.Mail.FromName)
	// FROM_EMAIL falls back to the SMTP user
	assert.Equal(t, "mailer@example.com", cfg.Mail.FromAddr)
	assert.True(t, cfg.Mail.Enabled())
	assert.Equal(t, "https://news.example.com", cfg.LandingPageURL)
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "SUBSCRIBERS_FILE", "VERCEL", "EMAIL_ENABLED", "SMTP_HOST", "FROM_NAME", "LANDING_PAGE_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.Equal(t, "subscribers.json", cfg.SubscribersFile)
	assert.Equal(t, "Non-QM News", cfg.Mail.FromName)
	assert.Equal(t, "http://localhost:3000", cfg.LandingPageURL)
	assert.False(t, cfg.Mail.Enabled())
}

func TestLoadConfig_Serverless(t *testing.T) {
	t.Setenv("VERCEL", "1")
	t.Setenv("SUBSCRIBERS_FILE", "ignored.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.True(t, cfg.Serverless)
	assert.Equal(t, filepath.Join(os.TempDir(), "subscribers.json"), cfg.SubscribersFile)
	assert.Equal(t, StorageVercelTmp, cfg.StorageLabel())
}

func TestMailConfig_Enabled(t *testing.T) {
	complete := MailConfig{Flag: true, Host: "smtp.example.com", Port: 465, User: "u", Password: "p"}
	assert.True(t, complete.Enabled())

	tests := []struct {
		name   string
		mutate func(*MailConfig)
	}{
		{"flag off", func(m *MailConfig) { m.Flag = false }},
		{"missing host", func(m *MailConfig) { m.Host = "" }},
		{"missing port", func(m *MailConfig) { m.Port = 0 }},
		{"missing user", func(m *MailConfig) { m.User = "" }},
		{"missing password", func(m *MailConfig) { m.Password = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := complete
			tt.mutate(&m)
			assert.False(t, m.Enabled())
		})
	}
}

func TestLoadConfig_InvalidSMTPPort(t *testing.T) {
	t.Setenv("EMAIL_ENABLED", "true")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "not-a-port")
	t.Setenv("SMTP_USER", "u")
	t.Setenv("SMTP_PASS", "p")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, 0, cfg.Mail.Port)
	assert.False(t, cfg.Mail.Enabled())
}

func TestLoadConfig_EmailEnabledIsExactMatch(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("SMTP_USER", "u")
	t.Setenv("SMTP_PASS", "p")

	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"TRUE", false},
		{"True", false},
		{"1", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("EMAIL_ENABLED", tt.value)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Failed to load config: %v", err)
			}
			assert.Equal(t, tt.want, cfg.Mail.Flag)
			assert.Equal(t, tt.want, cfg.Mail.Enabled())
		})
	}
}
