package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StorageFileBased = "file-based"
	StorageVercelTmp = "vercel-tmp"
)

type Config struct {
	// Server
	ServerPort string
	GinMode    string
	StaticDir  string

	// Storage
	SubscribersFile string
	Serverless      bool

	// Mail
	Mail MailConfig

	// Landing page (QR code generator)
	LandingPageURL string

	// AWS S3 (subscriber export)
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSEndpoint        string
	S3BucketName       string
	S3UseSSL           string
}

// MailConfig holds the SMTP transport parameters. The notifier is only
// built when Enabled reports true.
type MailConfig struct {
	Flag     bool
	Host     string
	Port     int
	User     string
	Password string
	FromName string
	FromAddr string
}

func (m MailConfig) Enabled() bool {
	return m.Flag && m.Host != "" && m.Port > 0 && m.User != "" && m.Password != ""
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	serverless := os.Getenv("VERCEL") == "1"
	subscribersFile := getEnv("SUBSCRIBERS_FILE", "subscribers.json")
	if serverless {
		subscribersFile = filepath.Join(os.TempDir(), "subscribers.json")
	}

	smtpUser := getEnv("SMTP_USER", "")
	config := &Config{
		ServerPort: getEnv("PORT", "3000"),
		GinMode:    getEnv("GIN_MODE", "release"),
		StaticDir:  getEnv("STATIC_DIR", "web"),

		SubscribersFile: subscribersFile,
		Serverless:      serverless,

		Mail: MailConfig{
			Flag:     getEnv("EMAIL_ENABLED", "false") == "true",
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 0),
			User:     smtpUser,
			Password: getEnv("SMTP_PASS", ""),
			FromName: getEnv("FROM_NAME", "Non-QM News"),
			FromAddr: getEnv("FROM_EMAIL", smtpUser),
		},

		LandingPageURL: getEnv("LANDING_PAGE_URL", "http://localhost:3000"),

		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpoint:        getEnv("AWS_ENDPOINT", ""),
		S3BucketName:       getEnv("S3_BUCKET_NAME", ""),
		S3UseSSL:           getEnv("S3_USE_SSL", "true"),
	}

	return config, nil
}

// StorageLabel is the storage description reported by the health check.
func (c *Config) StorageLabel() string {
	if c.Serverless {
		return StorageVercelTmp
	}
	return StorageFileBased
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
