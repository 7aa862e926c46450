package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8000"`
	Env       string        `env:"ENV,        default=development"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	JWTSecret string        `env:"JWT_SECRET"`
	JWTExpiry time.Duration `env:"JWT_EXPIRE, default=168h"`

	// AllowedOrigins is a comma-separated list of browser origins permitted
	// by CORS.
	AllowedOrigins string `env:"ALLOWED_ORIGINS, default=http://localhost:3000"`

	Mongo  MongoConfig
	Redis  RedisConfig
	SMTP   SMTPConfig
	Twilio TwilioConfig

	// AdminEmail receives new-consultation notifications.
	AdminEmail string `env:"ADMIN_EMAIL, default=admin@addisco.com"`
	// AdminWhatsApp, when set, receives a WhatsApp ping per submission.
	AdminWhatsApp string `env:"ADMIN_WHATSAPP"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=addisco"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SMTPConfig configures the email channel. User and Pass empty means email is
// not configured and sends are skipped.
type SMTPConfig struct {
	Host string `env:"SMTP_HOST, default=smtp.gmail.com"`
	Port int    `env:"SMTP_PORT, default=587"`
	User string `env:"SMTP_USER"`
	Pass string `env:"SMTP_PASS"`
}

// TwilioConfig configures the WhatsApp channel. Empty credentials mean the
// channel is not configured and sends are skipped.
type TwilioConfig struct {
	AccountSID   string `env:"TWILIO_ACCOUNT_SID"`
	AuthToken    string `env:"TWILIO_AUTH_TOKEN"`
	WhatsAppFrom string `env:"TWILIO_WHATSAPP_FROM"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Origins splits AllowedOrigins into a trimmed slice.
func (c *Config) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// IsDevelopment reports whether the process runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
