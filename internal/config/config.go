package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	EMAIL_SENDGRID = "sendgrid"
	EMAIL_SMTP     = "smtp"
)

type Config struct {
	Address    string        `env:"ADDRESS"     envDefault:":8080"`
	DBURL      string        `env:"DB_URL,required"`
	PublicURL  string        `env:"PUBLIC_URL"  envDefault:"http://localhost:8080"`
	JWTSecret  string        `env:"JWT_SECRET,required"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	EmailProvider  string `env:"EMAIL_PROVIDER"`
	EmailFrom      string `env:"EMAIL_FROM"`
	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	SMTPHost       string `env:"SMTP_HOST"`
	SMTPPort       int    `env:"SMTP_PORT"     envDefault:"587"`
	SMTPUsername   string `env:"SMTP_USERNAME"`
	SMTPPassword   string `env:"SMTP_PASSWORD"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`

	DiscordToken     string `env:"DISCORD_TOKEN"`
	DiscordChannelID string `env:"DISCORD_CHANNEL_ID"`
	TelegramToken    string `env:"TELEGRAM_TOKEN"`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID"`

	// Empty allows any Google account to become the organizer.
	OrganizerEmails []string `env:"ORGANIZER_EMAILS" envSeparator:","`

	NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"10s"`
}

// Load reads the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads from the given variables instead of the process
// environment.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	cfg := Config{}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.EmailProvider = strings.ToLower(strings.TrimSpace(cfg.EmailProvider))

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.EmailProvider {
	case "":
	case EMAIL_SENDGRID:
		if c.SendGridAPIKey == "" || c.EmailFrom == "" {
			return errors.New("EMAIL_PROVIDER=sendgrid needs SENDGRID_API_KEY and EMAIL_FROM")
		}
	case EMAIL_SMTP:
		if c.SMTPHost == "" || c.EmailFrom == "" {
			return errors.New("EMAIL_PROVIDER=smtp needs SMTP_HOST and EMAIL_FROM")
		}
	default:
		return fmt.Errorf("unknown EMAIL_PROVIDER %q", c.EmailProvider)
	}

	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}

func (c Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func (c Config) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordChannelID != ""
}

func (c Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// RemoteDB reports whether DB_URL points at a libsql server rather than a
// local SQLite file.
func (c Config) RemoteDB() bool {
	return strings.HasPrefix(c.DBURL, "libsql://") || strings.HasPrefix(c.DBURL, "https://") || strings.HasPrefix(c.DBURL, "http://")
}
