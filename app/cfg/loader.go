package cfg

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// FreshRSS configuration
	BaseURL     string `long:"base-url" env:"FRESHRSS_BASE_URL" description:"FreshRSS base URL (e.g., https://rss.example.com)"`
	Username    string `long:"username" env:"FRESHRSS_USERNAME" description:"FreshRSS username"`
	APIPassword string `long:"api-password" env:"FRESHRSS_API_PASSWORD" description:"FreshRSS API password"`
	Label       string `long:"label" env:"FRESHRSS_LABEL" description:"Restrict items to a FreshRSS label (optional)"`

	// Direct feed sources
	FeedURLs []string `long:"feed-url" env:"FEED_URLS" env-delim:"," description:"Fetch directly from an RSS/Atom feed instead of (or in addition to) FreshRSS; repeatable"`

	// Fetch window
	LookbackHours float64 `long:"hours" env:"LOOKBACK_HOURS" default:"24" description:"Lookback window in hours"`
	MaxItems      int     `long:"max-items" env:"MAX_ITEMS" default:"1000" description:"Maximum number of items to request"`
	Timeout       int     `long:"timeout" env:"FETCH_TIMEOUT" default:"30" description:"HTTP fetch timeout in seconds"`

	// Digest configuration
	ConfigPath string `long:"config" env:"DIGEST_CONFIG" default:"./digest.yml" description:"Path to the digest configuration file (clients, blocklist, sentiment words)"`
	Timezone   string `long:"timezone" env:"TIMEZONE" default:"Europe/London" description:"Timezone for report timestamps"`

	// Output
	DryRun   bool   `long:"dry-run" description:"Print the digest HTML to stdout instead of sending"`
	OPMLPath string `long:"opml" env:"OPML_PATH" description:"Write the matched coverage to an OPML file"`

	// Email delivery
	SMTPHost     string `long:"smtp-host" env:"SMTP_HOST" description:"SMTP server host"`
	SMTPPort     int    `long:"smtp-port" env:"SMTP_PORT" default:"587" description:"SMTP server port"`
	SMTPUsername string `long:"smtp-username" env:"SMTP_USERNAME" description:"SMTP username (optional)"`
	SMTPPassword string `long:"smtp-password" env:"SMTP_PASSWORD" description:"SMTP password (optional)"`
	SMTPUseTLS   string `long:"smtp-use-tls" env:"SMTP_USE_TLS" default:"true" description:"Use STARTTLS for SMTP (true/false)"`
	FromEmail    string `long:"from" env:"FROM_EMAIL" description:"Sender address for the digest email"`
	ToEmails     string `long:"to" env:"TO_EMAILS" description:"Comma-separated recipient addresses"`

	// Preview server
	Serve        bool   `long:"serve" description:"Run an HTTP preview server instead of a one-shot digest"`
	Port         string `long:"port" env:"PORT" default:"8080" description:"Preview server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the preview server (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Coverage Digest/1.0" description:"User agent string for HTTP requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		BaseURL:       strings.TrimRight(raw.BaseURL, "/"),
		Username:      raw.Username,
		APIPassword:   raw.APIPassword,
		Label:         raw.Label,
		FeedURLs:      raw.FeedURLs,
		LookbackHours: raw.LookbackHours,
		MaxItems:      raw.MaxItems,
		Timeout:       raw.Timeout,
		ConfigPath:    raw.ConfigPath,
		Timezone:      raw.Timezone,
		DryRun:        raw.DryRun,
		OPMLPath:      raw.OPMLPath,
		SMTPHost:      raw.SMTPHost,
		SMTPPort:      raw.SMTPPort,
		SMTPUsername:  raw.SMTPUsername,
		SMTPPassword:  raw.SMTPPassword,
		SMTPUseTLS:    parseBool(raw.SMTPUseTLS, true),
		FromEmail:     raw.FromEmail,
		ToEmails:      splitList(raw.ToEmails),
		Serve:         raw.Serve,
		Port:          raw.Port,
		APIAccessKey:  raw.APIAccessKey,
		UserAgent:     raw.UserAgent,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Cfg) error {
	if cfg.LookbackHours <= 0 {
		return fmt.Errorf("lookback window must be greater than zero, got %v", cfg.LookbackHours)
	}
	if cfg.MaxItems <= 0 {
		return fmt.Errorf("max items must be greater than zero, got %d", cfg.MaxItems)
	}

	if cfg.BaseURL == "" && len(cfg.FeedURLs) == 0 {
		return fmt.Errorf("either a FreshRSS base URL or at least one feed URL is required")
	}
	if cfg.BaseURL != "" {
		if cfg.Username == "" {
			return fmt.Errorf("FreshRSS username is required when a base URL is set")
		}
		if cfg.APIPassword == "" {
			return fmt.Errorf("FreshRSS API password is required when a base URL is set")
		}
	}

	if cfg.SendsEmail() {
		if cfg.SMTPHost == "" {
			return fmt.Errorf("SMTP host is required to send the digest (or use --dry-run, --opml or --serve)")
		}
		if cfg.FromEmail == "" {
			return fmt.Errorf("sender address is required to send the digest")
		}
		if len(cfg.ToEmails) == 0 {
			return fmt.Errorf("at least one recipient address is required to send the digest")
		}
	}

	return nil
}

// Location resolves the configured timezone, falling back to UTC on
// unknown zone names.
func (c *Cfg) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func parseBool(value string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func splitList(value string) []string {
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
