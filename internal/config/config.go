package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pocket-ledger/backend/internal/notifications"
	"github.com/pocket-ledger/backend/internal/notifications/telegram"
	"github.com/pocket-ledger/backend/internal/reminders"
	"gopkg.in/yaml.v3"
)

var (
	ErrAPIURLMissing    = errors.New("the API URL must be set, either with the API_URL environment variable or apiUrl in the configuration file")
	ErrAPIURLInvalid    = errors.New("the API URL must be a valid absolute URL")
	ErrLogFormatInvalid = errors.New("the log format must be \"human\" or \"json\"")
	ErrGinModeInvalid   = errors.New("the gin mode must be \"debug\", \"release\" or \"test\"")
)

// Config is the configuration of the backend.
type Config struct {
	APIURL           string              `yaml:"apiUrl"`
	Port             int                 `yaml:"port"`
	DataDir          string              `yaml:"dataDir"`
	GinMode          string              `yaml:"ginMode"`
	LogFormat        string              `yaml:"logFormat"` // "human" or "json". Empty selects by gin mode
	CORSAllowOrigins []string            `yaml:"corsAllowOrigins"`
	EnablePprof      bool                `yaml:"enablePprof"`
	Reminders        RemindersConfig     `yaml:"reminders"`
	Notifications    NotificationsConfig `yaml:"notifications"`
}

// RemindersConfig controls when and how payment reminders are shown.
type RemindersConfig struct {
	LeadDays int    `yaml:"leadDays"`
	Hour     int    `yaml:"hour"`
	Minute   int    `yaml:"minute"`
	Timezone string `yaml:"timezone"` // IANA name, e.g. "America/Mexico_City". Empty means local time
	Locale   string `yaml:"locale"`   // BCP 47 tag, e.g. "es-MX"
	Currency string `yaml:"currency"` // ISO 4217 code, e.g. "MXN"
}

// NotificationsConfig controls the notification host.
type NotificationsConfig struct {
	notifications.Config `yaml:",inline"`

	Enabled  bool            `yaml:"enabled"`  // Answer to the permission request
	Buffer   int             `yaml:"buffer"`   // Capacity of the delivery channel
	Telegram telegram.Config `yaml:"telegram"` // Forward delivered reminders to a chat
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	policy := reminders.DefaultPolicy()

	return Config{
		Port:    8080,
		DataDir: "data",
		GinMode: "release",
		Reminders: RemindersConfig{
			LeadDays: policy.LeadDays,
			Hour:     policy.Hour,
			Minute:   policy.Minute,
			Locale:   "en",
			Currency: "USD",
		},
		Notifications: NotificationsConfig{
			Enabled: true,
			Buffer:  64,
			Config:  notifications.DefaultConfig(),
		},
	}
}

// Load reads the configuration file at path, if path is not empty, and
// applies environment variable overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// applyEnv overrides values with the environment variables that are set.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"API_URL":           &c.APIURL,
		"DATA_DIR":          &c.DataDir,
		"GIN_MODE":          &c.GinMode,
		"LOG_FORMAT":        &c.LogFormat,
		"REMINDER_TIMEZONE": &c.Reminders.Timezone,
		"REMINDER_LOCALE":   &c.Reminders.Locale,
		"REMINDER_CURRENCY": &c.Reminders.Currency,
		"TELEGRAM_TOKEN":    &c.Notifications.Telegram.Token,
	}
	for name, target := range strs {
		if v, ok := lookup(name); ok {
			*target = v
		}
	}

	ints := map[string]*int{
		"PORT":               &c.Port,
		"REMINDER_LEAD_DAYS": &c.Reminders.LeadDays,
		"REMINDER_HOUR":      &c.Reminders.Hour,
		"REMINDER_MINUTE":    &c.Reminders.Minute,
	}
	for name, target := range ints {
		if v, ok := lookup(name); ok {
			i, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("environment variable %s must be an integer: %w", name, err)
			}
			*target = i
		}
	}

	bools := map[string]*bool{
		"ENABLE_PPROF":          &c.EnablePprof,
		"NOTIFICATIONS_ENABLED": &c.Notifications.Enabled,
	}
	for name, target := range bools {
		if v, ok := lookup(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("environment variable %s must be a boolean: %w", name, err)
			}
			*target = b
		}
	}

	if v, ok := lookup("TELEGRAM_CHAT_ID"); ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("environment variable TELEGRAM_CHAT_ID must be an integer: %w", err)
		}
		c.Notifications.Telegram.ChatID = id
	}

	if v, ok := lookup("CORS_ALLOW_ORIGINS"); ok {
		c.CORSAllowOrigins = strings.Fields(v)
	}

	return nil
}

// URL parses and validates the API URL.
func (c Config) URL() (*url.URL, error) {
	if c.APIURL == "" {
		return nil, ErrAPIURLMissing
	}

	u, err := url.Parse(c.APIURL)
	if err != nil || !u.IsAbs() {
		return nil, ErrAPIURLInvalid
	}

	return u, nil
}

// Validate checks the configuration for values that cannot work.
func (c Config) Validate() error {
	if _, err := c.URL(); err != nil {
		return err
	}

	if err := c.ValidateLogging(); err != nil {
		return err
	}

	if _, err := c.Policy(); err != nil {
		return err
	}

	if _, err := c.Formatter(); err != nil {
		return err
	}

	if err := c.Notifications.Telegram.Validate(); err != nil {
		return err
	}

	return nil
}

// ValidateLogging checks the values that the log setup depends on.
func (c Config) ValidateLogging() error {
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return ErrGinModeInvalid
	}

	if c.LogFormat != "" && c.LogFormat != "human" && c.LogFormat != "json" {
		return ErrLogFormatInvalid
	}

	return nil
}

// Policy returns the reminder policy.
func (c Config) Policy() (reminders.Policy, error) {
	loc := time.Local
	if c.Reminders.Timezone != "" {
		l, err := time.LoadLocation(c.Reminders.Timezone)
		if err != nil {
			return reminders.Policy{}, fmt.Errorf("reminder timezone %q: %w", c.Reminders.Timezone, err)
		}
		loc = l
	}

	policy := reminders.Policy{
		LeadDays: c.Reminders.LeadDays,
		Hour:     c.Reminders.Hour,
		Minute:   c.Reminders.Minute,
		Location: loc,
	}

	return policy, policy.Validate()
}

// Formatter returns the formatter for reminder texts.
func (c Config) Formatter() (reminders.Formatter, error) {
	f, err := reminders.NewFormatter(c.Reminders.Locale, c.Reminders.Currency)
	if err != nil {
		return reminders.Formatter{}, fmt.Errorf("reminder locale %q or currency %q: %w", c.Reminders.Locale, c.Reminders.Currency, err)
	}

	return f, nil
}
