// Package config loads and validates the daemon's YAML configuration.
// Secrets may be supplied through the environment instead of the file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Device DeviceConfig `yaml:"device"`
	Wifi   WifiConfig   `yaml:"wifi"`
	Notify NotifyConfig `yaml:"notify"`
}

// DeviceConfig names the GPIO hardware.
type DeviceConfig struct {
	Chip      string `yaml:"chip"`
	ButtonPin int    `yaml:"button_pin"`
	LEDPin    int    `yaml:"led_pin"`
	// SettleMs is the button debounce settle interval.
	SettleMs int `yaml:"settle_ms"`
}

// WifiConfig holds the wireless client configuration.
type WifiConfig struct {
	Interface string `yaml:"interface"`
	SSID      string `yaml:"ssid"`
	Password  string `yaml:"password"`
	// Manage enables the nmcli-backed connection supervisor. Disable it
	// when something else owns the link and only the IP watcher is wanted.
	Manage bool `yaml:"manage"`
}

// NotifyConfig selects and configures the notification transport.
type NotifyConfig struct {
	// Transport is "telegram" or "mqtt".
	Transport string `yaml:"transport"`
	// Message is the text sent per button click.
	Message string `yaml:"message"`
	// QueueCapacity bounds the outbound mailbox.
	QueueCapacity int `yaml:"queue_capacity"`
	// MaxAgeMs drops messages older than this at delivery time; 0 keeps
	// every accepted message until the link comes back.
	MaxAgeMs int `yaml:"max_age_ms"`

	Telegram TelegramConfig `yaml:"telegram"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
}

// TelegramConfig holds bot API settings.
type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID string `yaml:"chat_id"`
}

// MQTTConfig holds broker settings.
type MQTTConfig struct {
	Broker   string `yaml:"broker"`
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
}

// Environment variable names recognized as overrides for secrets.
const (
	envSSID     = "WIFI_SSID"
	envPassword = "WIFI_PASS"
	envToken    = "TELEGRAM_BOT_TOKEN"
	envChatID   = "TELEGRAM_SEND_TO"
)

// Load reads, overrides, defaults, and validates the configuration.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overrides secrets from the environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv(envSSID); v != "" {
		cfg.Wifi.SSID = v
	}
	if v := os.Getenv(envPassword); v != "" {
		cfg.Wifi.Password = v
	}
	if v := os.Getenv(envToken); v != "" {
		cfg.Notify.Telegram.Token = v
	}
	if v := os.Getenv(envChatID); v != "" {
		cfg.Notify.Telegram.ChatID = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Device.Chip == "" {
		cfg.Device.Chip = "gpiochip0"
	}
	if cfg.Device.SettleMs <= 0 {
		cfg.Device.SettleMs = 20
	}
	if cfg.Wifi.Interface == "" {
		cfg.Wifi.Interface = "wlan0"
	}
	if cfg.Notify.Transport == "" {
		cfg.Notify.Transport = "telegram"
	}
	if cfg.Notify.Message == "" {
		cfg.Notify.Message = "button pressed"
	}
	if cfg.Notify.QueueCapacity <= 0 {
		cfg.Notify.QueueCapacity = 8
	}
}

// Validate checks configuration correctness. It does not mutate.
func Validate(cfg *Config) error {
	if cfg.Device.ButtonPin == cfg.Device.LEDPin {
		return fmt.Errorf("button_pin and led_pin must differ (both %d)", cfg.Device.ButtonPin)
	}
	if cfg.Device.ButtonPin < 0 || cfg.Device.LEDPin < 0 {
		return fmt.Errorf("pins must be non-negative")
	}
	if cfg.Wifi.Manage && cfg.Wifi.SSID == "" {
		return fmt.Errorf("wifi.ssid is required when wifi.manage is set (or set %s)", envSSID)
	}
	if cfg.Notify.MaxAgeMs < 0 {
		return fmt.Errorf("notify.max_age_ms must be >= 0")
	}

	switch cfg.Notify.Transport {
	case "telegram":
		if cfg.Notify.Telegram.Token == "" || cfg.Notify.Telegram.ChatID == "" {
			return fmt.Errorf("telegram token and chat_id are required (or set %s / %s)", envToken, envChatID)
		}
	case "mqtt":
		if cfg.Notify.MQTT.Broker == "" {
			return fmt.Errorf("mqtt.broker is required")
		}
	default:
		return fmt.Errorf("unknown notify.transport %q (want telegram or mqtt)", cfg.Notify.Transport)
	}
	return nil
}
