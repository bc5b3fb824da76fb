package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv keeps tests hermetic against ambient secrets.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{envSSID, envPassword, envToken, envChatID} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const minimalTelegram = `
device:
  button_pin: 9
  led_pin: 8
notify:
  telegram:
    token: "123:abc"
    chat_id: "42"
`

func TestLoadAppliesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, minimalTelegram))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Device.Chip != "gpiochip0" {
		t.Errorf("chip: got %q", cfg.Device.Chip)
	}
	if cfg.Device.SettleMs != 20 {
		t.Errorf("settle_ms: got %d, want 20", cfg.Device.SettleMs)
	}
	if cfg.Wifi.Interface != "wlan0" {
		t.Errorf("interface: got %q", cfg.Wifi.Interface)
	}
	if cfg.Notify.Transport != "telegram" {
		t.Errorf("transport: got %q", cfg.Notify.Transport)
	}
	if cfg.Notify.Message != "button pressed" {
		t.Errorf("message: got %q", cfg.Notify.Message)
	}
	if cfg.Notify.QueueCapacity != 8 {
		t.Errorf("queue_capacity: got %d, want 8", cfg.Notify.QueueCapacity)
	}
}

func TestLoadExplicitValues(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, `
device:
  chip: gpiochip1
  button_pin: 17
  led_pin: 27
  settle_ms: 35
wifi:
  interface: wlp2s0
  ssid: lab
  password: hunter2
  manage: true
notify:
  transport: mqtt
  message: "doorbell"
  queue_capacity: 16
  max_age_ms: 60000
  mqtt:
    broker: tcp://broker.local:1883
    topic: home/doorbell
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Device.Chip != "gpiochip1" || cfg.Device.ButtonPin != 17 || cfg.Device.LEDPin != 27 {
		t.Errorf("device: got %+v", cfg.Device)
	}
	if !cfg.Wifi.Manage || cfg.Wifi.SSID != "lab" {
		t.Errorf("wifi: got %+v", cfg.Wifi)
	}
	if cfg.Notify.MQTT.Broker != "tcp://broker.local:1883" {
		t.Errorf("broker: got %q", cfg.Notify.MQTT.Broker)
	}
	if cfg.Notify.MaxAgeMs != 60000 {
		t.Errorf("max_age_ms: got %d", cfg.Notify.MaxAgeMs)
	}
}

func TestEnvOverridesSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv(envToken, "999:zzz")
	t.Setenv(envChatID, "777")
	t.Setenv(envSSID, "env-net")
	t.Setenv(envPassword, "env-pass")

	cfg, err := Load(writeConfig(t, `
device:
  button_pin: 9
  led_pin: 8
wifi:
  ssid: file-net
notify:
  telegram:
    token: "file-token"
    chat_id: "file-chat"
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Notify.Telegram.Token != "999:zzz" || cfg.Notify.Telegram.ChatID != "777" {
		t.Errorf("telegram: got %+v, want env values", cfg.Notify.Telegram)
	}
	if cfg.Wifi.SSID != "env-net" || cfg.Wifi.Password != "env-pass" {
		t.Errorf("wifi: got %+v, want env values", cfg.Wifi)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadBadYAML(t *testing.T) {
	clearEnv(t)
	if _, err := Load(writeConfig(t, "device: [not a map")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestValidateRejections(t *testing.T) {
	clearEnv(t)
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "same pins",
			body: `
device:
  button_pin: 9
  led_pin: 9
notify:
  telegram: {token: "t", chat_id: "c"}
`,
			want: "must differ",
		},
		{
			name: "negative pin",
			body: `
device:
  button_pin: -1
  led_pin: 8
notify:
  telegram: {token: "t", chat_id: "c"}
`,
			want: "non-negative",
		},
		{
			name: "manage without ssid",
			body: `
device: {button_pin: 9, led_pin: 8}
wifi: {manage: true}
notify:
  telegram: {token: "t", chat_id: "c"}
`,
			want: "wifi.ssid",
		},
		{
			name: "telegram missing credentials",
			body: `
device: {button_pin: 9, led_pin: 8}
`,
			want: "telegram token",
		},
		{
			name: "mqtt missing broker",
			body: `
device: {button_pin: 9, led_pin: 8}
notify:
  transport: mqtt
`,
			want: "mqtt.broker",
		},
		{
			name: "unknown transport",
			body: `
device: {button_pin: 9, led_pin: 8}
notify:
  transport: carrier-pigeon
`,
			want: "unknown notify.transport",
		},
		{
			name: "negative max age",
			body: `
device: {button_pin: 9, led_pin: 8}
notify:
  max_age_ms: -5
  telegram: {token: "t", chat_id: "c"}
`,
			want: "max_age_ms",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}
