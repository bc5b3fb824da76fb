package web

import (
	"encoding/json"
	"time"

	"github.com/sweeney/button-notify/internal/status"
)

// StatusJSON is the JSON representation of the daemon status.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Indicator     string     `json:"indicator"`
	Wifi          string     `json:"wifi"`
	Link          LinkJSON   `json:"link"`
	Counts        CountsJSON `json:"counts"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	Config        ConfigJSON `json:"config"`
}

// LinkJSON reports IP-layer state.
type LinkJSON struct {
	Up bool   `json:"up"`
	IP string `json:"ip,omitempty"`
}

// CountsJSON is the JSON representation of message counts.
type CountsJSON struct {
	Clicks    int `json:"clicks"`
	Enqueued  int `json:"enqueued"`
	Dropped   int `json:"dropped"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	ButtonPin int    `json:"button_pin"`
	LEDPin    int    `json:"led_pin"`
	Interface string `json:"interface"`
	Transport string `json:"transport"`
	QueueCap  int    `json:"queue_capacity"`
	HTTPAddr  string `json:"http_addr"`
}

func formatJSON(snap status.Snapshot) []byte {
	sj := StatusJSON{
		Status: StatusInner{
			Indicator: snap.Indicator.String(),
			Wifi:      snap.Wifi.String(),
			Link: LinkJSON{
				Up: snap.LinkUp,
				IP: snap.LinkIP,
			},
			Counts: CountsJSON{
				Clicks:    snap.Counts.Clicks,
				Enqueued:  snap.Counts.Enqueued,
				Dropped:   snap.Counts.Dropped,
				Delivered: snap.Counts.Delivered,
				Failed:    snap.Counts.Failed,
			},
			UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
			StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
			Timestamp:     snap.Now.UTC().Format(time.RFC3339),
			Config: ConfigJSON{
				ButtonPin: snap.Config.ButtonPin,
				LEDPin:    snap.Config.LEDPin,
				Interface: snap.Config.Interface,
				Transport: snap.Config.Transport,
				QueueCap:  snap.Config.QueueCap,
				HTTPAddr:  snap.Config.HTTPAddr,
			},
		},
	}

	data, _ := json.MarshalIndent(sj, "", "  ")
	return data
}
