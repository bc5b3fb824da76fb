package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/button-notify/internal/led"
	"github.com/sweeney/button-notify/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"indicatorClass": func(s led.Status) string {
		switch s {
		case led.StatusIdle, led.StatusSuccess:
			return "ok"
		case led.StatusFailure, led.StatusAlarm:
			return "err"
		default:
			return "pending"
		}
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Button Notify</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.ok { color: green; font-weight: bold; }
.err { color: red; font-weight: bold; }
.pending { color: orange; }
.muted { color: #888; }
</style>
</head>
<body>
<h1>Button Notify</h1>

<h2>Indicator</h2>
<table>
<tr><th>Status</th><td class="{{indicatorClass .Indicator}}">{{.Indicator}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>WiFi</th><td class="{{if eq .Wifi.String "CONNECTED"}}ok{{else}}pending{{end}}">{{.Wifi}}</td></tr>
<tr><th>Link</th><td class="{{if .LinkUp}}ok{{else}}err{{end}}">{{if .LinkUp}}up{{else}}down{{end}}</td></tr>
{{if .LinkUp}}<tr><th>IP</th><td>{{.LinkIP}}</td></tr>{{end}}
<tr><th>Interface</th><td>{{.Config.Interface}}</td></tr>
</table>

<h2>Messages</h2>
<table>
<tr><th>Clicks</th><td>{{.Counts.Clicks}}</td></tr>
<tr><th>Enqueued</th><td>{{.Counts.Enqueued}}</td></tr>
<tr><th>Dropped</th><td class="{{if .Counts.Dropped}}err{{else}}muted{{end}}">{{.Counts.Dropped}}</td></tr>
<tr><th>Delivered</th><td>{{.Counts.Delivered}}</td></tr>
<tr><th>Failed</th><td class="{{if .Counts.Failed}}err{{else}}muted{{end}}">{{.Counts.Failed}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Transport</th><td>{{.Config.Transport}}</td></tr>
<tr><th>Queue</th><td>{{.Config.QueueCap}}</td></tr>
<tr><th>Button pin</th><td>{{.Config.ButtonPin}}</td></tr>
<tr><th>LED pin</th><td>{{.Config.LEDPin}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has an Uptime() method but the template wants a field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
