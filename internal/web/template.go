package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/fwc-sim/internal/fwc"
	"github.com/sweeney/fwc-sim/internal/status"
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
	"phase": func(p int) string {
		if p == 0 {
			return "-"
		}
		return fmt.Sprintf("%d", p)
	},
	"count": func(c fwc.EventCounts, t fwc.EventType) int { return c[t] },
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="2">
<title>FWC Simulator</title>
<style>
body { font-family: monospace; max-width: 720px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.alert { color: red; font-weight: bold; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>FWC Simulator <small>phase {{phase .Combined.FlightPhase}}</small></h1>

<h2>Computers</h2>
<table>
<tr><th>FWC</th><th>State</th><th>Phase</th><th>T.O memo</th><th>LDG memo</th><th>Aural</th></tr>
{{range .Frames}}<tr id="fwc{{.FWC}}">
<td><a href="/api/v1/fwc/{{.FWC}}">{{.FWC}}</a></td>
<td class="{{if eq .State "RUNNING"}}on{{else}}off{{end}}">{{.State}}</td>
<td>{{phase .FlightPhase}}</td>
<td class="{{if .ToMemo}}on{{else}}off{{end}}">{{if .ToMemo}}ON{{else}}OFF{{end}}</td>
<td class="{{if .LdgMemo}}on{{else}}off{{end}}">{{if .LdgMemo}}ON{{else}}OFF{{end}}</td>
<td class="alert">{{range .Sounds}}{{.}} {{end}}</td>
</tr>{{end}}
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
<tr><th>Kafka</th><td>{{if .Config.KafkaTopic}}{{.Config.KafkaTopic}}{{else}}disabled{{end}}</td></tr>
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}}, {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
</table>

<h2>Event Counts</h2>
<table>
{{range .EventTypes}}<tr><th>{{.}}</th><td>{{count $.Counts .}}</td></tr>
{{end}}</table>

<h2>System</h2>
<table>
<tr><th>Run</th><td>{{.RunID}}</td></tr>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Ticks</th><td>{{.Ticks}}</td></tr>
<tr><th>Tick</th><td>{{.Config.TickMs}}ms</td></tr>
<tr><th>Power tolerance</th><td>{{.Config.ToleranceMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>Scenario</th><td>{{.Config.Scenario}}</td></tr>
<tr><th>Panel</th><td>{{if .Config.GPIO}}GPIO{{else}}none{{end}}</td></tr>
</table>

<p><a href="/index.json">JSON</a> | <a href="/metrics">metrics</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime     time.Duration
		EventTypes []fwc.EventType
	}{
		Snapshot:   snap,
		Uptime:     snap.Uptime(),
		EventTypes: fwc.EventTypes,
	}
	indexTmpl.Execute(w, data)
}
