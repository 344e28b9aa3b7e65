package report

import (
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

var tmplFuncs = map[string]any{
	"upper":  strings.ToUpper,
	"join":   func(items []string) string { return strings.Join(items, ", ") },
	"people": groupThousands,
	"inc":    func(i int) int { return i + 1 },
}

var textTmpl = texttemplate.Must(texttemplate.New("text").Funcs(tmplFuncs).Parse(textBody))

var htmlTmpl = htmltemplate.Must(htmltemplate.New("html").Funcs(tmplFuncs).Parse(htmlBody))

const textBody = `📊 REPORTE DIARIO: CLIMA Y NOTICIAS DE CHILE
================================================
📅 Fecha: {{.Date}}
🕒 Hora: {{.Time}}
================================================
{{if .Weather}}
🌦️ CONDICIONES METEOROLÓGICAS EN {{upper .Weather.City}}, {{.Weather.Country}}
----------------------------------------
🌡️  Temperatura: {{printf "%.1f" .Weather.Temperature}}°C
🤔 Sensación térmica: {{printf "%.1f" .Weather.FeelsLike}}°C
💧 Humedad: {{.Weather.Humidity}}%
🌬️  Viento: {{printf "%.1f" .Weather.WindSpeed}} m/s
☁️  Condición: {{.Weather.Condition}}
----------------------------------------
{{else}}
🌦️ CONDICIONES METEOROLÓGICAS NO DISPONIBLES
----------------------------------------
{{end}}
{{if .News}}
📰 ÚLTIMAS NOTICIAS DE CHILE
----------------------------------------
{{range $i, $item := .News}}{{inc $i}}. {{$item.Title}}
   Fuente: {{$item.SourceName}}
   Enlace: {{$item.URL}}

{{end}}----------------------------------------
{{else}}
📰 NO HAY NOTICIAS DISPONIBLES
----------------------------------------
{{end}}
{{if .Country}}
🌎 INFORMACIÓN DE PAÍS: {{upper .Country.Name}}
----------------------------------------
🏛️  Nombre oficial: {{.Country.OfficialName}}
🏙️  Capital: {{.Country.Capital}}
🗺️  Región: {{.Country.Region}} ({{.Country.Subregion}})
👥 Población: {{people .Country.Population}}
🗣️  Idiomas: {{join .Country.Languages}}
💰 Monedas: {{join .Country.Currencies}}
----------------------------------------
{{else}}
🌎 INFORMACIÓN DE PAÍS NO DISPONIBLE
----------------------------------------
{{end}}
================================================
🔄 Este reporte se actualiza diariamente.
`

const htmlBody = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Reporte Diario: Clima y Noticias de Chile</title>
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; }
.header { text-align: center; margin-bottom: 30px; border-bottom: 2px solid #1a73e8; padding-bottom: 10px; }
.date-time { color: #5f6368; font-size: 14px; margin-bottom: 20px; }
.section { margin-bottom: 30px; padding: 20px; border-radius: 8px; box-shadow: 0 2px 5px rgba(0,0,0,0.1); }
.weather { background-color: #e8f0fe; }
.news { background-color: #fff; }
.country { background-color: #e6f4ea; }
.weather-main { display: flex; align-items: center; margin-bottom: 15px; }
.weather-icon { vertical-align: middle; margin-right: 10px; }
.weather-details { display: grid; grid-template-columns: 1fr 1fr; gap: 10px; }
.weather-detail { padding: 8px; background-color: rgba(255,255,255,0.7); border-radius: 4px; }
.news-item { margin-bottom: 20px; padding: 15px; background-color: #f8f9fa; border-radius: 5px; }
.country-flag { max-width: 100px; margin-right: 15px; float: left; }
h1, h2 { color: #1a73e8; }
.footer { text-align: center; margin-top: 30px; font-size: 12px; color: #5f6368; border-top: 1px solid #dadce0; padding-top: 20px; }
</style>
</head>
<body>
<div class="header">
<h1>📊 Reporte Diario: Clima y Noticias de Chile</h1>
<div class="date-time"><p>📅 Fecha: {{.Date}} | 🕒 Hora: {{.Time}}</p></div>
</div>
{{if .Weather}}
<div class="section weather">
<h2>🌦️ Condiciones Meteorológicas en {{.Weather.City}}</h2>
<div class="weather-main">
{{if .Weather.IconURL}}<img src="{{.Weather.IconURL}}" alt="{{.Weather.Condition}}" class="weather-icon" width="50" height="50">{{end}}
<div>
<h3 style="margin:0;">{{printf "%.1f" .Weather.Temperature}}°C</h3>
<p style="margin:0;">{{.Weather.Condition}}</p>
</div>
</div>
<div class="weather-details">
<div class="weather-detail"><strong>🤔 Sensación:</strong> {{printf "%.1f" .Weather.FeelsLike}}°C</div>
<div class="weather-detail"><strong>💧 Humedad:</strong> {{.Weather.Humidity}}%</div>
<div class="weather-detail"><strong>🌬️ Viento:</strong> {{printf "%.1f" .Weather.WindSpeed}} m/s</div>
</div>
</div>
{{else}}
<div class="section weather">
<h2>🌦️ Condiciones meteorológicas no disponibles</h2>
</div>
{{end}}
<div class="section news">
<h2>📰 Últimas Noticias de Chile</h2>
{{if .News}}
{{range .News}}<div class="news-item">
<h3 style="margin-top:0; color:#1a73e8;">{{.Title}}</h3>
<p style="color:#5f6368;">Fuente: {{.SourceName}}</p>
<a href="{{.URL}}" style="color:#1a73e8; text-decoration:none; font-weight:bold;">Leer más →</a>
</div>
{{end}}
{{else}}
<p>No hay noticias disponibles.</p>
{{end}}
</div>
{{if .Country}}
<div class="section country">
<h2>🌎 Información de {{.Country.Name}}</h2>
{{if .Country.FlagURL}}<img src="{{.Country.FlagURL}}" alt="Bandera de {{.Country.Name}}" class="country-flag">{{end}}
<p><strong>Capital:</strong> {{.Country.Capital}}</p>
<p><strong>Población:</strong> {{people .Country.Population}} habitantes</p>
<p><strong>Idiomas:</strong> {{join .Country.Languages}}</p>
<p><strong>Monedas:</strong> {{join .Country.Currencies}}</p>
<div style="clear:both;"></div>
</div>
{{else}}
<div class="section country">
<h2>🌎 Información de país no disponible</h2>
</div>
{{end}}
<div class="footer">
<p>🔄 Este reporte se actualiza diariamente.</p>
<p>Generado automáticamente el {{.Date}} a las {{.Time}}</p>
</div>
</body>
</html>
`
