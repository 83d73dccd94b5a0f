package notify

import (
	"bytes"
	"fmt"
	html "html/template"
	"strings"
	text "text/template"
	"time"

	"github.com/i474232898/umbrella-advisor/internal/advisor"
)

const textBody = `
Umbrella Advisor - Daily Weather Report
{{.Rule}}

{{.Emoji}} {{.Recommendation}}

{{.Reason}}

Today's Forecast for {{.LocationName}}:
{{.ForecastSummary}}

{{.Rule}}
Report generated at: {{.GeneratedAt}}
`

const htmlBody = `<html>
<head>
<style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .header { background-color: {{.HeaderColor}}; color: white; padding: 20px; text-align: center; }
    .content { padding: 20px; }
    .recommendation { font-size: 24px; font-weight: bold; color: {{.AccentColor}}; }
    .reason { background-color: #f5f5f5; padding: 15px; margin: 15px 0; border-left: 4px solid {{.AccentColor}}; }
    .forecast { background-color: #f9f9f9; padding: 15px; margin: 15px 0; }
    .footer { font-size: 12px; color: #999; margin-top: 20px; padding-top: 20px; border-top: 1px solid #ddd; }
</style>
</head>
<body>
    <div class="header">
        <h1>{{.Emoji}} Umbrella Advisor</h1>
        <p>Daily Weather Report for {{.LocationName}}</p>
    </div>
    <div class="content">
        <p class="recommendation">{{.Recommendation}}</p>
        <div class="reason">
            <strong>Why?</strong><br>
            {{.ReasonHTML}}
        </div>
        <div class="forecast">
            <strong>Today's Forecast:</strong><br>
            {{.ForecastHTML}}
        </div>
    </div>
    <div class="footer">
        Report generated at: {{.GeneratedAt}}
    </div>
</body>
</html>
`

var (
	textTmpl = text.Must(text.New("text").Parse(textBody))
	htmlTmpl = html.Must(html.New("html").Parse(htmlBody))
)

// message holds the fully composed notification.
type message struct {
	Subject string
	Text    string
	HTML    string
}

type templateData struct {
	LocationName    string
	Emoji           string
	Recommendation  string
	Reason          string
	ForecastSummary string
	ReasonHTML      html.HTML
	ForecastHTML    html.HTML
	GeneratedAt     string
	HeaderColor     html.CSS
	AccentColor     html.CSS
	Rule            string
}

// brJoin escapes a multi-line string and joins its lines with <br>, with no
// trailing break after the last line.
func brJoin(s string) html.HTML {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = html.HTMLEscapeString(line)
	}
	return html.HTML(strings.Join(lines, "<br>"))
}

// compose renders the subject line and both body variants for a recommendation.
func compose(rec advisor.Recommendation, locationName string, now time.Time) (message, error) {
	data := templateData{
		LocationName:    locationName,
		Reason:          rec.Reason,
		ForecastSummary: rec.ForecastSummary,
		ReasonHTML:      brJoin(rec.Reason),
		ForecastHTML:    brJoin(rec.ForecastSummary),
		GeneratedAt:     now.Format("2006-01-02 3:04 PM"),
		Rule:            strings.Repeat("=", 50),
	}

	var subject string
	if rec.NeedsUmbrella {
		subject = fmt.Sprintf("☂️ BRING AN UMBRELLA - %s", locationName)
		data.Emoji = "☂️"
		data.Recommendation = "YES, bring an umbrella today!"
		data.HeaderColor = "#4a90e2"
		data.AccentColor = "#e74c3c"
	} else {
		subject = fmt.Sprintf("☀️ No umbrella needed - %s", locationName)
		data.Emoji = "☀️"
		data.Recommendation = "No umbrella needed today!"
		data.HeaderColor = "#f39c12"
		data.AccentColor = "#27ae60"
	}

	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return message{}, fmt.Errorf("render text body: %w", err)
	}

	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return message{}, fmt.Errorf("render html body: %w", err)
	}

	return message{
		Subject: subject,
		Text:    textBuf.String(),
		HTML:    htmlBuf.String(),
	}, nil
}
