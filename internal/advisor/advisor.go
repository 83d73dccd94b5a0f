// Package advisor turns a normalized forecast window into an umbrella
// recommendation.
package advisor

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/i474232898/umbrella-advisor/internal/forecast"
)

// popThreshold is the precipitation probability at which a point counts as
// triggering even when its condition category is dry.
const popThreshold = 0.30

// clearReason is the reason text when no point triggers.
const clearReason = "Clear skies ahead - no precipitation expected in the next 24 hours."

// timeLayout renders point times on a 12-hour clock without a leading zero.
const timeLayout = "3:04 PM"

// Recommendation is the advisor's verdict for one forecast window.
type Recommendation struct {
	NeedsUmbrella   bool
	Reason          string
	ForecastSummary string
}

// Advise classifies the window and produces a recommendation. Point times are
// rendered in tz. The window must have passed Validate; Advise itself rejects
// only the empty window.
func Advise(window forecast.Window, tz *time.Location) (Recommendation, error) {
	if len(window) == 0 {
		return Recommendation{}, forecast.ErrEmptyWindow
	}
	if tz == nil {
		tz = time.Local
	}

	title := cases.Title(language.English)

	type trigger struct {
		when        string
		description string
		pop         float64
	}

	var (
		lines    []string
		triggers []trigger
	)

	for _, p := range window {
		when := p.Timestamp.In(tz).Format(timeLayout)
		pop := math.Round(p.POP * 100)

		lines = append(lines, fmt.Sprintf("  • %s: %s (Temp: %.0f°F, %.0f%% precip)",
			when, title.String(p.Description), math.Round(p.Temperature), pop))

		switch {
		case isPrecipitating(p.Condition):
			triggers = append(triggers, trigger{when: when, description: p.Description, pop: pop})
		case p.POP >= popThreshold:
			triggers = append(triggers, trigger{when: when, description: "possible precipitation", pop: pop})
		}
	}

	rec := Recommendation{ForecastSummary: strings.Join(lines, "\n")}

	if len(triggers) == 0 {
		rec.Reason = clearReason
		return rec, nil
	}

	rec.NeedsUmbrella = true
	times := make([]string, 0, len(triggers))
	for _, t := range triggers {
		times = append(times, fmt.Sprintf("%s (%s, %.0f%% chance)", t.when, t.description, t.pop))
	}
	rec.Reason = "Precipitation expected:\n  " + strings.Join(times, "\n  ")
	return rec, nil
}

// isPrecipitating reports whether the category alone warrants an umbrella,
// regardless of probability.
func isPrecipitating(c forecast.Condition) bool {
	switch c {
	case forecast.ConditionRain, forecast.ConditionDrizzle, forecast.ConditionThunderstorm, forecast.ConditionSnow:
		return true
	}
	return false
}
