package forecast

import (
	"errors"
	"fmt"
	"time"
)

// Condition is the primary condition category reported by the forecast source.
// The named constants are the categories the advisor reacts to; any other
// source-reported category is carried through as-is.
type Condition string

const (
	ConditionClear        Condition = "Clear"
	ConditionClouds       Condition = "Clouds"
	ConditionRain         Condition = "Rain"
	ConditionDrizzle      Condition = "Drizzle"
	ConditionThunderstorm Condition = "Thunderstorm"
	ConditionSnow         Condition = "Snow"
)

var (
	// ErrEmptyWindow is returned when a source produced no forecast points.
	ErrEmptyWindow = errors.New("forecast window is empty")
	// ErrMalformedPoint is returned when a fetched point is missing required fields.
	ErrMalformedPoint = errors.New("malformed forecast point")
)

// Point is one normalized forecast entry. Both source granularities (hourly
// and 3-hourly) reduce to this shape.
type Point struct {
	Timestamp   time.Time // always UTC
	Temperature float64   // °F
	Condition   Condition
	Description string
	// POP is the probability of precipitation in [0,1]. Sources that omit it
	// report 0.
	POP float64
}

// Window is a time-ordered sequence of points covering roughly the next 24
// hours, ordered by ascending timestamp.
type Window []Point

// Validate checks the window against the data contract: non-empty, every
// point carries a timestamp and a condition category, timestamps ascend.
func (w Window) Validate() error {
	if len(w) == 0 {
		return ErrEmptyWindow
	}
	for i, p := range w {
		if p.Timestamp.IsZero() {
			return fmt.Errorf("%w: point %d has no timestamp", ErrMalformedPoint, i)
		}
		if p.Condition == "" {
			return fmt.Errorf("%w: point %d has no condition category", ErrMalformedPoint, i)
		}
		if i > 0 && p.Timestamp.Before(w[i-1].Timestamp) {
			return fmt.Errorf("%w: point %d is out of order", ErrMalformedPoint, i)
		}
	}
	return nil
}
