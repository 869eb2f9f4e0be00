package nospam

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Granularity is the size of the fixed window a limiter counts calls in.
//
// The zero value is Second.
type Granularity int

const (
	Second Granularity = iota
	Minute
	Hour
	Day
)

var granularityNames = map[string]Granularity{
	"s":       Second,
	"sec":     Second,
	"second":  Second,
	"seconds": Second,
	"m":       Minute,
	"min":     Minute,
	"minute":  Minute,
	"minutes": Minute,
	"h":       Hour,
	"hour":    Hour,
	"hours":   Hour,
	"d":       Day,
	"day":     Day,
	"days":    Day,
}

// ParseGranularity converts a window name ("second", "minute", "hour", "day"
// and their short forms) to a Granularity.
func ParseGranularity(s string) (Granularity, error) {
	g, ok := granularityNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Second, invalidField("Per", "should be one of second, minute, hour or day (given: %q)", s)
	}
	return g, nil
}

// TimeFactor is the multiplier converting elapsed seconds
// into elapsed windows.
func (g Granularity) TimeFactor() float64 {
	switch g {
	case Minute:
		return 1.0 / 60.0
	case Hour:
		return 1.0 / 3600.0
	case Day:
		return 1.0 / 86400.0
	default:
		return 1.0
	}
}

// Duration returns the width of the window.
func (g Granularity) Duration() time.Duration {
	switch g {
	case Minute:
		return time.Minute
	case Hour:
		return time.Hour
	case Day:
		return 24 * time.Hour
	default:
		return time.Second
	}
}

func (g Granularity) String() string {
	switch g {
	case Second:
		return "second"
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	case Day:
		return "day"
	default:
		return fmt.Sprintf("Granularity(%d)", int(g))
	}
}

func (g Granularity) valid() bool {
	return g >= Second && g <= Day
}

// UnmarshalYAML implements yaml.Unmarshaler for Granularity.
func (g *Granularity) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("window granularity must be a string (e.g. 'minute'): %w", err)
	}
	parsed, err := ParseGranularity(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for Granularity.
func (g Granularity) MarshalYAML() (interface{}, error) {
	return g.String(), nil
}
