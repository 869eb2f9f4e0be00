package nospam

import (
	"time"
)

// WindowedLimiter holds all the required
// runtime data together with the parsed configuration.
//
// It is not thread safe: it is meant to be owned by a single goroutine.
type WindowedLimiter struct {
	Logger   Logger
	Observer Observer
	Config   *limiterEffectiveConfig

	// Time functions can be overridden for testing.
	TimeFunc func() time.Time

	// time of the most recent permitted call.
	// lastCall is meaningless until hasLastCall is set.
	lastCall    time.Time
	hasLastCall bool

	// attempts observed since the last window reset,
	// skipped ones included.
	count uint64

	warnedZeroCeiling bool
}

// limiterEffectiveConfig holds the validated and parsed configuration
// that was obtained from the user-provided configuration.
//
// It is never modified after validation and can be shared
// between limiters built from the same template.
type limiterEffectiveConfig struct {
	Name        string
	Limit       float64
	Granularity Granularity

	// multiplier converting elapsed seconds in elapsed windows
	TimeFactor float64

	Bypass bool
}

func newWindowedLimiter(config *limiterEffectiveConfig, logger Logger, observer Observer, timeFunc func() time.Time) *WindowedLimiter {
	out := WindowedLimiter{
		Config:   config,
		Logger:   logger,
		Observer: observer,
		TimeFunc: timeFunc,
	}

	if out.Logger == nil {
		out.Logger = newDefaultLogger()
	}
	if out.Observer == nil {
		out.Observer = NewNoOpObserver()
	}
	if out.TimeFunc == nil {
		out.TimeFunc = time.Now
	}

	return &out
}

func (instance *WindowedLimiter) currentTime() time.Time {
	// hook time provider here to allow easier testing
	return instance.TimeFunc()
}

// Count returns the number of attempts observed in the current window.
//
// The window is not rotated here: a limiter that is not attempted
// keeps reporting the count of its last window.
func (instance *WindowedLimiter) Count() uint64 {
	return instance.count
}

// Limit returns the ceiling of permitted calls per window.
func (instance *WindowedLimiter) Limit() float64 {
	return instance.Config.Limit
}

// TimeFactor returns the multiplier converting elapsed seconds in elapsed windows.
func (instance *WindowedLimiter) TimeFactor() float64 {
	return instance.Config.TimeFactor
}

// Stats returns runtime statistics useful to evaluate the limiter status.
func (instance *WindowedLimiter) Stats() RuntimeStatistics {
	return RuntimeStatistics{
		Name:        instance.Config.Name,
		Count:       instance.count,
		Limit:       instance.Config.Limit,
		Granularity: instance.Config.Granularity,
		LastCall:    instance.lastCall,
		HasLastCall: instance.hasLastCall,
	}
}

// core methods are in the attempt.go and window.go files
