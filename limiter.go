package nospam

import "time"

// Action is the callback gated by limiters and samplers.
//
// Windowed limiters pass the number of calls observed in the current window
// before this one (always lower than the ceiling when the action runs),
// samplers pass the target rate.
type Action func(count uint64)

// Limiter is the parent interface for the windowed limiters.
//
// You are encouraged to use this type when storing references
// to your limiters in order to allow for easier implementations switch.
type Limiter interface {
	// Attempt runs the action if the window still has room for it
	// and skips it otherwise.
	// Every attempt is counted, including the skipped ones.
	// Nothing is returned: the action itself is the only observable effect.
	Attempt(action Action)

	// Count returns the number of attempts observed in the current window.
	Count() uint64
}

// RuntimeStatistics holds runtime statistics
// for a single windowed limiter.
type RuntimeStatistics struct {
	// Name is the label the limiter reports to its Observer.
	Name string

	// Count is the number of attempts observed since the last window reset.
	// It can grow over Limit since skipped attempts are counted too.
	Count uint64

	// Limit is the ceiling of permitted calls per window.
	Limit float64

	// Granularity is the size of the window.
	Granularity Granularity

	// LastCall is the time of the most recent permitted call.
	// It is meaningful only when HasLastCall is true.
	LastCall    time.Time
	HasLastCall bool
}

// CompositeRuntimeStatistics holds runtime statistics
// for a composite limiter.
type CompositeRuntimeStatistics struct {

	// LimitersStats holds the statistics for each composed limiter
	LimitersStats []RuntimeStatistics
}
