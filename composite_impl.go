package nospam

import (
	"time"
)

// CompositeLimiter combines several windowed limiters on the same action,
// ex. "at most 5 per second and 100 per hour".
//
// Like WindowedLimiter, it is not thread safe.
type CompositeLimiter struct {
	Name     string
	Bypass   bool
	Logger   Logger
	Observer Observer
	Limiters []*WindowedLimiter

	TimeFunc func() time.Time
}

func (instance *CompositeLimiter) currentTime() time.Time {
	// hook time provider here to allow easier testing
	return instance.TimeFunc()
}

// Attempt for a composite instance
// behaves like the same method for the single limiter
// but the action runs only if every composed limiter has room for it.
//
// all the composed windows are rotated first,
// then the action runs if all of them permit it
// and receives the count of the first composed limiter.
//
// every composed limiter counts the attempt
// and records the call time when the action ran.
func (instance *CompositeLimiter) Attempt(action Action) {
	if instance.Bypass {
		runAction(action, instance.Count())
		instance.Observer.Gated(instance.Name, true)
		return
	}

	t := instance.currentTime()

	permitted := true
	for _, limiter := range instance.Limiters {
		limiter.rotateWindow(t)

		// keep rotating the remaining limiters even after a refusal
		// so that every window stays consistent.
		if !limiter.permits() {
			permitted = false
		}
	}

	if permitted {
		runAction(action, instance.Count())

		calledAt := instance.currentTime()
		for _, limiter := range instance.Limiters {
			limiter.markCalled(calledAt)
		}
	}

	for _, limiter := range instance.Limiters {
		limiter.count++
	}

	instance.Observer.Gated(instance.Name, permitted)
}

// Count returns the count of the first composed limiter.
func (instance *CompositeLimiter) Count() uint64 {
	if len(instance.Limiters) == 0 {
		return 0
	}
	return instance.Limiters[0].Count()
}

// Stats returns the statistics of every composed limiter.
func (instance *CompositeLimiter) Stats() CompositeRuntimeStatistics {
	out := CompositeRuntimeStatistics{
		LimitersStats: make([]RuntimeStatistics, len(instance.Limiters)),
	}
	for i, limiter := range instance.Limiters {
		out.LimitersStats[i] = limiter.Stats()
	}
	return out
}
