package nospam

import (
	"fmt"
	"time"
)

// rotateWindow clears the counter if a whole window elapsed
// since the last permitted call.
//
// There is no timer: the check runs lazily on every attempt,
// so a limiter that is never attempted again never resets.
// Returns true when the counter was cleared.
func (instance *WindowedLimiter) rotateWindow(now time.Time) bool {
	if !instance.hasLastCall {
		return false
	}

	elapsed := now.Sub(instance.lastCall)

	// this could happen when the provided TimeFunc is not monotonic
	if elapsed < 0 {
		instance.Logger.Warning(
			"time mismatch on window rotation: current time is before the last permitted call. " +
				"please check the time source of the limiter.",
		)
		return false
	}

	if elapsed.Seconds()*instance.Config.TimeFactor < 1.0 {
		return false
	}

	instance.Logger.Debug(fmt.Sprintf("[%s] window elapsed after %v, resetting %d counted calls", instance.Config.Name, elapsed, instance.count))

	instance.count = 0
	instance.Observer.WindowReset(instance.Config.Name)
	return true
}

// permits tells whether the current window still has room.
func (instance *WindowedLimiter) permits() bool {
	return float64(instance.count) < instance.Config.Limit
}

func (instance *WindowedLimiter) markCalled(t time.Time) {
	instance.lastCall = t
	instance.hasLastCall = true
}
