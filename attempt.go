package nospam

import (
	"fmt"
)

// Attempt runs the action if the window still has room for it
// and skips it otherwise.
//
// The action receives the number of calls counted in the window before this one.
// Skipped attempts are counted too, so the counter keeps growing over the ceiling
// until a whole window has elapsed since the last permitted call.
//
// The action runs synchronously on the caller goroutine.
func (instance *WindowedLimiter) Attempt(action Action) {
	if instance.Config.Bypass {
		runAction(action, instance.count)
		instance.Observer.Gated(instance.Config.Name, true)
		return
	}

	instance.rotateWindow(instance.currentTime())

	permitted := instance.permits()
	if permitted {
		runAction(action, instance.count)
		// the window starts when the action completes
		instance.markCalled(instance.currentTime())
	} else if instance.Config.Limit == 0 && !instance.warnedZeroCeiling {
		instance.warnedZeroCeiling = true
		instance.Logger.Warning(fmt.Sprintf("[%s] ceiling of 0 per %v, every call will be skipped",
			instance.Config.Name, instance.Config.Granularity))
	}

	instance.count++

	instance.Observer.Gated(instance.Config.Name, permitted)
}

func runAction(action Action, count uint64) {
	if action == nil {
		return
	}
	action(count)
}
