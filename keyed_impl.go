package nospam

import (
	"fmt"
	"sync"
	"time"

	"github.com/gammazero/deque"
)

// KeyedLimiter keeps a separate windowed limiter for each key,
// ex. one per distinct error message, so that a noisy message
// does not silence the others.
//
// Limiters are created on the first attempt for a key
// from the template configuration.
//
// Unlike the other limiters, a KeyedLimiter can be shared between goroutines.
// Actions run while the limiter lock is held:
// an action must never call back into the same KeyedLimiter.
type KeyedLimiter struct {
	Logger   Logger
	Observer Observer
	Config   *keyedLimiterEffectiveConfig

	// Time functions can be overridden for testing.
	TimeFunc func() time.Time

	// a lock provides thread safety.
	Lock sync.Mutex

	// we keep all runtime data for keys
	// in a map indexed by key
	Limiters map[string]*WindowedLimiter

	// Order holds the tracked keys, most recently created at the front,
	// so that the oldest one can be evicted when MaxKeys is exceeded.
	Order *deque.Deque
}

type keyedLimiterEffectiveConfig struct {
	Template *limiterEffectiveConfig
	MaxKeys  int
}

// minKeyQueueCapacity is the smallest buffer the key queue shrinks to.
// The queue grows with the tracked keys, never with MaxKeys.
const minKeyQueueCapacity = 16

func newKeyQueue() *deque.Deque {
	return deque.New(minKeyQueueCapacity, minKeyQueueCapacity)
}

// Attempt runs the action if the window of the given key still has room for it.
func (instance *KeyedLimiter) Attempt(key string, action Action) {
	instance.Lock.Lock()
	defer instance.Lock.Unlock()

	instance.getLimiter(key).Attempt(action)
}

// Count returns the number of attempts observed in the current window of the given key.
// Unknown keys report zero.
func (instance *KeyedLimiter) Count(key string) uint64 {
	instance.Lock.Lock()
	defer instance.Lock.Unlock()

	existing, exists := instance.Limiters[key]
	if !exists {
		return 0
	}
	return existing.Count()
}

// Stats returns the statistics of the given key, if tracked.
func (instance *KeyedLimiter) Stats(key string) (RuntimeStatistics, bool) {
	instance.Lock.Lock()
	defer instance.Lock.Unlock()

	existing, exists := instance.Limiters[key]
	if !exists {
		return RuntimeStatistics{}, false
	}
	return existing.Stats(), true
}

// Len returns the number of keys currently tracked.
func (instance *KeyedLimiter) Len() int {
	instance.Lock.Lock()
	defer instance.Lock.Unlock()

	return len(instance.Limiters)
}

func (instance *KeyedLimiter) getLimiter(key string) *WindowedLimiter {
	existing, exists := instance.Limiters[key]
	if exists {
		return existing
	}

	// every key shares the template config, and with it the Observer label.
	limiter := newWindowedLimiter(
		instance.Config.Template,
		instance.Logger,
		instance.Observer,
		instance.currentTime,
	)

	instance.Limiters[key] = limiter
	instance.Order.PushFront(key)

	instance.evict()

	return limiter
}

func (instance *KeyedLimiter) evict() {
	maxKeys := instance.Config.MaxKeys
	if maxKeys <= 0 {
		return
	}

	for instance.Order.Len() > maxKeys {
		evicted := instance.Order.PopBack().(string)
		delete(instance.Limiters, evicted)
		instance.Logger.Debug(fmt.Sprintf("[%s] key limit of %d reached, forgetting key %q", instance.Config.Template.Name, maxKeys, evicted))
	}
}

func (instance *KeyedLimiter) currentTime() time.Time {
	// hook time provider here to allow easier testing
	return instance.TimeFunc()
}
