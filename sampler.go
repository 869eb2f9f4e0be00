package nospam

import (
	"math/rand/v2"
	"strings"
)

// SamplerConfig holds the configuration for a probabilistic sampler.
// Every field is optional.
type SamplerConfig struct {
	// Name is the label reported to the Observer. Defaults to "sampler".
	Name string

	// RandFunc must return a uniformly distributed number in [0, n).
	// It can be overridden to allow for easier testing,
	// you should usually not override it.
	RandFunc func(n uint64) uint64

	Observer Observer
}

// Sampler runs actions at random so that, on average,
// only a target fraction of the calls goes through.
//
// It keeps no state between calls: each Sample is an independent draw.
// A Sampler is safe for concurrent use as long as its RandFunc is.
type Sampler struct {
	Name     string
	RandFunc func(n uint64) uint64
	Observer Observer
}

var defaultSampler = NewSampler(nil)

// NewSampler returns a sampler built with the given configuration.
// A nil configuration is allowed.
func NewSampler(config *SamplerConfig) *Sampler {
	if config == nil {
		config = &SamplerConfig{}
	}

	out := Sampler{
		Name:     strings.TrimSpace(config.Name),
		RandFunc: config.RandFunc,
		Observer: config.Observer,
	}

	if out.Name == "" {
		out.Name = "sampler"
	}
	if out.RandFunc == nil {
		out.RandFunc = rand.Uint64N
	}
	if out.Observer == nil {
		out.Observer = NewNoOpObserver()
	}

	return &out
}

// Sample will call the action, on average, target times every estimate calls.
// estimate is your guess of how many times Sample is going to be called
// in the period you want target calls in.
//
// Example:
// a renderer running at 30fps wants to report an error at most about once per second
// even if the error happens on every frame:
// Sample(1, 30, ...) will run the action on average once every 30 calls.
//
// The action receives target.
//
// The sampling factor is computed with integer division (estimate / target),
// so the achieved rate is slightly above the nominal one when estimate
// is not a multiple of target.
//
// A zero target never runs the action,
// an estimate lower than twice the target always runs it.
func Sample(target uint64, estimate uint64, action Action) {
	defaultSampler.Sample(target, estimate, action)
}

// Sample behaves like the package level Sample function
// using the sampler random source and observer.
func (instance *Sampler) Sample(target uint64, estimate uint64, action Action) {
	selected := instance.draw(target, estimate)
	if selected {
		runAction(action, target)
	}

	instance.Observer.Gated(instance.Name, selected)
}

func (instance *Sampler) draw(target uint64, estimate uint64) bool {
	if target == 0 {
		return false
	}

	factor := samplingFactor(target, estimate)
	if factor <= 1 {
		// the range [0, factor) would hold zero only, or nothing at all.
		return true
	}

	return instance.RandFunc(factor) == 0
}

// samplingFactor is the expected number of calls for each selected one.
// target must not be zero.
func samplingFactor(target uint64, estimate uint64) uint64 {
	return estimate / target
}
