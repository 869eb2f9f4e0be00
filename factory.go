package nospam

import (
	"fmt"
	"strings"
	"time"
)

// Config holds the basic configuration for a windowed limiter instance
type Config struct {

	// Name is the label reported to the Observer.
	// When empty a name like "5-per-second" is generated.
	Name string `yaml:"name"`

	// MaxCalls is the maximum number of calls
	// that are allowed to run in a single window.
	MaxCalls uint64 `yaml:"max_calls"`

	// Per is the size of the window.
	// Defaults to Second.
	Per Granularity `yaml:"per"`

	// if Bypass is true, the limiter runs every action
	// without counting it. Useful to disable throttling in development builds
	// without touching the call sites.
	Bypass bool `yaml:"bypass"`

	// Time-related functions can be overriden to allow for easier testing
	// you should usually not override these.
	TimeFunc func() time.Time `yaml:"-"`

	// you can pass your custom logger if you'd like to
	// but it's not required
	Logger Logger `yaml:"-"`

	// Observer receives every gating decision. Optional.
	Observer Observer `yaml:"-"`
}

type CompositeConfig struct {
	Name   string `yaml:"name"`
	Bypass bool   `yaml:"bypass"`

	// Limiters is a required parameter holding the configurations
	// of the single limiters you want to compose together.
	Limiters []Config `yaml:"limiters"`

	// Time-related functions can be overriden to allow for easier testing
	// you should usually not override these.
	TimeFunc func() time.Time `yaml:"-"`

	// you can pass your custom logger if you'd like to
	// but it's not required
	Logger Logger `yaml:"-"`

	Observer Observer `yaml:"-"`
}

type KeyedConfig struct {

	// Limiter is the template every per-key limiter is built from.
	// All the keys report to the Observer with the template name.
	Limiter Config `yaml:"limiter"`

	// MaxKeys caps the number of keys tracked at the same time.
	// When a new key would exceed it, the oldest key is forgotten.
	// Zero means unbounded.
	MaxKeys int `yaml:"max_keys"`
}

// NewPerSecond returns a limiter allowing at most maxPerSecond calls each second.
//
// A zero ceiling is accepted and builds a limiter that skips everything.
// Use New if you want invalid values to be rejected.
func NewPerSecond(maxPerSecond uint64) *WindowedLimiter {
	return newWithGranularity(maxPerSecond, Second)
}

// NewPerMinute returns a limiter allowing at most maxPerMinute calls each minute.
func NewPerMinute(maxPerMinute uint64) *WindowedLimiter {
	return newWithGranularity(maxPerMinute, Minute)
}

// NewPerHour returns a limiter allowing at most maxPerHour calls each hour.
func NewPerHour(maxPerHour uint64) *WindowedLimiter {
	return newWithGranularity(maxPerHour, Hour)
}

// NewPerDay returns a limiter allowing at most maxPerDay calls each day.
func NewPerDay(maxPerDay uint64) *WindowedLimiter {
	return newWithGranularity(maxPerDay, Day)
}

func newWithGranularity(maxCalls uint64, per Granularity) *WindowedLimiter {
	// a zero ceiling is reported on the first attempt,
	// through whatever Logger is set by then
	return newWindowedLimiter(&limiterEffectiveConfig{
		Name:        defaultLimiterName(maxCalls, per),
		Limit:       float64(maxCalls),
		Granularity: per,
		TimeFactor:  per.TimeFactor(),
	}, newDefaultLogger(), nil, nil)
}

// New returns a windowed limiter
// built with the specified configuration.
//
// A non-nil error is returned in case of invalid configuration.
func New(config *Config) (*WindowedLimiter, error) {
	if config == nil {
		return nil, &InvalidConfiguration{Reason: "configuration is required"}
	}

	effectiveLogger := config.Logger
	if effectiveLogger == nil {
		effectiveLogger = newDefaultLogger()
	} else {
		effectiveLogger.Debug("binding provided logger to WindowedLimiter")
	}

	parsedConfig, err := validateConfiguration(config, effectiveLogger)
	if err != nil {
		return nil, err
	}

	return newWindowedLimiter(parsedConfig, effectiveLogger, config.Observer, config.TimeFunc), nil
}

// validateConfiguration will parse the user-provided configuration
// to the required format for runtime while also validating it.
func validateConfiguration(config *Config, logger Logger) (*limiterEffectiveConfig, error) {
	if logger == nil {
		logger = newDefaultLogger()
	}

	if config.MaxCalls <= 0 {
		return nil, invalidField("MaxCalls", "should be greater than 0 (given: %v)", config.MaxCalls)
	}

	if !config.Per.valid() {
		return nil, invalidField("Per", "is not a known window granularity (given: %v)", config.Per)
	}

	out := limiterEffectiveConfig{
		Name:        strings.TrimSpace(config.Name),
		Limit:       float64(config.MaxCalls),
		Granularity: config.Per,
		TimeFactor:  config.Per.TimeFactor(),
		Bypass:      config.Bypass,
	}

	if out.Name == "" {
		out.Name = defaultLimiterName(config.MaxCalls, config.Per)
	}

	if out.Bypass {
		logger.Warning(fmt.Sprintf("limiter %v is in bypass mode, every call will be executed", out.Name))
	}

	return &out, nil
}

// NewComposite returns a limiter
// built with the specified configuration, combining multiple
// windows into a single instance.
//
// A non-nil error is returned in case of invalid configuration.
func NewComposite(config *CompositeConfig) (*CompositeLimiter, error) {
	if config == nil {
		return nil, &InvalidConfiguration{Reason: "configuration is required"}
	}

	effectiveLogger := config.Logger
	if effectiveLogger == nil {
		effectiveLogger = newDefaultLogger()
	} else {
		effectiveLogger.Debug("binding provided logger to CompositeLimiter")
	}

	err := validateCompositeConfiguration(config, effectiveLogger)
	if err != nil {
		return nil, err
	}

	out := CompositeLimiter{
		Name:     strings.TrimSpace(config.Name),
		Bypass:   config.Bypass,
		Logger:   effectiveLogger,
		Observer: config.Observer,
		TimeFunc: config.TimeFunc,
	}

	if out.Observer == nil {
		out.Observer = NewNoOpObserver()
	}
	if out.TimeFunc == nil {
		out.TimeFunc = time.Now
	}

	subTimeFunc := func() time.Time {
		return out.TimeFunc()
	}

	limiters := make([]*WindowedLimiter, len(config.Limiters))
	names := make([]string, len(config.Limiters))
	for i, config := range config.Limiters {
		if config.TimeFunc != nil {
			return nil, invalidField(fmt.Sprintf("Limiters[%d].TimeFunc", i), "cannot be set on a composed limiter, set it on the parent instead")
		}
		config.TimeFunc = subTimeFunc

		if config.Bypass {
			return nil, invalidField(fmt.Sprintf("Limiters[%d].Bypass", i), "cannot be set on a composed limiter, set it on the parent instead")
		}

		if config.Logger == nil {
			config.Logger = effectiveLogger
		}
		if config.Observer == nil {
			config.Observer = out.Observer
		}

		limiter, err := New(&config)
		if err != nil {
			return nil, fmt.Errorf("error building limiter at index %d: %w", i, err)
		}
		limiters[i] = limiter
		names[i] = limiter.Config.Name
	}

	out.Limiters = limiters

	if out.Name == "" {
		out.Name = strings.Join(names, "+")
	}

	return &out, nil
}

// validateCompositeConfiguration checks the composite-level parameters,
// single limiters are validated while building them.
func validateCompositeConfiguration(config *CompositeConfig, logger Logger) error {
	num := len(config.Limiters)
	if num < 1 {
		return invalidField("Limiters", "requires at least one component configuration")
	}

	if config.Bypass {
		logger.Warning("composite limiter is in bypass mode, every call will be executed")
	}

	return nil
}

// NewKeyed returns a limiter keeping a separate window for each key,
// built on demand from the template configuration.
//
// A non-nil error is returned in case of invalid configuration.
func NewKeyed(config *KeyedConfig) (*KeyedLimiter, error) {
	if config == nil {
		return nil, &InvalidConfiguration{Reason: "configuration is required"}
	}

	effectiveLogger := config.Limiter.Logger
	if effectiveLogger == nil {
		effectiveLogger = newDefaultLogger()
	}

	if config.MaxKeys < 0 {
		return nil, invalidField("MaxKeys", "should be zero or positive (given: %v)", config.MaxKeys)
	}

	parsedConfig, err := validateConfiguration(&config.Limiter, effectiveLogger)
	if err != nil {
		return nil, fmt.Errorf("error building keyed limiter template: %w", err)
	}

	out := KeyedLimiter{
		Logger:   effectiveLogger,
		Observer: config.Limiter.Observer,
		TimeFunc: config.Limiter.TimeFunc,
		Config: &keyedLimiterEffectiveConfig{
			Template: parsedConfig,
			MaxKeys:  config.MaxKeys,
		},
		Limiters: make(map[string]*WindowedLimiter),
		Order:    newKeyQueue(),
	}

	if out.Observer == nil {
		out.Observer = NewNoOpObserver()
	}
	if out.TimeFunc == nil {
		out.TimeFunc = time.Now
	}

	return &out, nil
}

func defaultLimiterName(maxCalls uint64, per Granularity) string {
	return fmt.Sprintf("%d-per-%v", maxCalls, per)
}
