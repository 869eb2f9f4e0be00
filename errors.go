package nospam

import (
	"fmt"
)

var (
	// ErrInvalidConfiguration is a sentinel for the error that
	// occurs when a limiter or sampler can't be built from the given configuration,
	// for instance when the ceiling is zero or the window granularity is unknown.
	ErrInvalidConfiguration = &InvalidConfiguration{}
)

// InvalidConfiguration is returned by the constructors and the configuration parsers
// when the provided values can't describe a working limiter.
type InvalidConfiguration struct {
	Field  string
	Reason string
}

func (e *InvalidConfiguration) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("InvalidConfiguration: %v", e.Reason)
	}
	return fmt.Sprintf("InvalidConfiguration: %v %v", e.Field, e.Reason)
}

func (e *InvalidConfiguration) Is(tgt error) bool {
	_, ok := tgt.(*InvalidConfiguration)
	return ok
}

func invalidField(field string, format string, args ...interface{}) *InvalidConfiguration {
	return &InvalidConfiguration{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}
