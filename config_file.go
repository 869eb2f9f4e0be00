package nospam

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ConfigFromYAML decodes a limiter configuration like:
//
//	name: frame-errors
//	max_calls: 5
//	per: second
//
// The result is not validated until it is passed to New.
// Code-only fields (TimeFunc, Logger, Observer) are left empty.
func ConfigFromYAML(data []byte) (*Config, error) {
	var out Config
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("could not parse limiter configuration: %w", err)
	}
	return &out, nil
}

// CompositeConfigFromYAML decodes a composite limiter configuration like:
//
//	name: api-errors
//	limiters:
//	  - max_calls: 5
//	    per: second
//	  - max_calls: 100
//	    per: hour
func CompositeConfigFromYAML(data []byte) (*CompositeConfig, error) {
	var out CompositeConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("could not parse composite limiter configuration: %w", err)
	}
	return &out, nil
}

// KeyedConfigFromYAML decodes a keyed limiter configuration like:
//
//	max_keys: 1000
//	limiter:
//	  max_calls: 1
//	  per: minute
func KeyedConfigFromYAML(data []byte) (*KeyedConfig, error) {
	var out KeyedConfig
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("could not parse keyed limiter configuration: %w", err)
	}
	return &out, nil
}
