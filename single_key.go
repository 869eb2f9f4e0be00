package nospam

import (
	"strings"
)

type keyedLimiterSingleKeyProxy struct {
	proxied *KeyedLimiter
	key     string
}

// ForKey returns a semplified proxy that applies the limiting
// for the specified key, dropping the key input parameter.
//
// Please note that this does not create a new limiter instance,
// it just proxies the calls to the keyed limiter adding a fixed key.
func (instance *KeyedLimiter) ForKey(key string) Limiter {
	if strings.TrimSpace(key) == "" {
		panic("key must not be blank")
	}
	proxy := keyedLimiterSingleKeyProxy{
		proxied: instance,
		key:     key,
	}
	return &proxy
}

func (instance *keyedLimiterSingleKeyProxy) Attempt(action Action) {
	instance.proxied.Attempt(instance.key, action)
}

func (instance *keyedLimiterSingleKeyProxy) Count() uint64 {
	return instance.proxied.Count(instance.key)
}
