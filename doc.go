// A small call-throttling module: gate a callback so that it runs at most N times per window,
// or on average N times over an estimated call volume.
//
// Features:
//
// - Fixed window counters per second, minute, hour or day, reset lazily on the next attempt
//
// - Skipped calls are dropped, never queued or delayed
//
// - Probabilistic sampling for very hot paths (ex. per-frame error logging) with no state at all
//
// - Composite limiters to combine several windows on the same action
//
// - Keyed limiters to throttle each message/key independently, with a bounded key set
//
// - Pluggable logging (hclog by default) and gating observers (Prometheus observer included)
//
// - YAML configuration
//
// WindowedLimiter and CompositeLimiter are NOT thread safe:
// they are meant to be owned by a single goroutine.
// Wrap calls with your own lock if you need to share them.
// KeyedLimiter and the sampler can be shared.
package nospam
