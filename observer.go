package nospam

// Observer is notified of every gating decision
// taken by limiters and samplers.
//
// Implementations are called synchronously on the caller goroutine,
// so they should be fast and must not call back into the gate.
//
// A Prometheus implementation is available via nospam.NewPrometheusObserver(...).
type Observer interface {
	// Gated is called once per attempt, after the action ran (or was skipped).
	Gated(gate string, permitted bool)

	// WindowReset is called when a windowed limiter clears its counter.
	WindowReset(gate string)
}

func NewNoOpObserver() Observer {
	return &noOpObserver{}
}

type noOpObserver struct {
}

func (o *noOpObserver) Gated(gate string, permitted bool) {
	// NOP
}
func (o *noOpObserver) WindowReset(gate string) {
	// NOP
}
