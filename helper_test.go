package nospam

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const (
	defaultMaxCalls     = 5
	defaultStartTimeMs  = 1000000
	defaultTestGateName = "test-gate"
)

type testClock struct {
	// CurrentTime is in milliseconds
	CurrentTime uint64
}

func (c *testClock) Now() time.Time {
	return time.UnixMilli(int64(c.CurrentTime))
}
func (c *testClock) TimeSet(to uint64) {
	c.CurrentTime = to
}
func (c *testClock) TimeTravel(diff int64) {
	c.CurrentTime = uint64(int64(c.CurrentTime) + diff)
}

func newTestClock() *testClock {
	return &testClock{
		CurrentTime: defaultStartTimeMs,
	}
}

type testLogger struct {
	Messages []string
}

func (l *testLogger) Debug(text string) {
	l.Messages = append(l.Messages, fmt.Sprintf("[d] %v", text))
}
func (l *testLogger) Info(text string) {
	l.Messages = append(l.Messages, fmt.Sprintf("[i] %v", text))
}
func (l *testLogger) Warning(text string) {
	l.Messages = append(l.Messages, fmt.Sprintf("[w] %v", text))
}
func (l *testLogger) Error(text string) {
	l.Messages = append(l.Messages, fmt.Sprintf("[e] %v", text))
}

func (l *testLogger) CountWithPrefix(prefix string) int {
	n := 0
	for _, m := range l.Messages {
		if len(m) >= len(prefix) && m[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

type testObserver struct {
	lock      sync.Mutex
	Permitted map[string]int
	Skipped   map[string]int
	Resets    map[string]int
}

func newTestObserver() *testObserver {
	return &testObserver{
		Permitted: make(map[string]int),
		Skipped:   make(map[string]int),
		Resets:    make(map[string]int),
	}
}

func (o *testObserver) Gated(gate string, permitted bool) {
	o.lock.Lock()
	defer o.lock.Unlock()
	if permitted {
		o.Permitted[gate]++
	} else {
		o.Skipped[gate]++
	}
}
func (o *testObserver) WindowReset(gate string) {
	o.lock.Lock()
	defer o.lock.Unlock()
	o.Resets[gate]++
}

type testableInstance struct {
	*testClock
	Instance *WindowedLimiter
	Logger   *testLogger
	Observer *testObserver

	// Calls collects the counts received by the actions run through Run.
	Calls []uint64
}

// Run attempts n times collecting the counts received by the action.
func (ti *testableInstance) Run(n int) {
	for i := 0; i < n; i++ {
		ti.Instance.Attempt(func(count uint64) {
			ti.Calls = append(ti.Calls, count)
		})
	}
}

func (ti *testableInstance) AssertCalls(t *testing.T, expected int) {
	assert.Equal(t, expected, len(ti.Calls), "the action is expected to have run %v times and ran %v times", expected, len(ti.Calls))
}

func buildInstance(t *testing.T, configurer func(config *Config)) *testableInstance {
	ti := testableInstance{
		testClock: newTestClock(),
		Logger:    &testLogger{},
		Observer:  newTestObserver(),
	}

	config := Config{
		Name:     defaultTestGateName,
		MaxCalls: defaultMaxCalls,
		Per:      Second,
		TimeFunc: ti.Now,
		Logger:   ti.Logger,
		Observer: ti.Observer,
	}

	if configurer != nil {
		configurer(&config)
	}

	instance, err := New(&config)

	if t != nil {
		assert.NotNil(t, instance)
		assert.Nil(t, err)
	}

	ti.Instance = instance

	return &ti
}

func buildDefaultInstance(t *testing.T) *testableInstance {
	return buildInstance(t, nil)
}

type compositeTestableInstance struct {
	*testClock
	Instance *CompositeLimiter
	Observer *testObserver
	Calls    []uint64
}

func (ti *compositeTestableInstance) Run(n int) {
	for i := 0; i < n; i++ {
		ti.Instance.Attempt(func(count uint64) {
			ti.Calls = append(ti.Calls, count)
		})
	}
}

func buildCompositeInstance(t *testing.T, configurer func(config *CompositeConfig)) *compositeTestableInstance {
	ti := compositeTestableInstance{
		testClock: newTestClock(),
		Observer:  newTestObserver(),
	}

	config := CompositeConfig{
		Name: defaultTestGateName,
		Limiters: []Config{
			{
				MaxCalls: 5,
				Per:      Second,
			},
			{
				MaxCalls: 20,
				Per:      Minute,
			},
		},
		TimeFunc: ti.Now,
		Logger:   NewNoOpLogger(),
		Observer: ti.Observer,
	}

	if configurer != nil {
		configurer(&config)
	}

	instance, err := NewComposite(&config)

	if t != nil {
		assert.NotNil(t, instance)
		assert.Nil(t, err)
	}

	ti.Instance = instance

	return &ti
}

func buildDefaultCompositeInstance(t *testing.T) *compositeTestableInstance {
	return buildCompositeInstance(t, nil)
}

type keyedTestableInstance struct {
	*testClock
	Instance *KeyedLimiter
	Logger   *testLogger
	Observer *testObserver
	Calls    map[string][]uint64
}

func (ti *keyedTestableInstance) Run(key string, n int) {
	for i := 0; i < n; i++ {
		ti.Instance.Attempt(key, func(count uint64) {
			ti.Calls[key] = append(ti.Calls[key], count)
		})
	}
}

func buildKeyedInstance(t *testing.T, configurer func(config *KeyedConfig)) *keyedTestableInstance {
	ti := keyedTestableInstance{
		testClock: newTestClock(),
		Logger:    &testLogger{},
		Observer:  newTestObserver(),
		Calls:     make(map[string][]uint64),
	}

	config := KeyedConfig{
		Limiter: Config{
			Name:     defaultTestGateName,
			MaxCalls: defaultMaxCalls,
			Per:      Second,
			TimeFunc: ti.Now,
			Logger:   ti.Logger,
			Observer: ti.Observer,
		},
	}

	if configurer != nil {
		configurer(&config)
	}

	instance, err := NewKeyed(&config)

	if t != nil {
		assert.NotNil(t, instance)
		assert.Nil(t, err)
	}

	ti.Instance = instance

	return &ti
}
