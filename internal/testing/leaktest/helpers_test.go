package leaktest

import (
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recorder captures failures instead of failing the enclosing test
type recorder struct {
	testing.TB
	mu     sync.Mutex
	failed bool
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(string, ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = true
}

func TestCheckNoGoroutineLeak_WorkerExits(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(time.Millisecond)
		}()
		wg.Wait()
	})
}

func TestCheckNoGoroutineLeak_WaitsForStragglers(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		// Still running when fn returns, gone well within DefaultTimeout.
		go time.Sleep(50 * time.Millisecond)
	})
}

func TestGoroutineChecker_DetectsLeak(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	rec := &recorder{TB: t}
	checker := NewGoroutineChecker(rec)
	go func() { <-done }()

	checker.Check(0)
	assert.True(t, rec.failed)
}

func TestGoroutineChecker_WithinTolerance(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	rec := &recorder{TB: t}
	checker := NewGoroutineChecker(rec)
	go func() { <-done }()

	checker.Check(1)
	assert.False(t, rec.failed)
}

func TestWaitForGoroutines(t *testing.T) {
	WaitForGoroutines(t, runtime.NumGoroutine(), time.Second)
}
