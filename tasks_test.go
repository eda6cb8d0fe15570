package unbounded

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestInlineTaskPool(t *testing.T) {
	pool := newTaskPool(4, true)

	ran := false
	pool.Go(func() { ran = true })
	if !ran {
		t.Error("inline task did not run before Go returned")
	}
	if !pool.Shutdown(time.Millisecond) {
		t.Error("an inline pool has nothing to wait for")
	}
}

func TestTaskPoolDrain(t *testing.T) {
	pool := newTaskPool(3, false)

	var count int32
	for i := 0; i < 10; i++ {
		pool.Go(func() {
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&count, 1)
		})
	}
	pool.Drain()

	if n := atomic.LoadInt32(&count); n != 10 {
		t.Errorf("%d tasks finished after Drain", n)
	}
}

func TestTaskPoolShutdownGivesUp(t *testing.T) {
	pool := newTaskPool(1, false)

	release := make(chan struct{})
	defer close(release)
	pool.Go(func() { <-release })

	if pool.Shutdown(20 * time.Millisecond) {
		t.Error("shutdown reported a blocked task as finished")
	}
}
