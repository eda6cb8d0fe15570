package unbounded

import (
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// taskPool runs monster turns and attack animations off the main loop. An
// inline pool runs every task right away on the caller's goroutine, which
// keeps headless games deterministic.
type taskPool struct {
	group  errgroup.Group
	inline bool
}

func newTaskPool(workers int, inline bool) *taskPool {
	pool := &taskPool{inline: inline}
	if workers > 0 {
		pool.group.SetLimit(workers)
	}
	return pool
}

// Go submits a task, blocking while every worker is busy
func (p *taskPool) Go(task func()) {
	if p.inline {
		task()
		return
	}

	p.group.Go(func() error {
		task()
		return nil
	})
}

// Drain waits for everything submitted so far
func (p *taskPool) Drain() {
	p.group.Wait()
}

// Shutdown gives pending tasks up to grace to finish. Tasks are never
// interrupted; ones still running after grace are abandoned.
func (p *taskPool) Shutdown(grace time.Duration) bool {
	done := make(chan struct{})
	go func() {
		p.group.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(grace):
		log.Warnf("Tasks still running after %v, giving up on them", grace)
		return false
	}
}
