package render

import (
	"sort"
	"sync"
	"time"
)

// GameOverPause is added after the last flip before the result is shown.
const GameOverPause = 500 * time.Millisecond

// Task is a visual effect scheduled Delay after the triggering event.
// Index orders tasks with equal delays.
type Task struct {
	Index int
	Delay time.Duration
	Apply func()
}

// RevealTasks returns one flip per outcome, the i-th after i*step.
// after, if non-nil, runs once each flip has been applied.
func RevealTasks(g *Grid, row int, outcomes []Outcome, step time.Duration, after func()) []Task {
	tasks := make([]Task, len(outcomes))
	for i, o := range outcomes {
		i, o := i, o
		tasks[i] = Task{
			Index: i,
			Delay: time.Duration(i) * step,
			Apply: func() {
				g.Flip(row, i, o)
				if after != nil {
					after()
				}
			},
		}
	}
	return tasks
}

// GameOverDelay is when the final result appears: after every tile of a
// wordLength row has flipped, plus GameOverPause.
func GameOverDelay(wordLength int, step time.Duration) time.Duration {
	return time.Duration(wordLength)*step + GameOverPause
}

// Scheduler runs visual-effect tasks.
type Scheduler interface {
	Schedule(tasks ...Task)
	// Wait blocks until every scheduled task has run.
	Wait()
}

// Realtime runs each task on a timer.
type Realtime struct {
	wg sync.WaitGroup
}

func NewRealtime() *Realtime { return &Realtime{} }

func (s *Realtime) Schedule(tasks ...Task) {
	for _, t := range tasks {
		t := t
		s.wg.Add(1)
		time.AfterFunc(t.Delay, func() {
			defer s.wg.Done()
			t.Apply()
		})
	}
}

func (s *Realtime) Wait() { s.wg.Wait() }

// Immediate runs tasks synchronously in (Delay, Index) order and records
// what it ran. Used in tests and when animations are disabled.
type Immediate struct {
	mu  sync.Mutex
	Ran []Task
}

func (s *Immediate) Schedule(tasks ...Task) {
	ordered := append([]Task(nil), tasks...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Delay != ordered[j].Delay {
			return ordered[i].Delay < ordered[j].Delay
		}
		return ordered[i].Index < ordered[j].Index
	})
	for _, t := range ordered {
		t.Apply()
		s.mu.Lock()
		s.Ran = append(s.Ran, t)
		s.mu.Unlock()
	}
}

func (s *Immediate) Wait() {}
