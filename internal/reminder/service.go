package reminder

import (
	"container/heap"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/praxable/praxable-cli/internal/agenda"
	"github.com/praxable/praxable-cli/internal/logger"
	"github.com/praxable/praxable-cli/internal/models"
)

var (
	ErrStopped     = errors.New("reminder service stopped")
	ErrInvalidTime = errors.New("reminder has no fire time")
)

// Notifier delivers one notification.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// Service owns a queue of reminders and fires each through its Notifier when
// due. It must be started before reminders fire and stopped to release its
// goroutine.
type Service struct {
	notifier Notifier
	now      func() time.Time

	mu      sync.Mutex
	queue   queue
	ids     map[string]struct{}
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool

	// Fired, when set, observes every delivery attempt.
	Fired func(Reminder, error)
}

// NewService creates a stopped service delivering through n.
func NewService(n Notifier) *Service {
	return &Service{
		notifier: n,
		now:      time.Now,
		ids:      make(map[string]struct{}),
		wakeup:   make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the delivery loop. It is a no-op when already started.
func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true
	heap.Init(&s.queue)
	go s.loop(ctx)
}

// Stop ends the delivery loop and waits for it. Pending reminders are dropped.
func (s *Service) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.stopCh)
	started := s.started
	s.mu.Unlock()

	if started {
		<-s.doneCh
	}
}

// Done is closed once the loop has exited.
func (s *Service) Done() <-chan struct{} {
	return s.doneCh
}

// Schedule queues r. A reminder with an id already queued replaces it.
func (s *Service) Schedule(r Reminder) error {
	if r.FireAt.IsZero() {
		return ErrInvalidTime
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return ErrStopped
	}
	if _, dup := s.ids[r.ID]; dup {
		s.queue.remove(r.ID)
	}
	heap.Push(&s.queue, r)
	s.ids[r.ID] = struct{}{}
	s.signal()
	return nil
}

// ScheduleTasks plans a reminder for every pending task with a bare planned
// time and returns what was queued. Tasks without one are skipped.
func (s *Service) ScheduleTasks(tasks []models.TaskData) ([]Reminder, error) {
	now := s.now()
	var out []Reminder
	for _, t := range tasks {
		if t.Done() || t.PlannedTime == "" {
			continue
		}
		start, _ := agenda.SplitPreference(t.PlannedTime)
		r, err := Plan(t.Task, start, now)
		if err != nil {
			logger.Debug("Skipping reminder", "task", t.Task, "planned_time", t.PlannedTime, "error", err)
			continue
		}
		if err := s.Schedule(r); err != nil {
			return out, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Cancel removes a queued reminder.
func (s *Service) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
	ok := s.queue.remove(id)
	if ok {
		s.signal()
	}
	return ok
}

// CancelAll empties the queue.
func (s *Service) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = s.queue[:0]
	s.ids = make(map[string]struct{})
	s.signal()
}

// Pending returns the queued reminders in firing order.
func (s *Service) Pending() []Reminder {
	s.mu.Lock()
	cp := make(queue, len(s.queue))
	copy(cp, s.queue)
	s.mu.Unlock()

	out := make([]Reminder, 0, len(cp))
	for cp.Len() > 0 {
		out = append(out, heap.Pop(&cp).(Reminder))
	}
	return out
}

func (s *Service) signal() {
	select {
	case s.wakeup <- struct{}{}:
	default:
	}
}

func (s *Service) loop(ctx context.Context) {
	defer close(s.doneCh)

	var timer *time.Timer
	defer func() { stopTimer(timer) }()
	for {
		next, ok := s.peek()
		if !ok {
			select {
			case <-s.wakeup:
				continue
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}

		wait := next.FireAt.Sub(s.now())
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			for _, r := range s.popDue(s.now()) {
				s.deliver(ctx, r)
			}
		case <-s.wakeup:
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Service) deliver(ctx context.Context, r Reminder) {
	err := s.notifier.Notify(ctx, Title, r.Body())
	if err != nil {
		logger.Warn("Reminder delivery failed", "task", r.Task, "error", err)
	} else {
		logger.Info("Reminder delivered", "task", r.Task, "starts_at", r.StartsAt)
	}
	if s.Fired != nil {
		s.Fired(r, err)
	}
}

func (s *Service) peek() (Reminder, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return Reminder{}, false
	}
	return s.queue[0], true
}

func (s *Service) popDue(now time.Time) []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []Reminder
	for len(s.queue) > 0 && !s.queue[0].FireAt.After(now) {
		r := heap.Pop(&s.queue).(Reminder)
		delete(s.ids, r.ID)
		due = append(due, r)
	}
	return due
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
