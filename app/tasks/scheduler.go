package tasks

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

var ErrBuildPending = errors.New("a build is already queued")

type BuildStatus struct {
	LastAttemptAt *time.Time
	LastSuccessAt *time.Time
	LastError     string
	Builds        int
	Result        BuildResult
}

// Scheduler rebuilds the feed on a fixed interval. A single worker runs the
// builds, so two builds never write the output file at the same time.
type Scheduler struct {
	newTask   func() *BuildFeedTask
	interval  time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	taskQueue chan TaskInterface

	mu     sync.RWMutex
	status BuildStatus
}

func NewScheduler(newTask func() *BuildFeedTask, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		newTask:   newTask,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
		taskQueue: make(chan TaskInterface, 1),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.worker()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		s.enqueueBuild()

		if s.interval <= 0 {
			return
		}

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueBuild()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return ErrBuildPending
	}
}

func (s *Scheduler) Status() BuildStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Scheduler) enqueueBuild() {
	if err := s.EnqueueTask(s.newTask()); err != nil {
		slog.Debug("Skipping scheduled build", "reason", err)
	}
}

func (s *Scheduler) worker() {
	defer s.wg.Done()

	for {
		select {
		case task := <-s.taskQueue:
			s.executeTask(task)
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(task TaskInterface) {
	task.Start()

	err := task.Execute(s.ctx)

	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.status.LastAttemptAt = &now
	s.status.Builds++

	if err != nil {
		// The previous output file stays in place
		s.status.LastError = err.Error()
		slog.Error("Build failed", "type", string(task.GetType()), "id", task.GetID(), "feed", task.GetFeedName(), "error", err)
		return
	}

	s.status.LastError = ""
	s.status.LastSuccessAt = &now
	if build, ok := task.(*BuildFeedTask); ok {
		s.status.Result = build.Result
	}
}
