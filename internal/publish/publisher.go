package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const (
	queueSize     = 8
	keepJobs      = 50
	lockRetryWait = 250 * time.Millisecond
)

var (
	ErrQueueFull   = errors.New("publish queue is full")
	ErrJobNotFound = errors.New("publish job not found")
)

// Publisher commits and pushes the content repository. Requests are queued
// and handled one at a time by the worker started with Start; an advisory
// lock keeps other processes (the CLI) from pushing concurrently.
type Publisher struct {
	runner Runner
	cfg    *Config
	lock   *flock.Flock
	queue  chan *Job
	now    func() time.Time

	mu    sync.RWMutex
	jobs  map[uuid.UUID]*Job
	order []uuid.UUID
}

func NewPublisher(runner Runner, cfg *Config) *Publisher {
	return &Publisher{
		runner: runner,
		cfg:    cfg,
		lock:   flock.New(filepath.Join(os.TempDir(), "portfolio-publish.lock")),
		queue:  make(chan *Job, queueSize),
		now:    time.Now,
		jobs:   make(map[uuid.UUID]*Job),
	}
}

// Start runs the worker until ctx is done.
func (p *Publisher) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case job := <-p.queue:
				p.run(ctx, job)
			}
		}
	}()
}

// Enqueue records a job and hands it to the worker.
func (p *Publisher) Enqueue(message string) (Job, error) {
	job := p.newJob(message)

	select {
	case p.queue <- job:
		return p.snapshot(job), nil
	default:
		p.forget(job.ID)
		return Job{}, ErrQueueFull
	}
}

// RunNow publishes synchronously and returns the finished job.
func (p *Publisher) RunNow(ctx context.Context, message string) Job {
	job := p.newJob(message)
	p.run(ctx, job)
	return p.snapshot(job)
}

func (p *Publisher) Job(id uuid.UUID) (Job, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	job, ok := p.jobs[id]
	if !ok {
		return Job{}, ErrJobNotFound
	}
	return copyJob(job), nil
}

func (p *Publisher) newJob(message string) *Job {
	message = strings.TrimSpace(message)
	if message == "" {
		message = "Update content - " + p.now().UTC().Format(time.RFC3339)
	}

	job := &Job{
		ID:        uuid.New(),
		Message:   message,
		Status:    StatusQueued,
		Output:    []string{},
		CreatedAt: p.now(),
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.jobs[job.ID] = job
	p.order = append(p.order, job.ID)
	p.evict()
	return job
}

// evict drops the oldest finished jobs beyond keepJobs. Queued and running
// jobs are always kept. Callers hold p.mu.
func (p *Publisher) evict() {
	excess := len(p.order) - keepJobs
	if excess <= 0 {
		return
	}
	kept := p.order[:0]
	for _, id := range p.order {
		if excess > 0 && p.jobs[id].Done() {
			delete(p.jobs, id)
			excess--
			continue
		}
		kept = append(kept, id)
	}
	p.order = kept
}

func (p *Publisher) forget(id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.jobs, id)
	for i, o := range p.order {
		if o == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

func (p *Publisher) run(ctx context.Context, job *Job) {
	p.update(job, func(j *Job) {
		started := p.now()
		j.Status = StatusRunning
		j.StartedAt = &started
	})

	err := p.publish(ctx, job)

	p.update(job, func(j *Job) {
		finished := p.now()
		j.FinishedAt = &finished
		if err != nil {
			j.Status = StatusFailed
			j.Error = err.Error()
			return
		}
		j.Status = StatusSucceeded
	})

	if err != nil {
		slog.Error("Publish failed", "job", job.ID, "error", err)
		return
	}
	slog.Info("Publish finished", "job", job.ID, "message", job.Message)
}

func (p *Publisher) publish(ctx context.Context, job *Job) error {
	locked, err := p.lock.TryLockContext(ctx, lockRetryWait)
	if err != nil {
		return fmt.Errorf("failed to acquire publish lock: %w", err)
	}
	if !locked {
		return errors.New("failed to acquire publish lock")
	}
	defer p.lock.Unlock()

	if _, err := p.step(ctx, job, "add", "."); err != nil {
		return fmt.Errorf("git add failed: %w", err)
	}

	out, err := p.step(ctx, job, "commit", "-m", job.Message)
	if err != nil {
		if !nothingToCommit(out) {
			return fmt.Errorf("git commit failed: %w", err)
		}
		p.update(job, func(j *Job) {
			j.Output = append(j.Output, "nothing to commit, pushing current branch")
		})
	}

	if _, err := p.step(ctx, job, "push", p.cfg.Remote, p.cfg.Branch); err != nil {
		return fmt.Errorf("git push failed: %w", err)
	}
	return nil
}

func (p *Publisher) step(ctx context.Context, job *Job, args ...string) (string, error) {
	out, err := p.runner.Git(ctx, args...)

	p.update(job, func(j *Job) {
		line := "$ git " + strings.Join(args, " ")
		if out != "" {
			line += "\n" + out
		}
		j.Output = append(j.Output, line)
	})
	return out, err
}

func (p *Publisher) update(job *Job, fn func(*Job)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(job)
}

func (p *Publisher) snapshot(job *Job) Job {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return copyJob(job)
}

func copyJob(job *Job) Job {
	c := *job
	c.Output = make([]string, len(job.Output))
	copy(c.Output, job.Output)
	return c
}

func nothingToCommit(out string) bool {
	return strings.Contains(out, "nothing to commit") || strings.Contains(out, "no changes added to commit")
}
