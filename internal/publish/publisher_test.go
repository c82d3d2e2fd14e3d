package publish

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	mu      sync.Mutex
	calls   [][]string
	outputs map[string]string
	errs    map[string]error
}

func (f *fakeRunner) Git(_ context.Context, args ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, args)
	return f.outputs[args[0]], f.errs[args[0]]
}

func (f *fakeRunner) commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.calls {
		out = append(out, strings.Join(c, " "))
	}
	return out
}

func testConfig() *Config {
	return Load(func(string) string { return "" })
}

func TestRunNow_Success(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{"commit": "[main abc123] New post"}}
	p := NewPublisher(runner, testConfig())

	job := p.RunNow(context.Background(), "New post")

	assert.Equal(t, StatusSucceeded, job.Status)
	assert.Equal(t, []string{"add .", "commit -m New post", "push origin main"}, runner.commands())
	require.Len(t, job.Output, 3)
	assert.Equal(t, "$ git commit -m New post\n[main abc123] New post", job.Output[1])
	assert.NotNil(t, job.StartedAt)
	assert.NotNil(t, job.FinishedAt)
	assert.Empty(t, job.Error)
}

func TestRunNow_NothingToCommit(t *testing.T) {
	runner := &fakeRunner{
		outputs: map[string]string{"commit": "On branch main\nnothing to commit, working tree clean"},
		errs:    map[string]error{"commit": errors.New("exit status 1")},
	}
	p := NewPublisher(runner, testConfig())

	job := p.RunNow(context.Background(), "msg")

	assert.Equal(t, StatusSucceeded, job.Status)
	assert.Len(t, runner.commands(), 3)
}

func TestRunNow_PushFails(t *testing.T) {
	runner := &fakeRunner{
		outputs: map[string]string{"push": "rejected"},
		errs:    map[string]error{"push": errors.New("exit status 1")},
	}
	p := NewPublisher(runner, testConfig())

	job := p.RunNow(context.Background(), "msg")

	assert.Equal(t, StatusFailed, job.Status)
	assert.Contains(t, job.Error, "git push failed")
	assert.Contains(t, job.Output[2], "rejected")
}

func TestRunNow_DefaultMessage(t *testing.T) {
	runner := &fakeRunner{}
	p := NewPublisher(runner, testConfig())
	p.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	job := p.RunNow(context.Background(), "  ")

	assert.Equal(t, "Update content - 2026-01-02T03:04:05Z", job.Message)
}

func TestEnqueue_WorkerRunsJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPublisher(&fakeRunner{}, testConfig())
	p.Start(ctx)

	queued, err := p.Enqueue("from queue")
	require.NoError(t, err)
	assert.Equal(t, StatusQueued, queued.Status)

	assert.Eventually(t, func() bool {
		job, err := p.Job(queued.ID)
		return err == nil && job.Done()
	}, 5*time.Second, 10*time.Millisecond)

	job, err := p.Job(queued.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, job.Status)

	_, err = p.Job(uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestEnqueue_QueueFull(t *testing.T) {
	p := NewPublisher(&fakeRunner{}, testConfig())

	for i := 0; i < queueSize; i++ {
		_, err := p.Enqueue("m")
		require.NoError(t, err)
	}

	_, err := p.Enqueue("overflow")
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestJobsAreBounded(t *testing.T) {
	p := NewPublisher(&fakeRunner{}, testConfig())

	first := p.RunNow(context.Background(), "first")
	for i := 0; i < keepJobs; i++ {
		p.RunNow(context.Background(), "later")
	}

	_, err := p.Job(first.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobsAreBounded_KeepsUnfinished(t *testing.T) {
	p := NewPublisher(&fakeRunner{}, testConfig())

	queued, err := p.Enqueue("waiting for worker")
	require.NoError(t, err)
	oldestDone := p.RunNow(context.Background(), "done")
	for i := 0; i < keepJobs; i++ {
		p.RunNow(context.Background(), "later")
	}

	job, err := p.Job(queued.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusQueued, job.Status)

	_, err = p.Job(oldestDone.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)

	p.mu.RLock()
	defer p.mu.RUnlock()
	assert.Len(t, p.order, keepJobs)
	assert.Len(t, p.jobs, keepJobs)
}
