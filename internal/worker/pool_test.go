package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockResult struct {
	id  int
	err error
}

func (r *mockResult) GetError() error {
	return r.err
}

type mockJob struct {
	id       int
	duration time.Duration
	err      error
	running  *int32
	peak     *int32
}

func (j *mockJob) Execute(ctx context.Context) Result {
	if j.running != nil {
		n := atomic.AddInt32(j.running, 1)
		defer atomic.AddInt32(j.running, -1)
		for {
			p := atomic.LoadInt32(j.peak)
			if n <= p || atomic.CompareAndSwapInt32(j.peak, p, n) {
				break
			}
		}
	}
	if j.duration > 0 {
		select {
		case <-time.After(j.duration):
		case <-ctx.Done():
			return &mockResult{id: j.id, err: ctx.Err()}
		}
	}
	return &mockResult{id: j.id, err: j.err}
}

func TestPool_RunKeepsOrder(t *testing.T) {
	jobs := make([]Job, 20)
	for i := range jobs {
		// later jobs finish first
		jobs[i] = &mockJob{id: i, duration: time.Duration(20-i) * time.Millisecond}
	}

	results := NewPool(4).Run(context.Background(), jobs)
	require.Len(t, results, 20)
	for i, r := range results {
		assert.Equal(t, i, r.(*mockResult).id)
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	var running, peak int32
	jobs := make([]Job, 12)
	for i := range jobs {
		jobs[i] = &mockJob{id: i, duration: 10 * time.Millisecond, running: &running, peak: &peak}
	}

	NewPool(3).Run(context.Background(), jobs)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
	assert.Greater(t, atomic.LoadInt32(&peak), int32(0))
}

func TestPool_Errors(t *testing.T) {
	boom := errors.New("boom")
	results := NewPool(2).Run(context.Background(), []Job{
		&mockJob{id: 0},
		&mockJob{id: 1, err: boom},
	})
	assert.NoError(t, results[0].GetError())
	assert.ErrorIs(t, results[1].GetError(), boom)
}

func TestPool_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := NewPool(2).Run(ctx, []Job{&mockJob{id: 0}, &mockJob{id: 1}})
	for _, r := range results {
		assert.ErrorIs(t, r.GetError(), context.Canceled)
	}
}

func TestPool_Empty(t *testing.T) {
	assert.Empty(t, NewPool(0).Run(context.Background(), nil))
	assert.Equal(t, 1, NewPool(0).Workers())
}
