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

func TestFuture_Wait(t *testing.T) {
	f := Go(func() (int, error) { return 42, nil })
	v, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.NotEmpty(t, f.ID)

	select {
	case <-f.Done():
	default:
		t.Fatal("Done should be closed after Wait returned a value")
	}
}

func TestFuture_RecoversPanic(t *testing.T) {
	f := Go(func() (int, error) { panic("dividers are not sorted") })
	v, err := f.Wait(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dividers are not sorted")
	assert.Zero(t, v)
}

func TestFuture_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	f := Go(func() (string, error) { return "", boom })
	_, err := f.Wait(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestFuture_WaitHonoursContext(t *testing.T) {
	release := make(chan struct{})
	f := Go(func() (int, error) {
		<-release
		return 7, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// the computation keeps running and can still be collected
	close(release)
	v, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestRun_PreservesOrderAndBoundsConcurrency(t *testing.T) {
	var running, peak int32
	jobs := []int{1, 2, 3, 4, 5, 6, 7, 8}

	res, err := Run(context.Background(), Pool{Size: 3}, jobs, func(_ context.Context, n int) (int, error) {
		cur := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if cur <= p || atomic.CompareAndSwapInt32(&peak, p, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return n * n, nil
	})
	require.NoError(t, err)
	require.Len(t, res, len(jobs))
	for i, r := range res {
		assert.NoError(t, r.Err)
		assert.Equal(t, jobs[i]*jobs[i], r.Value)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestRun_ErrorsArePerJob(t *testing.T) {
	res, err := Run(context.Background(), Pool{}, []string{"ok", "bad", "ok"}, func(_ context.Context, s string) (string, error) {
		if s == "bad" {
			return "", errors.New("bad input")
		}
		return s, nil
	})
	require.NoError(t, err)
	assert.NoError(t, res[0].Err)
	assert.Error(t, res[1].Err)
	assert.Equal(t, "ok", res[2].Value)
}

func TestRun_PanicBecomesJobError(t *testing.T) {
	res, err := Run(context.Background(), Pool{Size: 2}, []int{1, 0, 2}, func(_ context.Context, n int) (int, error) {
		if n == 0 {
			panic("zero")
		}
		return 10 / n, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 10, res[0].Value)
	require.Error(t, res[1].Err)
	assert.Contains(t, res[1].Err.Error(), "panicked: zero")
	assert.Equal(t, 5, res[2].Value)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls int32
	_, err := Run(ctx, Pool{Size: 2}, []int{1, 2, 3}, func(context.Context, int) (int, error) {
		atomic.AddInt32(&calls, 1)
		return 0, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, atomic.LoadInt32(&calls))
}
