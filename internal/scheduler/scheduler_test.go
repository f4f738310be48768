package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/today-forecast/internal/resolver"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (c *countingRefresher) Refresh(context.Context) (resolver.Result, error) {
	c.calls.Add(1)
	return resolver.Result{}, c.err
}

func TestSchedulerDisabled(t *testing.T) {
	r := &countingRefresher{}
	s := New(0, 0, r)
	require.NoError(t, s.Start())
	s.Stop()
	assert.Equal(t, int32(0), r.calls.Load())
}

func TestSchedulerRefreshesPeriodically(t *testing.T) {
	r := &countingRefresher{err: resolver.ErrNoLocation}
	s := New(20*time.Millisecond, time.Second, r)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return r.calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestRefreshNowIgnoresInterval(t *testing.T) {
	r := &countingRefresher{}
	s := New(0, time.Second, r)
	require.NoError(t, s.Start())
	defer s.Stop()

	s.RefreshNow()
	assert.Equal(t, int32(1), r.calls.Load())
}
