package handler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollRegistryStopsOnSuccess(t *testing.T) {
	r := newPollRegistry(5*time.Millisecond, time.Second)

	var calls int32
	r.Start(1, func(ctx context.Context) bool {
		return atomic.AddInt32(&calls, 1) >= 3
	})

	require.Eventually(t, func() bool { return !r.active(1) }, time.Second, 5*time.Millisecond)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestPollRegistryExternalStop(t *testing.T) {
	r := newPollRegistry(5*time.Millisecond, time.Second)

	var calls int32
	r.Start(7, func(ctx context.Context) bool {
		atomic.AddInt32(&calls, 1)
		return false
	})
	require.True(t, r.active(7))

	r.Stop(7)
	require.Eventually(t, func() bool { return !r.active(7) }, time.Second, 5*time.Millisecond)

	// Sau khi stop không được gọi check thêm nữa
	settled := atomic.LoadInt32(&calls)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, atomic.LoadInt32(&calls))
}

func TestPollRegistryDeadline(t *testing.T) {
	r := newPollRegistry(5*time.Millisecond, 25*time.Millisecond)

	r.Start(2, func(ctx context.Context) bool { return false })

	require.Eventually(t, func() bool { return !r.active(2) }, time.Second, 5*time.Millisecond)
}

func TestPollRegistryRestartReplaces(t *testing.T) {
	r := newPollRegistry(5*time.Millisecond, time.Second)

	var first, second int32
	r.Start(3, func(ctx context.Context) bool {
		atomic.AddInt32(&first, 1)
		return false
	})
	r.Start(3, func(ctx context.Context) bool {
		atomic.AddInt32(&second, 1)
		return false
	})
	defer r.Stop(3)

	require.Eventually(t, func() bool { return atomic.LoadInt32(&second) > 0 }, time.Second, 5*time.Millisecond)

	// Vòng poll cũ đã bị thay, không chạy song song
	settled := atomic.LoadInt32(&first)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, atomic.LoadInt32(&first))
}

func TestPollRegistryStopAll(t *testing.T) {
	r := newPollRegistry(5*time.Millisecond, time.Second)

	for id := uint(1); id <= 5; id++ {
		r.Start(id, func(ctx context.Context) bool { return false })
	}
	r.StopAll()

	for id := uint(1); id <= 5; id++ {
		assert.False(t, r.active(id), "poll %d phải dừng", id)
	}
}
