package locks

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := NewRedisClient(context.Background(), mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func exerciseRedisLocker(t *testing.T, rdb *redis.Client) {
	ctx := context.Background()
	l := NewRedisLocker(rdb, time.Second)
	room := uuid.NewString()

	unlock, err := l.Lock(ctx, room)
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 150*time.Millisecond)
	defer cancel()
	_, err = l.Lock(waitCtx, room)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock()
	exists, err := rdb.Exists(ctx, fmt.Sprintf(KeyRoomLock, room)).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)

	again, err := l.Lock(ctx, room)
	require.NoError(t, err)
	again()
}

func TestRedisLocker(t *testing.T) {
	_, rdb := newMiniRedis(t)
	exerciseRedisLocker(t, rdb)
}

// Runs against a real server; set REDIS_ADDR to enable.
func TestRedisLockerLiveServer(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb, err := NewRedisClient(context.Background(), addr)
	require.NoError(t, err)
	defer rdb.Close()
	exerciseRedisLocker(t, rdb)
}

func TestRedisLockerStoresTokenWithTTL(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	l := NewRedisLocker(rdb, 3*time.Second)
	room := uuid.NewString()
	key := fmt.Sprintf(KeyRoomLock, room)

	unlock, err := l.Lock(context.Background(), room)
	require.NoError(t, err)

	require.True(t, mr.Exists(key))
	token, err := mr.Get(key)
	require.NoError(t, err)
	_, err = uuid.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, 3*time.Second, mr.TTL(key))

	unlock()
	assert.False(t, mr.Exists(key))
}

func TestRedisLockerWaitsForRelease(t *testing.T) {
	_, rdb := newMiniRedis(t)
	l := NewRedisLocker(rdb, time.Second)
	room := uuid.NewString()

	unlock, err := l.Lock(context.Background(), room)
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		next, err := l.Lock(context.Background(), room)
		if err == nil {
			next()
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock returned while the first was held")
	case <-time.After(120 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("second Lock did not acquire after release")
	}
}

func TestRedisLockerCanceledWhileWaiting(t *testing.T) {
	_, rdb := newMiniRedis(t)
	l := NewRedisLocker(rdb, time.Second)
	room := uuid.NewString()

	unlock, err := l.Lock(context.Background(), room)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(80 * time.Millisecond)
		cancel()
	}()
	_, err = l.Lock(ctx, room)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRedisLockerStaleUnlockKeepsNewOwner(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	l := NewRedisLocker(rdb, time.Second)
	room := uuid.NewString()
	key := fmt.Sprintf(KeyRoomLock, room)

	stale, err := l.Lock(context.Background(), room)
	require.NoError(t, err)

	// the first holder's lease runs out and someone else takes the room
	mr.FastForward(2 * time.Second)
	require.False(t, mr.Exists(key))
	current, err := l.Lock(context.Background(), room)
	require.NoError(t, err)
	owner, err := mr.Get(key)
	require.NoError(t, err)

	stale()
	require.True(t, mr.Exists(key))
	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, owner, got)

	current()
	assert.False(t, mr.Exists(key))
}

func TestRedisLockerConcurrentUnlock(t *testing.T) {
	mr, rdb := newMiniRedis(t)
	l := NewRedisLocker(rdb, time.Second)
	room := uuid.NewString()

	unlock, err := l.Lock(context.Background(), room)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock()
		}()
	}
	wg.Wait()
	assert.False(t, mr.Exists(fmt.Sprintf(KeyRoomLock, room)))
}
