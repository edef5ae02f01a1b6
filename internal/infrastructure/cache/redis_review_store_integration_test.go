//go:build integration

package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRedisReviewStore_Container(t *testing.T) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	store, err := NewRedisReviewStore(ctx, RedisConfig{
		Addr:      fmt.Sprintf("%s:%s", host, port.Port()),
		KeyPrefix: "pricebook-test:",
	})
	require.NoError(t, err)
	defer store.Close()

	t.Run("round trip", func(t *testing.T) {
		review := newTestReview(t, "r-1")
		require.NoError(t, store.Put(ctx, review, time.Minute))

		got, err := store.Get(ctx, "r-1")
		require.NoError(t, err)
		assert.Equal(t, review.Source, got.Source)
		assert.Equal(t, review.Rows, got.Rows)
		assert.True(t, review.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("only one concurrent take wins", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, newTestReview(t, "r-2"), time.Minute))

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := store.Take(ctx, "r-2"); err == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, wins)
	})

	t.Run("expires", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, newTestReview(t, "r-3"), time.Second))
		assert.Eventually(t, func() bool {
			_, err := store.Get(ctx, "r-3")
			return err == pricebook.ErrReviewNotFound
		}, 5*time.Second, 100*time.Millisecond)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, newTestReview(t, "r-4"), time.Minute))
		removed, err := store.Delete(ctx, "r-4")
		require.NoError(t, err)
		assert.True(t, removed)
		removed, err = store.Delete(ctx, "r-4")
		require.NoError(t, err)
		assert.False(t, removed)
	})
}
