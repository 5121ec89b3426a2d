package matchmaking

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_Enqueue(t *testing.T) {
	t.Run("Enqueue is idempotent", func(t *testing.T) {
		// Given: an empty queue
		queue := New()

		// When: the same player enqueues twice
		first := queue.Enqueue("player1")
		second := queue.Enqueue("player1")

		// Then: only the first enqueue takes effect
		assert.True(t, first)
		assert.False(t, second)
		assert.Equal(t, 1, queue.Len())
	})

	t.Run("Concurrent duplicate enqueues leave one entry", func(t *testing.T) {
		queue := New()

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				queue.Enqueue("player1")
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, queue.Len())
	})
}

func TestQueue_DequeuePair(t *testing.T) {
	t.Run("Returns players in arrival order", func(t *testing.T) {
		// Given: three waiting players
		queue := New()
		queue.Enqueue("player1")
		queue.Enqueue("player2")
		queue.Enqueue("player3")

		// When: a pair is dequeued
		first, second, ok := queue.DequeuePair()

		// Then: the two longest-waiting players come out in arrival order
		require.True(t, ok)
		assert.Equal(t, "player1", first)
		assert.Equal(t, "player2", second)
		assert.Equal(t, 1, queue.Len())
		assert.True(t, queue.Contains("player3"))
	})

	t.Run("Fails with fewer than two entries", func(t *testing.T) {
		queue := New()
		queue.Enqueue("player1")

		_, _, ok := queue.DequeuePair()

		assert.False(t, ok)
		assert.Equal(t, 1, queue.Len())
	})

	t.Run("Concurrent pairing never pairs a player twice", func(t *testing.T) {
		// Given: 100 distinct waiting players
		queue := New()
		const players = 100
		for i := 0; i < players; i++ {
			queue.Enqueue(fmt.Sprintf("player%d", i))
		}

		// When: many goroutines race to dequeue pairs
		var mu sync.Mutex
		seen := make(map[string]int)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					first, second, ok := queue.DequeuePair()
					if !ok {
						return
					}
					mu.Lock()
					seen[first]++
					seen[second]++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		// Then: every player was paired exactly once and the queue drained
		require.Len(t, seen, players)
		for id, count := range seen {
			assert.Equalf(t, 1, count, "player %s paired %d times", id, count)
		}
		assert.Equal(t, 0, queue.Len())
	})
}

func TestQueue_Cancel(t *testing.T) {
	t.Run("Removes a waiting player", func(t *testing.T) {
		queue := New()
		queue.Enqueue("player1")
		queue.Enqueue("player2")

		ok := queue.Cancel("player1")

		assert.True(t, ok)
		assert.False(t, queue.Contains("player1"))
		assert.Equal(t, 1, queue.Len())
	})

	t.Run("No-op for an unknown player", func(t *testing.T) {
		queue := New()

		assert.False(t, queue.Cancel("ghost"))
	})

	t.Run("Stale cancel after pairing is a no-op", func(t *testing.T) {
		// Given: two players already claimed by a pairing
		queue := New()
		queue.Enqueue("player1")
		queue.Enqueue("player2")

		_, _, ok := queue.DequeuePair()
		require.True(t, ok)

		// When: one of them cancels afterwards
		cancelled := queue.Cancel("player1")

		// Then: the cancel reports failure instead of silently succeeding
		assert.False(t, cancelled)
	})

	t.Run("Cancel keeps FIFO order for the rest", func(t *testing.T) {
		queue := New()
		queue.Enqueue("player1")
		queue.Enqueue("player2")
		queue.Enqueue("player3")

		queue.Cancel("player2")

		first, second, ok := queue.DequeuePair()
		require.True(t, ok)
		assert.Equal(t, "player1", first)
		assert.Equal(t, "player3", second)
	})
}
