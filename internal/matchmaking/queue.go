// Package matchmaking holds the FIFO queue of players waiting for an opponent.
package matchmaking

import "sync"

// Queue - a strict insertion-order waiting list with duplicate protection.
// All operations are atomic under one lock, so a pairing can never race a
// cancel or a second enqueue into an inconsistent state.
type Queue struct {
	mu     sync.Mutex
	order  []string
	queued map[string]struct{}
}

func New() *Queue {
	return &Queue{
		queued: make(map[string]struct{}),
	}
}

// Enqueue - adds playerID to the back of the queue.
// Returns false without changes if the player is already waiting.
func (that *Queue) Enqueue(playerID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.queued[playerID]; ok {
		return false
	}

	that.queued[playerID] = struct{}{}
	that.order = append(that.order, playerID)

	return true
}

// DequeuePair - atomically removes the two longest-waiting players.
// first arrived before second and becomes the first-turn player.
func (that *Queue) DequeuePair() (first, second string, ok bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.order) < 2 {
		return "", "", false
	}

	first, second = that.order[0], that.order[1]
	that.order = that.order[2:]
	delete(that.queued, first)
	delete(that.queued, second)

	return first, second, true
}

// Cancel - removes playerID if still queued. Returns false if the player was
// not waiting, e.g. because a pairing already claimed the entry.
func (that *Queue) Cancel(playerID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.queued[playerID]; !ok {
		return false
	}

	delete(that.queued, playerID)

	for i, id := range that.order {
		if id == playerID {
			that.order = append(that.order[:i], that.order[i+1:]...)
			break
		}
	}

	return true
}

func (that *Queue) Contains(playerID string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, ok := that.queued[playerID]

	return ok
}

func (that *Queue) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.order)
}
