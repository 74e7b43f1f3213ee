// Package queue provides the FIFO buffer decoupling event processing from
// notification delivery.
package queue

import (
	"sync"

	"scout/internal/domain/entity"
)

// NotificationQueue is an unbounded FIFO with many producers and one
// consumer. Dequeue blocks until an item is available or the queue is
// closed. There is no priority and no deduplication: two matches for the
// same subscription and event yield two items.
type NotificationQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []*entity.NotificationItem
	closed bool
}

// New creates an empty notification queue.
func New() *NotificationQueue {
	q := &NotificationQueue{}
	q.cond = sync.NewCond(&q.mu)

	return q
}

// Enqueue appends an item. Items enqueued after Close are dropped and false
// is returned.
func (q *NotificationQueue) Enqueue(item *entity.NotificationItem) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	q.items = append(q.items, item)
	q.cond.Signal()

	return true
}

// Dequeue removes and returns the oldest item, blocking while the queue is
// empty. It returns false once the queue is closed and drained.
func (q *NotificationQueue) Dequeue() (*entity.NotificationItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}

	if len(q.items) == 0 {
		return nil, false
	}

	item := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]

	return item, true
}

// Len returns the current queue length.
func (q *NotificationQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.items)
}

// Close stops accepting new items and wakes the consumer. Already queued
// items can still be drained.
func (q *NotificationQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()
}
