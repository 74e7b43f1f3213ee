package queue

import (
	"sync"
	"testing"

	"scout/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(area string) *entity.NotificationItem {
	return entity.NewNotificationItem(&entity.Subscription{}, entity.KindPokemon, &entity.Message{}, area)
}

func TestQueue_FIFOOrder(t *testing.T) {
	q := New()

	require.True(t, q.Enqueue(item("first")))
	require.True(t, q.Enqueue(item("second")))
	require.True(t, q.Enqueue(item("third")))
	assert.Equal(t, 3, q.Len())

	for _, want := range []string{"first", "second", "third"} {
		got, ok := q.Dequeue()
		require.True(t, ok)
		assert.Equal(t, want, got.Area)
	}
	assert.Equal(t, 0, q.Len())
}

func TestQueue_NoDeduplication(t *testing.T) {
	q := New()
	sub := &entity.Subscription{}

	q.Enqueue(entity.NewNotificationItem(sub, entity.KindPokemon, &entity.Message{}, "CityA"))
	q.Enqueue(entity.NewNotificationItem(sub, entity.KindPokemon, &entity.Message{}, "CityA"))

	assert.Equal(t, 2, q.Len())
}

func TestQueue_DequeueBlocksUntilEnqueue(t *testing.T) {
	q := New()
	done := make(chan *entity.NotificationItem)

	go func() {
		got, ok := q.Dequeue()
		require.True(t, ok)
		done <- got
	}()

	q.Enqueue(item("late"))
	got := <-done
	assert.Equal(t, "late", got.Area)
}

func TestQueue_CloseDrainsThenStops(t *testing.T) {
	q := New()
	q.Enqueue(item("queued"))
	q.Close()

	got, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "queued", got.Area)

	_, ok = q.Dequeue()
	assert.False(t, ok)

	assert.False(t, q.Enqueue(item("rejected")))
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	q := New()
	const producers = 8
	const perProducer = 50

	var wg sync.WaitGroup
	for range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perProducer {
				q.Enqueue(item("x"))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, producers*perProducer, q.Len())
}
