package anagram

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroadcasterSerializesDelivery(t *testing.T) {
	b := NewBroadcaster()

	var inside, maxInside atomic.Int32
	var got []Combination
	b.Subscribe(func(c Combination) {
		n := inside.Add(1)
		if n > maxInside.Load() {
			maxInside.Store(n)
		}
		got = append(got, c)
		inside.Add(-1)
	})

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.Publish(Combination{"ash", "chime"})
		}()
	}
	wg.Wait()

	assert.Len(t, got, 64)
	assert.Equal(t, int32(1), maxInside.Load())
}

func TestBroadcasterMulticastAndUnsubscribe(t *testing.T) {
	b := NewBroadcaster()

	var first, second []Combination
	sub1 := b.Subscribe(func(c Combination) { first = append(first, c) })
	b.Subscribe(func(c Combination) { second = append(second, c) })
	assert.Equal(t, 2, b.Subscribers())

	b.Publish(Combination{"a"})
	sub1.Unsubscribe()
	sub1.Unsubscribe()
	b.Publish(Combination{"b"})

	assert.Equal(t, []Combination{{"a"}}, first)
	assert.Equal(t, []Combination{{"a"}, {"b"}}, second)
	assert.Equal(t, 1, b.Subscribers())
}
