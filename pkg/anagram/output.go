package anagram

import (
	"sync"
)

// Combination is one discovered anagram: the contributing words in the order
// they were joined, with their original casing.
type Combination []string

// Broadcaster delivers combinations to every subscriber. Publish is safe from
// many goroutines; deliveries are serialized so a subscriber callback never
// runs concurrently with itself or with another delivery.
type Broadcaster struct {
	subMu   sync.RWMutex
	subs    map[uint64]func(Combination)
	nextID  uint64
	deliver sync.Mutex
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	b    *Broadcaster
	id   uint64
	once sync.Once
}

// NewBroadcaster creates a broadcaster with no subscribers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[uint64]func(Combination))}
}

// Subscribe registers fn for every combination published from now on.
func (b *Broadcaster) Subscribe(fn func(Combination)) *Subscription {
	b.subMu.Lock()
	defer b.subMu.Unlock()

	b.nextID++
	b.subs[b.nextID] = fn
	return &Subscription{b: b, id: b.nextID}
}

// Unsubscribe stops deliveries to the subscription. A delivery already in
// progress still completes. Calling it more than once is fine.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.b.subMu.Lock()
		delete(s.b.subs, s.id)
		s.b.subMu.Unlock()
	})
}

// Publish hands c to every current subscriber, one delivery at a time.
// Subscribers share c and must not modify it.
func (b *Broadcaster) Publish(c Combination) {
	b.deliver.Lock()
	defer b.deliver.Unlock()

	for _, fn := range b.snapshot() {
		fn(c)
	}
}

// Subscribers is the number of active subscriptions.
func (b *Broadcaster) Subscribers() int {
	b.subMu.RLock()
	defer b.subMu.RUnlock()
	return len(b.subs)
}

func (b *Broadcaster) snapshot() []func(Combination) {
	b.subMu.RLock()
	defer b.subMu.RUnlock()

	fns := make([]func(Combination), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	return fns
}
