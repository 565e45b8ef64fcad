package event

import "sync"

// JobCompleted is published whenever an acquisition run finishes for a
// document. JobID is empty for foreground runs. Subscribers only learn that
// the document changed; cache invalidation hangs off this.
type JobCompleted struct {
	JobID      string
	DocumentID string
	Success    bool
}

type Bus struct {
	mu   sync.RWMutex
	subs []func(JobCompleted)
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(fn func(JobCompleted)) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	b.subs = append(b.subs, fn)
	b.mu.Unlock()
}

// Publish delivers synchronously in subscription order. Handlers must not
// block.
func (b *Bus) Publish(evt JobCompleted) {
	b.mu.RLock()
	subs := make([]func(JobCompleted), len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(evt)
	}
}
