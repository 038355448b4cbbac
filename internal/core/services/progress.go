package services

import (
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
)

// defaultProgressBuffer is the number of events queued before drops start.
const defaultProgressBuffer = 32

// Ensure AsyncProgress implements the interface.
var _ driven.ProgressSink = (*AsyncProgress)(nil)

// AsyncProgress decouples the search loop from a slow progress surface.
// OnProgress never blocks: events are queued and delivered in order by a
// single goroutine, and dropped when the queue is full.
type AsyncProgress struct {
	mu      sync.RWMutex
	closed  bool
	events  chan domain.ProgressEvent
	done    chan struct{}
	dropped atomic.Int64
}

// NewAsyncProgress starts delivering events to sink.
// Close must be called to stop the delivery goroutine.
func NewAsyncProgress(sink driven.ProgressSink, buffer int) *AsyncProgress {
	if buffer <= 0 {
		buffer = defaultProgressBuffer
	}

	p := &AsyncProgress{
		events: make(chan domain.ProgressEvent, buffer),
		done:   make(chan struct{}),
	}

	go func() {
		defer close(p.done)
		for event := range p.events {
			if sink != nil {
				sink.OnProgress(event)
			}
		}
	}()

	return p
}

// OnProgress queues an event without blocking.
func (p *AsyncProgress) OnProgress(event domain.ProgressEvent) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.dropped.Add(1)
		return
	}

	select {
	case p.events <- event:
	default:
		p.dropped.Add(1)
	}
}

// Close stops accepting events and waits for queued ones to be delivered.
// It is safe to call more than once.
func (p *AsyncProgress) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.events)
	}
	p.mu.Unlock()

	<-p.done
}

// Dropped returns how many events were discarded.
func (p *AsyncProgress) Dropped() int64 {
	return p.dropped.Load()
}
