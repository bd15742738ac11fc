// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"log/slog"
	"sync"
	"time"
)

const queueSize = 256

// EventType identifies the kind of governance event being delivered.
type EventType string

// Event is the unit of notification fan-out.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Subscriber is a delivery channel for events. Deliver may block; the bus
// worker absorbs that so producers never do. Close must be idempotent.
type Subscriber interface {
	Deliver(Event) error
	Close()
}

// Bus fans governance events out to its subscribers asynchronously. Notify
// never blocks: events are queued and a worker drains the queue; when the
// queue is full the event is dropped with a warning. Delivery errors are
// logged and do not affect the producer or other subscribers.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[EventType][]Subscriber

	queue  chan Event
	stopCh chan struct{}
	wg     sync.WaitGroup
	stop   sync.Once
}

// NewBus creates a bus and starts its delivery worker.
func NewBus() *Bus {
	b := &Bus{
		subscribers: make(map[EventType][]Subscriber),
		queue:       make(chan Event, queueSize),
		stopCh:      make(chan struct{}),
	}
	b.wg.Add(1)
	go b.worker()
	return b
}

func (b *Bus) worker() {
	defer b.wg.Done()
	for {
		select {
		case <-b.stopCh:
			return
		case evt := <-b.queue:
			b.deliver(evt)
		}
	}
}

func (b *Bus) deliver(evt Event) {
	b.mu.RLock()
	subs := make([]Subscriber, len(b.subscribers[evt.Type]))
	copy(subs, b.subscribers[evt.Type])
	b.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.Deliver(evt); err != nil {
			slog.Warn("notification delivery failed", "type", evt.Type, "error", err)
		}
	}
}

// Subscribe registers a subscriber for an event type.
func (b *Bus) Subscribe(eventType EventType, sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], sub)
}

// Notify enqueues an event for asynchronous delivery. It satisfies the
// coordinator's Notifier interface and returns immediately.
func (b *Bus) Notify(eventType string, data any) {
	evt := Event{
		Type:      EventType(eventType),
		Timestamp: time.Now(),
		Data:      data,
	}

	select {
	case b.queue <- evt:
	case <-b.stopCh:
	default:
		// Queue full; the core must not block on notification fan-out.
		slog.Warn("notification queue full, dropping event", "type", eventType)
	}
}

// Stop shuts down the worker and closes all subscribers. Idempotent.
func (b *Bus) Stop() {
	b.stop.Do(func() {
		close(b.stopCh)
		b.wg.Wait()

		b.mu.Lock()
		subs := b.subscribers
		b.subscribers = make(map[EventType][]Subscriber)
		b.mu.Unlock()

		for _, typeSubs := range subs {
			for _, sub := range typeSubs {
				sub.Close()
			}
		}
	})
}

// ChannelSubscriber adapts a Go channel for in-process consumers (e.g. the
// real-time socket fan-out service). Events are dropped rather than blocking
// the bus worker when the consumer falls behind.
type ChannelSubscriber struct {
	mu     sync.Mutex
	ch     chan Event
	closed bool
}

// NewChannelSubscriber creates a channel subscriber with the given buffer.
func NewChannelSubscriber(buffer int) *ChannelSubscriber {
	return &ChannelSubscriber{ch: make(chan Event, buffer)}
}

// Events exposes the delivery channel.
func (c *ChannelSubscriber) Events() <-chan Event {
	return c.ch
}

func (c *ChannelSubscriber) Deliver(evt Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	select {
	case c.ch <- evt:
		return nil
	default:
		return errChannelFull
	}
}

func (c *ChannelSubscriber) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.ch)
}
