// ABOUTME: In-process pub/sub broker for live adjustment notifications.
// ABOUTME: At-most-once, fire-and-forget delivery; FIFO per subscriber, drop on backlog.
package broadcast

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

var (
	// ErrBrokerClosed is returned when subscribing to a closed broker.
	ErrBrokerClosed = errors.New("broadcast: broker closed")
)

// Message is what a subscriber's handler receives.
type Message struct {
	Channel string
	Event   string
	Payload any
}

// Handler consumes messages for one subscription.
type Handler func(Message)

// Stats counts deliveries for one subscription.
type Stats struct {
	Sent    uint64
	Dropped uint64
}

// defaultBacklog is the per-subscriber buffer. A subscriber that falls
// further behind than this loses messages; the durable adjustment log
// remains the record of what happened.
const defaultBacklog = 16

type subscriber struct {
	id      uuid.UUID
	channel string
	event   string
	ch      chan Message
	sent    uint64
	dropped uint64
}

// Broker fans out published messages to current subscribers of a
// channel. Delivery is best-effort: a subscriber not registered at
// publish time never sees the message, and a slow subscriber drops
// rather than blocking the publisher.
type Broker struct {
	mu     sync.RWMutex
	subs   map[string][]*subscriber // channel key -> subscribers
	wg     sync.WaitGroup
	closed bool
}

// NewBroker creates an empty broker.
func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string][]*subscriber),
	}
}

// Subscribe registers a handler for an event on a channel and returns
// an unsubscribe function. The handler runs on its own goroutine and
// receives messages in publish order for that channel.
func (b *Broker) Subscribe(channel, event string, handler Handler) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBrokerClosed
	}

	sub := &subscriber{
		id:      uuid.New(),
		channel: channel,
		event:   event,
		ch:      make(chan Message, defaultBacklog),
	}
	b.subs[channel] = append(b.subs[channel], sub)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for msg := range sub.ch {
			handler(msg)
		}
	}()

	return func() { b.unsubscribe(sub) }, nil
}

// Publish fans a message out to all current subscribers of the channel
// whose event name matches. It never blocks: a full subscriber backlog
// counts a drop instead.
func (b *Broker) Publish(channel, event string, payload any) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	msg := Message{Channel: channel, Event: event, Payload: payload}
	for _, sub := range b.subs[channel] {
		if sub.event != "" && sub.event != event {
			continue
		}
		select {
		case sub.ch <- msg:
			atomic.AddUint64(&sub.sent, 1)
		default:
			atomic.AddUint64(&sub.dropped, 1)
		}
	}
}

// SubscriberCount returns the number of active subscriptions on a channel.
func (b *Broker) SubscriberCount(channel string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[channel])
}

// StatsFor sums send/drop counters across a channel's subscribers.
func (b *Broker) StatsFor(channel string) Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var s Stats
	for _, sub := range b.subs[channel] {
		s.Sent += atomic.LoadUint64(&sub.sent)
		s.Dropped += atomic.LoadUint64(&sub.dropped)
	}
	return s
}

func (b *Broker) unsubscribe(target *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[target.channel]
	for i, sub := range subs {
		if sub.id == target.id {
			b.subs[target.channel] = append(subs[:i], subs[i+1:]...)
			close(sub.ch)
			return
		}
	}
}

// Close shuts down the broker and waits for in-flight handlers to
// finish their backlogs. Publishing after Close is a no-op.
func (b *Broker) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for _, subs := range b.subs {
		for _, sub := range subs {
			close(sub.ch)
		}
	}
	b.subs = make(map[string][]*subscriber)
	b.mu.Unlock()

	b.wg.Wait()
}

// SessionChannel is the channel-key convention for live session fan-out.
func SessionChannel(sessionID uuid.UUID) string {
	return "session:" + sessionID.String()
}

// EventLoadAdjusted is the event name published when a load adjustment
// is applied.
const EventLoadAdjusted = "load_adjusted"
