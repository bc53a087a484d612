// Package bus provides the in-process publish/subscribe channel that keeps
// sibling view-models in sync. Topics identify the entity type; handlers
// filter by tag themselves. Delivery is best effort within the process:
// publishing enqueues, and nothing is delivered until someone drains the
// queue on the UI goroutine.
package bus

import "sync"

// Topic routes envelopes to subscribers of one entity type.
type Topic string

// Tag names the kind of change carried by an envelope.
type Tag string

// Envelope is one published message.
type Envelope struct {
	Sender  string
	Topic   Topic
	Tag     Tag
	Payload any
}

// Handler receives every envelope published on a subscribed topic and is
// expected to ignore tags it does not care about.
type Handler func(Envelope)

// Subscription is the explicit lifecycle handle returned by Subscribe.
// Unsubscribe on deactivation; there is no garbage-collector-assisted
// cleanup.
type Subscription struct {
	bus   *Bus
	topic Topic
	id    int
}

// Unsubscribe removes the handler. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.mu.Lock()
	if handlers, ok := s.bus.subs[s.topic]; ok {
		delete(handlers, s.id)
		if len(handlers) == 0 {
			delete(s.bus.subs, s.topic)
		}
	}
	s.bus.mu.Unlock()
	s.bus = nil
}

const queueSize = 64

// Bus is a topic registry with a bounded dispatch queue.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[Topic]map[int]Handler

	queue  chan Envelope
	notify chan struct{}
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{
		subs:   make(map[Topic]map[int]Handler),
		queue:  make(chan Envelope, queueSize),
		notify: make(chan struct{}, 1),
	}
}

// Subscribe registers a handler for every envelope on topic.
func (b *Bus) Subscribe(topic Topic, h Handler) *Subscription {
	if h == nil {
		return &Subscription{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]Handler)
	}
	b.subs[topic][id] = h
	return &Subscription{bus: b, topic: topic, id: id}
}

// Publish enqueues an envelope. If the queue is full the envelope is
// dropped; a later refresh is expected to re-sync any listener that missed
// it.
func (b *Bus) Publish(sender string, topic Topic, tag Tag, payload any) {
	env := Envelope{Sender: sender, Topic: topic, Tag: tag, Payload: payload}
	select {
	case b.queue <- env:
	default:
		return
	}
	select {
	case b.notify <- struct{}{}:
	default:
	}
}

// Notify signals (coalesced) whenever there is something to drain. The TUI
// loop uses it to schedule drains on its own goroutine.
func (b *Bus) Notify() <-chan struct{} {
	return b.notify
}

// Drain delivers every queued envelope to the current subscribers of its
// topic and returns the number of envelopes dequeued, whether or not the
// topic had subscribers. Handlers run on the calling goroutine; envelopes
// they publish are delivered within the same drain.
func (b *Bus) Drain() int {
	dequeued := 0
	for {
		select {
		case env := <-b.queue:
			for _, h := range b.handlersFor(env.Topic) {
				h(env)
			}
			dequeued++
		default:
			return dequeued
		}
	}
}

func (b *Bus) handlersFor(topic Topic) []Handler {
	b.mu.Lock()
	defer b.mu.Unlock()
	handlers := b.subs[topic]
	if len(handlers) == 0 {
		return nil
	}
	out := make([]Handler, 0, len(handlers))
	for _, h := range handlers {
		out = append(out, h)
	}
	return out
}
