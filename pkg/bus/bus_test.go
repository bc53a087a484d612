package bus

import "testing"

func TestNothingDeliveredBeforeDrain(t *testing.T) {
	b := New()
	got := 0
	b.Subscribe(Topic("products"), func(Envelope) { got++ })

	b.Publish("test", Topic("products"), Tag("item-changed"), "p1")
	if got != 0 {
		t.Fatalf("handler ran before drain")
	}
	if n := b.Drain(); n != 1 {
		t.Fatalf("expected 1 delivery, got %d", n)
	}
	if got != 1 {
		t.Fatalf("handler should have run once, ran %d times", got)
	}
}

func TestTopicsAreIsolated(t *testing.T) {
	b := New()
	var products, items int
	b.Subscribe(Topic("products"), func(Envelope) { products++ })
	b.Subscribe(Topic("orderitems"), func(Envelope) { items++ })

	b.Publish("test", Topic("products"), Tag("item-changed"), nil)
	b.Drain()

	if products != 1 || items != 0 {
		t.Fatalf("expected products only, got products=%d items=%d", products, items)
	}
}

func TestHandlerSeesEnvelopeAndFiltersByTag(t *testing.T) {
	b := New()
	var changed []string
	b.Subscribe(Topic("products"), func(env Envelope) {
		if env.Tag != Tag("item-changed") {
			return
		}
		id, _ := env.Payload.(string)
		changed = append(changed, id)
	})

	b.Publish("sender-a", Topic("products"), Tag("item-changed"), "p1")
	b.Publish("sender-a", Topic("products"), Tag("item-deleted"), "p2")
	b.Drain()

	if len(changed) != 1 || changed[0] != "p1" {
		t.Fatalf("tag filter failed: %v", changed)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	got := 0
	sub := b.Subscribe(Topic("products"), func(Envelope) { got++ })

	b.Publish("test", Topic("products"), Tag("item-changed"), nil)
	b.Drain()
	sub.Unsubscribe()
	sub.Unsubscribe() // idempotent
	b.Publish("test", Topic("products"), Tag("item-changed"), nil)
	b.Drain()

	if got != 1 {
		t.Fatalf("expected exactly one delivery, got %d", got)
	}
}

func TestPublishDuringDrainIsDeliveredSameDrain(t *testing.T) {
	b := New()
	var order []string
	b.Subscribe(Topic("products"), func(env Envelope) {
		order = append(order, string(env.Tag))
		if env.Tag == Tag("first") {
			b.Publish("test", Topic("products"), Tag("second"), nil)
		}
	})

	b.Publish("test", Topic("products"), Tag("first"), nil)
	if n := b.Drain(); n != 2 {
		t.Fatalf("expected both envelopes in one drain, got %d", n)
	}
	if len(order) != 2 || order[1] != "second" {
		t.Fatalf("unexpected delivery order: %v", order)
	}
}

func TestQueueOverflowDrops(t *testing.T) {
	b := New()
	got := 0
	b.Subscribe(Topic("products"), func(Envelope) { got++ })

	for i := 0; i < queueSize+10; i++ {
		b.Publish("test", Topic("products"), Tag("item-changed"), i)
	}
	b.Drain()

	if got != queueSize {
		t.Fatalf("expected overflow to drop, delivered %d", got)
	}
}

func TestDrainCountsDequeuedWithoutSubscribers(t *testing.T) {
	b := New()

	b.Publish("test", Topic("products"), Tag("item-changed"), nil)
	b.Publish("test", Topic("orderitems"), Tag("item-changed"), nil)

	if n := b.Drain(); n != 2 {
		t.Fatalf("expected 2 dequeued envelopes, got %d", n)
	}
	if n := b.Drain(); n != 0 {
		t.Fatalf("queue should be empty, got %d", n)
	}
}

func TestNotifySignalsPendingWork(t *testing.T) {
	b := New()
	b.Publish("test", Topic("products"), Tag("item-changed"), nil)
	select {
	case <-b.Notify():
	default:
		t.Fatalf("notify channel should be signaled after publish")
	}
}
