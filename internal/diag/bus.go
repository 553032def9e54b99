// Package diag carries observations out of the update loop. Nothing published
// here feeds back into control decisions.
package diag

import (
	"github.com/kelindar/event"
)

// Sink receives observations from the update loop.
type Sink interface {
	Publish(ev Event)
}

// Discard drops every event.
type Discard struct{}

func (Discard) Publish(Event) {}

// Bus wraps kelindar/event dispatcher. Subscribers run on the dispatcher's
// goroutines, so a slow subscriber never stalls the loop.
type Bus struct {
	dispatcher *event.Dispatcher
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{
		dispatcher: event.NewDispatcher(),
	}
}

// Publish publishes an event to all subscribers.
func (b *Bus) Publish(ev Event) {
	switch e := ev.(type) {
	case LinkReady:
		event.Publish(b.dispatcher, e)
	case MessageParsed:
		event.Publish(b.dispatcher, e)
	case StripRendered:
		event.Publish(b.dispatcher, e)
	case LampWritten:
		event.Publish(b.dispatcher, e)
	case ActuatorFailed:
		event.Publish(b.dispatcher, e)
	}
}

// Subscribe registers a handler; its parameter type selects the events it
// receives. It returns the unsubscribe function.
func (b *Bus) Subscribe(handler any) func() {
	switch h := handler.(type) {
	case func(LinkReady):
		return event.Subscribe(b.dispatcher, h)
	case func(MessageParsed):
		return event.Subscribe(b.dispatcher, h)
	case func(StripRendered):
		return event.Subscribe(b.dispatcher, h)
	case func(LampWritten):
		return event.Subscribe(b.dispatcher, h)
	case func(ActuatorFailed):
		return event.Subscribe(b.dispatcher, h)
	default:
		return func() {}
	}
}

// SubscribeAll registers one handler for every event type.
func (b *Bus) SubscribeAll(handler func(Event)) func() {
	unsubs := []func(){
		b.Subscribe(func(e LinkReady) { handler(e) }),
		b.Subscribe(func(e MessageParsed) { handler(e) }),
		b.Subscribe(func(e StripRendered) { handler(e) }),
		b.Subscribe(func(e LampWritten) { handler(e) }),
		b.Subscribe(func(e ActuatorFailed) { handler(e) }),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
