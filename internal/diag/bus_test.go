package diag

import (
	"testing"
	"time"

	"penumbra-agent/internal/logger"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewBus()
	received := make(chan LampWritten, 1)

	unsub := bus.Subscribe(func(e LampWritten) {
		received <- e
	})
	defer unsub()

	bus.Publish(LampWritten{Lamp: "A", Channel: 2, Level: 200})

	select {
	case got := <-received:
		if got.Channel != 2 || got.Level != 200 {
			t.Errorf("got %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := NewBus()
	received := make(chan Event, 5)

	unsub := bus.SubscribeAll(func(e Event) {
		received <- e
	})
	defer unsub()

	sent := []Event{
		LinkReady{Ready: true},
		MessageParsed{Line: "1,2,3"},
		StripRendered{Primary: 1},
		LampWritten{Channel: 3},
		ActuatorFailed{Actuator: "strip"},
	}
	for _, e := range sent {
		bus.Publish(e)
	}

	seen := map[uint32]bool{}
	for range sent {
		select {
		case e := <-received:
			seen[e.Type()] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d of %d events delivered", len(seen), len(sent))
		}
	}
	for _, e := range sent {
		if !seen[e.Type()] {
			t.Errorf("event type %d not delivered", e.Type())
		}
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()
	received := make(chan ActuatorFailed, 1)

	unsub := bus.Subscribe(func(e ActuatorFailed) {
		received <- e
	})

	bus.Publish(ActuatorFailed{Actuator: "dmx"})
	<-received

	unsub()

	bus.Publish(ActuatorFailed{Actuator: "strip"})
	select {
	case <-received:
		t.Fatal("Should not have received event after unsubscribe")
	case <-time.After(10 * time.Millisecond):
	}
}

func TestBus_UnknownHandler(t *testing.T) {
	unsub := NewBus().Subscribe(func(string) {})
	unsub()
}

func TestLogEvent(t *testing.T) {
	log := logger.Discard()
	for _, e := range []Event{
		LinkReady{Ready: true},
		LinkReady{},
		MessageParsed{Line: "x", Malformed: true, Error: "bad"},
		MessageParsed{Line: "1,2,3"},
		StripRendered{},
		LampWritten{},
		ActuatorFailed{Actuator: "strip"},
	} {
		logEvent(log, e)
	}
	Discard{}.Publish(LinkReady{})
}
