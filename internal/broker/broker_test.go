package broker

import "testing"

func TestBroker_PublishSubscribe(t *testing.T) {
	b := New[string](4)

	b.Publish("events", "first")
	b.Publish("events", "second")

	ch := b.Subscribe("events")
	if got := <-ch; got != "first" {
		t.Errorf("Ожидали first, получили %q", got)
	}
	if got := <-ch; got != "second" {
		t.Errorf("Ожидали second, получили %q", got)
	}
}

func TestBroker_PublishNeverBlocks(t *testing.T) {
	b := New[int](1)

	// Второе сообщение не влезает в буфер - должно молча потеряться,
	// а не заблокировать вызывающую сторону
	b.Publish("full", 1)
	b.Publish("full", 2)

	if got := <-b.Subscribe("full"); got != 1 {
		t.Errorf("Ожидали первое сообщение, получили %d", got)
	}
}

func TestBroker_IsolatedTopics(t *testing.T) {
	b := New[int](2)
	b.Publish("a", 10)
	b.Publish("b", 20)

	if got := <-b.Subscribe("a"); got != 10 {
		t.Errorf("Топик a: ожидали 10, получили %d", got)
	}
	if got := <-b.Subscribe("b"); got != 20 {
		t.Errorf("Топик b: ожидали 20, получили %d", got)
	}
}
