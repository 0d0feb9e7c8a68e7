package broker

import "sync"

// Broker - минимальный канальный брокер: один буферизованный канал на топик.
// Publish никогда не блокирует - при переполненном топике сообщение теряется,
// события дашборда не должны тормозить основной поток
type Broker[T any] struct {
	topics      map[string]chan T
	maxSizeChan uint
	mu          sync.RWMutex
}

func New[T any](maxCountMsgInTopic uint) *Broker[T] {
	return &Broker[T]{
		topics:      make(map[string]chan T),
		maxSizeChan: maxCountMsgInTopic,
	}
}

func (b *Broker[T]) Publish(topic string, msg T) {
	ch := b.topic(topic)

	select {
	case ch <- msg:
	default:
		// переполнение - молча пропускаем
	}
}

func (b *Broker[T]) Subscribe(topic string) <-chan T {
	return b.topic(topic)
}

func (b *Broker[T]) CloseTopic(topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.topics[topic]; ok {
		close(ch)
		delete(b.topics, topic)
	}
}

func (b *Broker[T]) topic(name string) chan T {
	b.mu.RLock()
	ch, ok := b.topics[name]
	b.mu.RUnlock()
	if ok {
		return ch
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok = b.topics[name]; !ok {
		ch = make(chan T, b.maxSizeChan)
		b.topics[name] = ch
	}
	return ch
}
