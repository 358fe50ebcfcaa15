package services

import "sync"

// Subscription is the cancel handle returned by every live feed. Unsubscribe
// is safe to call more than once; only the first call releases the listener.
type Subscription struct {
	once   sync.Once
	cancel func()
}

func (s *Subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

func newSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// notifier is an in-process change signal, keyed by topic. Profile stores
// notify "user:{uid}" on writes, the message channel notifies "chat:{chatId}"
// on appends; subscribers re-read their snapshot when signalled.
type notifier struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]func()
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[string]map[int]func())}
}

func (n *notifier) subscribe(topic string, fn func()) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	if n.subs[topic] == nil {
		n.subs[topic] = make(map[int]func())
	}
	n.subs[topic][id] = fn

	return newSubscription(func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs[topic], id)
		if len(n.subs[topic]) == 0 {
			delete(n.subs, topic)
		}
	})
}

func (n *notifier) notify(topic string) {
	n.mu.RLock()
	fns := make([]func(), 0, len(n.subs[topic]))
	for _, fn := range n.subs[topic] {
		fns = append(fns, fn)
	}
	n.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
