// internal/storage/notify.go
package storage

import "sync"

// notifier fans out per-key change signals. Sends are non-blocking: each
// subscriber channel has capacity one, so rapid writes coalesce into a
// single pending signal and a slow subscriber never stalls a write.
type notifier struct {
	mtx  sync.Mutex
	subs map[string]map[int]chan struct{}
	next int
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[string]map[int]chan struct{})}
}

func (n *notifier) subscribe(key string) (<-chan struct{}, func()) {
	n.mtx.Lock()
	defer n.mtx.Unlock()

	ch := make(chan struct{}, 1)
	id := n.next
	n.next++

	if n.subs[key] == nil {
		n.subs[key] = make(map[int]chan struct{})
	}
	n.subs[key][id] = ch

	cancel := func() {
		n.mtx.Lock()
		defer n.mtx.Unlock()
		if set, ok := n.subs[key]; ok {
			delete(set, id)
			if len(set) == 0 {
				delete(n.subs, key)
			}
		}
	}
	return ch, cancel
}

func (n *notifier) notify(key string) {
	n.mtx.Lock()
	defer n.mtx.Unlock()

	for _, ch := range n.subs[key] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
