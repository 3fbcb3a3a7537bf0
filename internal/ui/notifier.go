package ui

import "sync"

// ToastNotifier queues messages until the app model drains them after the
// next update. Calling into the program from Update would block, so it never
// sends directly.
type ToastNotifier struct {
	mu      sync.Mutex
	pending []string
}

func NewToastNotifier() *ToastNotifier {
	return &ToastNotifier{}
}

func (n *ToastNotifier) Show(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = append(n.pending, message)
}

func (n *ToastNotifier) drain() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}
