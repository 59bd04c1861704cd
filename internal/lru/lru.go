package lru

// node is a link in the recency list.
type node[K comparable] struct {
	key  K
	prev *node[K]
	next *node[K]
}

// Order is a doubly-linked recency list indexed by key.
// The head is the most recently used key, the tail the least recently used.
type Order[K comparable] struct {
	head  *node[K]
	tail  *node[K]
	nodes map[K]*node[K]
}

// New creates an empty Order.
func New[K comparable]() *Order[K] {
	return &Order[K]{nodes: make(map[K]*node[K])}
}

// Len returns the number of tracked keys.
func (o *Order[K]) Len() int {
	return len(o.nodes)
}

// Contains reports whether key is tracked.
func (o *Order[K]) Contains(key K) bool {
	_, ok := o.nodes[key]
	return ok
}

// Touch marks key as most recently used, adding it if necessary.
func (o *Order[K]) Touch(key K) {
	if n, ok := o.nodes[key]; ok {
		if n == o.head {
			return
		}
		o.unlink(n)
		o.pushFront(n)
		return
	}
	n := &node[K]{key: key}
	o.nodes[key] = n
	o.pushFront(n)
}

// Remove stops tracking key. Returns false if key was not tracked.
func (o *Order[K]) Remove(key K) bool {
	n, ok := o.nodes[key]
	if !ok {
		return false
	}
	o.unlink(n)
	delete(o.nodes, key)
	return true
}

// Oldest returns the least recently used key without removing it.
// Returns zero value and false if the order is empty.
func (o *Order[K]) Oldest() (K, bool) {
	if o.tail == nil {
		var zero K
		return zero, false
	}
	return o.tail.key, true
}

// RemoveOldest removes and returns the least recently used key.
func (o *Order[K]) RemoveOldest() (K, bool) {
	key, ok := o.Oldest()
	if ok {
		o.Remove(key)
	}
	return key, ok
}

// Keys returns the tracked keys from most to least recently used.
func (o *Order[K]) Keys() []K {
	keys := make([]K, 0, len(o.nodes))
	for n := o.head; n != nil; n = n.next {
		keys = append(keys, n.key)
	}
	return keys
}

// Clear forgets every key.
func (o *Order[K]) Clear() {
	o.head = nil
	o.tail = nil
	o.nodes = make(map[K]*node[K])
}

func (o *Order[K]) pushFront(n *node[K]) {
	n.prev = nil
	n.next = o.head
	if o.head != nil {
		o.head.prev = n
	}
	o.head = n
	if o.tail == nil {
		o.tail = n
	}
}

// unlink detaches n from its neighbours and clears its pointers.
func (o *Order[K]) unlink(n *node[K]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		o.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		o.tail = n.prev
	}
	n.prev = nil
	n.next = nil
}
