// Package lru tracks recency of use for a set of keys.
//
// Order is the bookkeeping half of an LRU cache: it knows which key was
// touched least recently but stores no values. Callers keep their own map
// of values and ask Order which key to evict.
//
//	o := lru.New[uint32]()
//	o.Touch(1)
//	o.Touch(2)
//	o.Touch(1)
//	victim, _ := o.Oldest() // 2
//
// Order is not safe for concurrent use.
package lru
