// Package queue provides a generic singly linked FIFO with value semantics.
//
// Membership is decided by a comparator, not by identity: every lookup
// (Search, DeleteByValue, InsertAfter, ...) acts on the first element for
// which compare(element, target) == 0. Operations given an absent target or
// an out-of-range position are no-ops.
package queue

import (
	"cmp"
	"iter"

	"golang.org/x/exp/constraints"
)

type node[T any] struct {
	value T
	next  *node[T]
}

// Queue is an ordered sequence of values. The zero value is not usable; call New.
type Queue[T any] struct {
	head    *node[T]
	tail    *node[T]
	size    int
	compare func(a, b T) int
}

// New returns an empty queue ordered and matched by compare.
func New[T any](compare func(a, b T) int) *Queue[T] {
	return &Queue[T]{compare: compare}
}

// NewOrdered returns an empty queue for naturally ordered element types.
func NewOrdered[T constraints.Ordered]() *Queue[T] {
	return New(cmp.Compare[T])
}

// Size returns the number of elements.
func (q *Queue[T]) Size() int { return q.size }

// Empty reports whether the queue holds no elements.
func (q *Queue[T]) Empty() bool { return q.size == 0 }

// InsertHead prepends v.
func (q *Queue[T]) InsertHead(v T) {
	n := &node[T]{value: v, next: q.head}
	q.head = n
	if q.tail == nil {
		q.tail = n
	}
	q.size++
}

// InsertTail appends v.
func (q *Queue[T]) InsertTail(v T) {
	n := &node[T]{value: v}
	if q.tail == nil {
		q.head = n
	} else {
		q.tail.next = n
	}
	q.tail = n
	q.size++
}

// InsertAt inserts v so that it ends up at the 1-based position pos.
// Valid positions are 1..Size()+1.
func (q *Queue[T]) InsertAt(pos int, v T) {
	if pos < 1 || pos > q.size+1 {
		return
	}
	if pos == 1 {
		q.InsertHead(v)
		return
	}
	if pos == q.size+1 {
		q.InsertTail(v)
		return
	}
	prev := q.nodeAt(pos - 1)
	prev.next = &node[T]{value: v, next: prev.next}
	q.size++
}

// InsertAfter inserts v right after the first element matching target.
func (q *Queue[T]) InsertAfter(target, v T) {
	n := q.find(target)
	if n == nil {
		return
	}
	n.next = &node[T]{value: v, next: n.next}
	if q.tail == n {
		q.tail = n.next
	}
	q.size++
}

// InsertBefore inserts v right before the first element matching target.
func (q *Queue[T]) InsertBefore(target, v T) {
	prev, n := q.findWithPrev(target)
	if n == nil {
		return
	}
	if prev == nil {
		q.InsertHead(v)
		return
	}
	prev.next = &node[T]{value: v, next: n}
	q.size++
}

// InsertOrdered inserts v before the first element greater than it, keeping an
// ascending queue sorted. Equal elements keep their insertion order.
func (q *Queue[T]) InsertOrdered(v T) {
	var prev *node[T]
	for n := q.head; n != nil; n = n.next {
		if q.compare(v, n.value) < 0 {
			break
		}
		prev = n
	}
	if prev == nil {
		q.InsertHead(v)
		return
	}
	if prev == q.tail {
		q.InsertTail(v)
		return
	}
	prev.next = &node[T]{value: v, next: prev.next}
	q.size++
}

// DeleteHead removes the first element.
func (q *Queue[T]) DeleteHead() (T, bool) {
	var zero T
	if q.head == nil {
		return zero, false
	}
	n := q.head
	q.head = n.next
	if q.head == nil {
		q.tail = nil
	}
	q.size--
	return n.value, true
}

// DeleteTail removes the last element.
func (q *Queue[T]) DeleteTail() (T, bool) {
	var zero T
	if q.tail == nil {
		return zero, false
	}
	if q.head == q.tail {
		return q.DeleteHead()
	}
	prev := q.nodeAt(q.size - 1)
	v := q.tail.value
	prev.next = nil
	q.tail = prev
	q.size--
	return v, true
}

// DeleteAt removes the element at 1-based position pos.
func (q *Queue[T]) DeleteAt(pos int) (T, bool) {
	var zero T
	if pos < 1 || pos > q.size {
		return zero, false
	}
	if pos == 1 {
		return q.DeleteHead()
	}
	prev := q.nodeAt(pos - 1)
	return q.unlinkAfter(prev), true
}

// DeleteAfter removes the element right after the first match of target.
func (q *Queue[T]) DeleteAfter(target T) (T, bool) {
	var zero T
	n := q.find(target)
	if n == nil || n.next == nil {
		return zero, false
	}
	return q.unlinkAfter(n), true
}

// DeleteBefore removes the element right before the first match of target.
func (q *Queue[T]) DeleteBefore(target T) (T, bool) {
	var zero T
	pos, ok := q.Search(target)
	if !ok || pos == 1 {
		return zero, false
	}
	return q.DeleteAt(pos - 1)
}

// DeleteByValue removes the first element matching target.
func (q *Queue[T]) DeleteByValue(target T) bool {
	prev, n := q.findWithPrev(target)
	if n == nil {
		return false
	}
	if prev == nil {
		q.DeleteHead()
		return true
	}
	q.unlinkAfter(prev)
	return true
}

// Head returns the first element.
func (q *Queue[T]) Head() (T, bool) {
	var zero T
	if q.head == nil {
		return zero, false
	}
	return q.head.value, true
}

// Tail returns the last element.
func (q *Queue[T]) Tail() (T, bool) {
	var zero T
	if q.tail == nil {
		return zero, false
	}
	return q.tail.value, true
}

// At returns the element at 1-based position pos.
func (q *Queue[T]) At(pos int) (T, bool) {
	var zero T
	if pos < 1 || pos > q.size {
		return zero, false
	}
	return q.nodeAt(pos).value, true
}

// Search returns the 1-based position of the first element matching v.
func (q *Queue[T]) Search(v T) (int, bool) {
	pos := 1
	for n := q.head; n != nil; n = n.next {
		if q.compare(n.value, v) == 0 {
			return pos, true
		}
		pos++
	}
	return 0, false
}

// Sort orders the queue ascending with a stable bubble sort.
func (q *Queue[T]) Sort() {
	if q.size < 2 {
		return
	}
	for swapped := true; swapped; {
		swapped = false
		for n := q.head; n.next != nil; n = n.next {
			if q.compare(n.value, n.next.value) > 0 {
				n.value, n.next.value = n.next.value, n.value
				swapped = true
			}
		}
	}
}

// Equal reports whether both queues hold matching elements in the same order.
func (q *Queue[T]) Equal(other *Queue[T]) bool {
	if q.size != other.size {
		return false
	}
	for a, b := q.head, other.head; a != nil; a, b = a.next, b.next {
		if q.compare(a.value, b.value) != 0 {
			return false
		}
	}
	return true
}

// Clear removes every element.
func (q *Queue[T]) Clear() {
	q.head, q.tail, q.size = nil, nil, 0
}

// Values returns the elements in order.
func (q *Queue[T]) Values() []T {
	out := make([]T, 0, q.size)
	for n := q.head; n != nil; n = n.next {
		out = append(out, n.value)
	}
	return out
}

// All iterates over the elements in order.
func (q *Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := q.head; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

func (q *Queue[T]) nodeAt(pos int) *node[T] {
	n := q.head
	for i := 1; i < pos; i++ {
		n = n.next
	}
	return n
}

func (q *Queue[T]) find(target T) *node[T] {
	_, n := q.findWithPrev(target)
	return n
}

func (q *Queue[T]) findWithPrev(target T) (prev, n *node[T]) {
	for n = q.head; n != nil; prev, n = n, n.next {
		if q.compare(n.value, target) == 0 {
			return prev, n
		}
	}
	return nil, nil
}

// unlinkAfter removes prev.next, which must exist.
func (q *Queue[T]) unlinkAfter(prev *node[T]) T {
	n := prev.next
	prev.next = n.next
	if q.tail == n {
		q.tail = prev
	}
	q.size--
	return n.value
}
