// Package bst implements an unbalanced binary search tree that accepts
// duplicate keys. It backs the priority scheduler's ready index.
//
// No rebalancing is ever performed, so sorted insertion degrades the tree to
// a list. Duplicates descend left of the first equal node they meet.
package bst

import (
	"cmp"
	"iter"

	"golang.org/x/exp/constraints"
)

type node[T any] struct {
	value       T
	left, right *node[T]
}

// Tree is a binary search tree ordered by a comparator.
type Tree[T any] struct {
	root    *node[T]
	compare func(a, b T) int
}

// New returns an empty tree ordered by compare.
func New[T any](compare func(a, b T) int) *Tree[T] {
	return &Tree[T]{compare: compare}
}

// NewOrdered returns an empty tree for naturally ordered element types.
func NewOrdered[T constraints.Ordered]() *Tree[T] {
	return New(cmp.Compare[T])
}

// Insert adds v. A value that compares less than or equal to a node goes left.
func (t *Tree[T]) Insert(v T) {
	n := &node[T]{value: v}
	if t.root == nil {
		t.root = n
		return
	}
	cur := t.root
	for {
		if t.compare(v, cur.value) <= 0 {
			if cur.left == nil {
				cur.left = n
				return
			}
			cur = cur.left
		} else {
			if cur.right == nil {
				cur.right = n
				return
			}
			cur = cur.right
		}
	}
}

// Search returns the first node value equal to v on the descent from the root.
func (t *Tree[T]) Search(v T) (T, bool) {
	if n := t.search(v); n != nil {
		return n.value, true
	}
	var zero T
	return zero, false
}

func (t *Tree[T]) search(v T) *node[T] {
	cur := t.root
	for cur != nil {
		switch c := t.compare(v, cur.value); {
		case c < 0:
			cur = cur.left
		case c > 0:
			cur = cur.right
		default:
			return cur
		}
	}
	return nil
}

// Remove deletes the node Search would find for v. It reports whether a node
// was removed.
func (t *Tree[T]) Remove(v T) bool {
	var removed bool
	t.root, removed = t.remove(t.root, v)
	return removed
}

func (t *Tree[T]) remove(n *node[T], v T) (*node[T], bool) {
	if n == nil {
		return nil, false
	}
	var removed bool
	switch c := t.compare(v, n.value); {
	case c < 0:
		n.left, removed = t.remove(n.left, v)
		return n, removed
	case c > 0:
		n.right, removed = t.remove(n.right, v)
		return n, removed
	}
	return unlink(n), true
}

// RemoveFunc deletes the first node that compares equal to v and satisfies
// match. Equal keys may sit on either side of an equal node once a successor
// has been promoted, so both subtrees of an equal non-matching node are tried.
func (t *Tree[T]) RemoveFunc(v T, match func(T) bool) bool {
	var removed bool
	t.root, removed = t.removeFunc(t.root, v, match)
	return removed
}

func (t *Tree[T]) removeFunc(n *node[T], v T, match func(T) bool) (*node[T], bool) {
	if n == nil {
		return nil, false
	}
	var removed bool
	switch c := t.compare(v, n.value); {
	case c < 0:
		n.left, removed = t.removeFunc(n.left, v, match)
		return n, removed
	case c > 0:
		n.right, removed = t.removeFunc(n.right, v, match)
		return n, removed
	}
	if !match(n.value) {
		if n.left, removed = t.removeFunc(n.left, v, match); removed {
			return n, true
		}
		n.right, removed = t.removeFunc(n.right, v, match)
		return n, removed
	}
	return unlink(n), true
}

// unlink returns the subtree that replaces n once its value is gone.
func unlink[T any](n *node[T]) *node[T] {
	switch {
	case n.left == nil:
		return n.right
	case n.right == nil:
		return n.left
	}
	// two children: promote the in-order successor
	n.value, n.right = removeMin(n.right)
	return n
}

// removeMin unlinks the leftmost node of n and returns its value and the new subtree.
func removeMin[T any](n *node[T]) (T, *node[T]) {
	if n.left == nil {
		return n.value, n.right
	}
	var v T
	v, n.left = removeMin(n.left)
	return v, n
}

// Max returns the greatest value. When the rightmost node's left child holds
// an equal value, that child is returned instead.
func (t *Tree[T]) Max() (T, bool) {
	var zero T
	if t.root == nil {
		return zero, false
	}
	cur := t.root
	for cur.right != nil {
		cur = cur.right
	}
	if cur.left != nil && t.compare(cur.left.value, cur.value) == 0 {
		return cur.left.value, true
	}
	return cur.value, true
}

// Size counts every node.
func (t *Tree[T]) Size() int { return size(t.root) }

func size[T any](n *node[T]) int {
	if n == nil {
		return 0
	}
	return 1 + size(n.left) + size(n.right)
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree[T]) Height() int { return height(t.root) }

func height[T any](n *node[T]) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.left), height(n.right))
}

// Empty reports whether the tree has no nodes.
func (t *Tree[T]) Empty() bool { return t.root == nil }

// Clear drops every node.
func (t *Tree[T]) Clear() { t.root = nil }

// InOrder iterates over the values in ascending order.
func (t *Tree[T]) InOrder() iter.Seq[T] {
	return func(yield func(T) bool) {
		walk(t.root, yield)
	}
}

func walk[T any](n *node[T], yield func(T) bool) bool {
	if n == nil {
		return true
	}
	return walk(n.left, yield) && yield(n.value) && walk(n.right, yield)
}
