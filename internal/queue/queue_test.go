package queue

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(vals ...int) *Queue[int] {
	q := NewOrdered[int]()
	for _, v := range vals {
		q.InsertTail(v)
	}
	return q
}

func TestQueue_HeadTailFIFO(t *testing.T) {
	q := NewOrdered[int]()
	assert.True(t, q.Empty())

	q.InsertTail(1)
	q.InsertTail(2)
	q.InsertHead(0)
	assert.Equal(t, []int{0, 1, 2}, q.Values())

	h, ok := q.Head()
	require.True(t, ok)
	assert.Equal(t, 0, h)
	tl, ok := q.Tail()
	require.True(t, ok)
	assert.Equal(t, 2, tl)

	v, ok := q.DeleteTail()
	require.True(t, ok)
	assert.Equal(t, 2, v)
	v, _ = q.DeleteHead()
	assert.Equal(t, 0, v)
	v, _ = q.DeleteHead()
	assert.Equal(t, 1, v)

	_, ok = q.DeleteHead()
	assert.False(t, ok)
	_, ok = q.DeleteTail()
	assert.False(t, ok)
	assert.Equal(t, 0, q.Size())

	q.InsertTail(9)
	h, _ = q.Head()
	tl, _ = q.Tail()
	assert.Equal(t, 9, h)
	assert.Equal(t, 9, tl)
}

func TestQueue_Positional(t *testing.T) {
	q := filled(1, 2, 4)
	q.InsertAt(3, 3)
	q.InsertAt(1, 0)
	q.InsertAt(6, 5)
	q.InsertAt(0, 99)
	q.InsertAt(42, 99)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, q.Values())

	v, ok := q.At(4)
	require.True(t, ok)
	assert.Equal(t, 3, v)
	_, ok = q.At(7)
	assert.False(t, ok)

	v, ok = q.DeleteAt(6)
	require.True(t, ok)
	assert.Equal(t, 5, v)
	tl, _ := q.Tail()
	assert.Equal(t, 4, tl)

	_, ok = q.DeleteAt(0)
	assert.False(t, ok)
	assert.Equal(t, 5, q.Size())
}

func TestQueue_RelativeToTarget(t *testing.T) {
	q := filled(1, 3)
	q.InsertAfter(1, 2)
	q.InsertAfter(3, 4)
	q.InsertBefore(1, 0)
	q.InsertAfter(42, 99)
	q.InsertBefore(42, 99)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, q.Values())
	tl, _ := q.Tail()
	assert.Equal(t, 4, tl)

	v, ok := q.DeleteAfter(3)
	require.True(t, ok)
	assert.Equal(t, 4, v)
	tl, _ = q.Tail()
	assert.Equal(t, 3, tl)

	v, ok = q.DeleteBefore(2)
	require.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = q.DeleteBefore(0)
	assert.False(t, ok)
	_, ok = q.DeleteAfter(3)
	assert.False(t, ok)
	assert.Equal(t, []int{0, 2, 3}, q.Values())
}

func TestQueue_DeleteByValue_FirstMatch(t *testing.T) {
	type item struct {
		key, tag int
	}
	q := New(func(a, b item) int { return a.key - b.key })
	q.InsertTail(item{1, 1})
	q.InsertTail(item{2, 1})
	q.InsertTail(item{1, 2})

	assert.True(t, q.DeleteByValue(item{key: 1}))
	assert.Equal(t, []item{{2, 1}, {1, 2}}, q.Values())

	assert.True(t, q.DeleteByValue(item{key: 1}))
	tl, _ := q.Tail()
	assert.Equal(t, item{2, 1}, tl)

	assert.False(t, q.DeleteByValue(item{key: 7}))
	assert.Equal(t, 1, q.Size())
}

func TestQueue_Search(t *testing.T) {
	q := filled(5, 6, 5)
	pos, ok := q.Search(5)
	assert.True(t, ok)
	assert.Equal(t, 1, pos)
	pos, ok = q.Search(6)
	assert.True(t, ok)
	assert.Equal(t, 2, pos)
	_, ok = q.Search(7)
	assert.False(t, ok)
}

func TestQueue_InsertOrdered(t *testing.T) {
	q := NewOrdered[int]()
	for _, v := range []int{5, 1, 3, 9, 3, 0} {
		q.InsertOrdered(v)
	}
	assert.Equal(t, []int{0, 1, 3, 3, 5, 9}, q.Values())
	tl, _ := q.Tail()
	assert.Equal(t, 9, tl)
}

func TestQueue_SortIsStable(t *testing.T) {
	type item struct {
		key  int
		name string
	}
	q := New(func(a, b item) int { return a.key - b.key })
	for _, it := range []item{{3, "a"}, {1, "b"}, {3, "c"}, {2, "d"}, {1, "e"}} {
		q.InsertTail(it)
	}
	q.Sort()
	assert.Equal(t, []item{{1, "b"}, {1, "e"}, {2, "d"}, {3, "a"}, {3, "c"}}, q.Values())
}

func TestQueue_Equal(t *testing.T) {
	assert.True(t, filled(1, 2, 3).Equal(filled(1, 2, 3)))
	assert.False(t, filled(1, 2, 3).Equal(filled(3, 2, 1)))
	assert.False(t, filled(1, 2).Equal(filled(1, 2, 3)))
	assert.True(t, NewOrdered[int]().Equal(NewOrdered[int]()))
}

func TestQueue_ClearAndAll(t *testing.T) {
	q := filled(1, 2, 3, 4)
	assert.Equal(t, []int{1, 2, 3, 4}, slices.Collect(q.All()))

	var seen []int
	for v := range q.All() {
		if v == 3 {
			break
		}
		seen = append(seen, v)
	}
	assert.Equal(t, []int{1, 2}, seen)

	q.Clear()
	assert.True(t, q.Empty())
	_, ok := q.Head()
	assert.False(t, ok)
	q.InsertTail(7)
	assert.Equal(t, []int{7}, q.Values())
}
