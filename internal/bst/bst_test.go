package bst

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(vals ...int) *Tree[int] {
	t := NewOrdered[int]()
	for _, v := range vals {
		t.Insert(v)
	}
	return t
}

func TestTree_InsertKeepsOrder(t *testing.T) {
	tr := build(50, 30, 70, 20, 40, 60, 80, 30)
	assert.Equal(t, []int{20, 30, 30, 40, 50, 60, 70, 80}, slices.Collect(tr.InOrder()))
	assert.Equal(t, 8, tr.Size())
	assert.False(t, tr.Empty())
}

func TestTree_Search(t *testing.T) {
	tr := build(5, 3, 8)
	v, ok := tr.Search(8)
	require.True(t, ok)
	assert.Equal(t, 8, v)
	_, ok = tr.Search(4)
	assert.False(t, ok)
	_, ok = NewOrdered[int]().Search(1)
	assert.False(t, ok)
}

func TestTree_Remove(t *testing.T) {
	tests := []struct {
		name   string
		insert []int
		remove int
		want   []int
	}{
		{"leaf", []int{5, 3, 8}, 3, []int{5, 8}},
		{"one child", []int{5, 3, 2}, 3, []int{2, 5}},
		{"two children", []int{50, 30, 70, 60, 80, 65}, 50, []int{30, 60, 65, 70, 80}},
		{"root with one child", []int{5, 8, 9}, 5, []int{8, 9}},
		{"duplicate", []int{5, 5, 5}, 5, []int{5, 5}},
		{"absent", []int{5, 3}, 9, []int{3, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := build(tt.insert...)
			tr.Remove(tt.remove)
			assert.Equal(t, tt.want, slices.Collect(tr.InOrder()))
			assert.Equal(t, len(tt.want), tr.Size())
		})
	}
}

func TestTree_RemoveReportsResult(t *testing.T) {
	tr := build(1)
	assert.False(t, tr.Remove(2))
	assert.True(t, tr.Remove(1))
	assert.True(t, tr.Empty())
	assert.False(t, tr.Remove(1))
}

func TestTree_RemoveSuccessorPromotion(t *testing.T) {
	tr := build(50, 30, 70, 60, 80)
	require.True(t, tr.Remove(50))
	assert.Equal(t, 60, tr.root.value)
	assert.Nil(t, tr.root.right.left)
}

func TestTree_MaxDuplicateAdjustment(t *testing.T) {
	type item struct {
		key int
		id  string
	}
	tr := New(func(a, b item) int { return a.key - b.key })
	tr.Insert(item{1, "root"})
	tr.Insert(item{9, "first"})
	tr.Insert(item{9, "second"})

	m, ok := tr.Max()
	require.True(t, ok)
	assert.Equal(t, item{9, "second"}, m)
}

func TestTree_MaxEmpty(t *testing.T) {
	_, ok := NewOrdered[int]().Max()
	assert.False(t, ok)
}

func TestTree_MaxIsGreatest(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	tr := NewOrdered[int]()
	for i := 0; i < 200; i++ {
		tr.Insert(r.IntN(50))
		if i%3 == 0 {
			tr.Remove(r.IntN(50))
		}
		m, ok := tr.Max()
		if tr.Empty() {
			assert.False(t, ok)
			continue
		}
		require.True(t, ok)
		for v := range tr.InOrder() {
			require.GreaterOrEqual(t, m, v)
		}
	}
}

func TestTree_Unbalanced(t *testing.T) {
	tr := build(1, 2, 3, 4, 5, 6)
	assert.Equal(t, 6, tr.Height())
	assert.Equal(t, 3, build(4, 2, 6, 1, 3, 5, 7).Height())
}

func TestTree_ClearAndEarlyStop(t *testing.T) {
	tr := build(3, 1, 2)
	var seen []int
	for v := range tr.InOrder() {
		seen = append(seen, v)
		if v == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, seen)

	tr.Clear()
	assert.True(t, tr.Empty())
	assert.Equal(t, 0, tr.Size())
	assert.Equal(t, 0, tr.Height())
}

type entry struct {
	key, id int
}

func byKey(a, b entry) int { return a.key - b.key }

func TestTree_RemoveFuncPicksExactDuplicate(t *testing.T) {
	tr := New(byKey)
	for id := 1; id <= 3; id++ {
		tr.Insert(entry{key: 7, id: id})
	}
	tr.Insert(entry{key: 3, id: 4})

	// duplicates lean left, so Max prefers the second insert over the root
	m, ok := tr.Max()
	require.True(t, ok)
	assert.Equal(t, 2, m.id)

	matchID := func(id int) func(entry) bool {
		return func(e entry) bool { return e.id == id }
	}
	require.True(t, tr.RemoveFunc(entry{key: 7}, matchID(2)))
	assert.False(t, tr.RemoveFunc(entry{key: 7}, matchID(2)), "already gone")
	assert.False(t, tr.RemoveFunc(entry{key: 9}, matchID(1)), "absent key")

	var ids []int
	for e := range tr.InOrder() {
		ids = append(ids, e.id)
	}
	assert.ElementsMatch(t, []int{1, 3, 4}, ids)
	assert.Equal(t, 3, tr.Size())

	m, _ = tr.Max()
	assert.Equal(t, 3, m.id)
}

func TestTree_RemoveFuncAfterSuccessorPromotion(t *testing.T) {
	tr := New(byKey)
	for i, k := range []int{5, 3, 8, 8, 9} {
		tr.Insert(entry{key: k, id: i + 1})
	}
	// the successor 8 (id 4) moves into the root; its twin (id 3) ends up on
	// the root's right
	require.True(t, tr.Remove(entry{key: 5}))
	require.True(t, tr.RemoveFunc(entry{key: 8}, func(e entry) bool { return e.id == 3 }))

	var ids []int
	for e := range tr.InOrder() {
		ids = append(ids, e.id)
	}
	assert.Equal(t, []int{2, 4, 5}, ids)
}
