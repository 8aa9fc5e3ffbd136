package list

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type item struct {
	val int
	sn  SinglyNode[item]
	dn  DoublyNode[item]
}

func singlyOf(v *item) *SinglyNode[item] { return &v.sn }
func doublyOf(v *item) *DoublyNode[item] { return &v.dn }

func TestSinglyPushFrontBackAndEach(t *testing.T) {
	l := NewSingly(singlyOf)
	a, b, c := &item{val: 1}, &item{val: 2}, &item{val: 3}
	l.PushBack(a)
	l.PushBack(b)
	l.PushFront(c)

	var order []int
	l.Each(func(v *item) { order = append(order, v.val) })
	require.Equal(t, []int{3, 1, 2}, order)
}

func TestSinglyInsertAfterAndRemove(t *testing.T) {
	l := NewSingly(singlyOf)
	a, b, c := &item{val: 1}, &item{val: 2}, &item{val: 3}
	l.PushBack(a)
	l.PushBack(c)
	l.InsertAfter(a, b)

	var order []int
	l.Each(func(v *item) { order = append(order, v.val) })
	require.Equal(t, []int{1, 2, 3}, order)

	require.True(t, l.Remove(b))
	order = nil
	l.Each(func(v *item) { order = append(order, v.val) })
	require.Equal(t, []int{1, 3}, order)
}

func TestSinglyPopFrontOnEmpty(t *testing.T) {
	l := NewSingly(singlyOf)
	require.Nil(t, l.PopFront())
}

func TestDoublyPushAndTraverseBothDirections(t *testing.T) {
	l := NewDoubly(doublyOf)
	a, b, c := &item{val: 1}, &item{val: 2}, &item{val: 3}
	l.PushBack(a)
	l.PushBack(b)
	l.PushBack(c)
	require.Equal(t, a, l.Head())
	require.Equal(t, c, l.Tail())

	var fwd []int
	for cur := l.Head(); cur != nil; cur = doublyOf(cur).Next() {
		fwd = append(fwd, cur.val)
	}
	require.Equal(t, []int{1, 2, 3}, fwd)

	var back []int
	for cur := l.Tail(); cur != nil; cur = doublyOf(cur).Prev() {
		back = append(back, cur.val)
	}
	require.Equal(t, []int{3, 2, 1}, back)
}

func TestDoublyRemoveMiddleUpdatesNeighbors(t *testing.T) {
	l := NewDoubly(doublyOf)
	a, b, c := &item{val: 1}, &item{val: 2}, &item{val: 3}
	l.PushBack(a)
	l.PushBack(b)
	l.PushBack(c)

	l.Remove(b)
	require.Equal(t, c, doublyOf(a).Next())
	require.Equal(t, a, doublyOf(c).Prev())
	require.Equal(t, a, l.Head())
	require.Equal(t, c, l.Tail())
}

func TestDoublyRemoveHeadAndTail(t *testing.T) {
	l := NewDoubly(doublyOf)
	a, b := &item{val: 1}, &item{val: 2}
	l.PushBack(a)
	l.PushBack(b)

	l.Remove(a)
	require.Equal(t, b, l.Head())
	require.Equal(t, b, l.Tail())

	l.Remove(b)
	require.Nil(t, l.Head())
	require.Nil(t, l.Tail())
}
