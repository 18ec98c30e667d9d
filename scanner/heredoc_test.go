// © 2024 Roman Hargrave
//
// SPDX-License-Identifier: MIT

package scanner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInterpFlags(t *testing.T) {
	t.Parallel()
	flags := InterpClosure.With(InterpScalar)

	require.True(t, flags.Has(InterpClosure))
	require.True(t, flags.Has(InterpScalar))
	require.False(t, flags.Has(InterpArray))

	require.False(t, flags.Without(InterpScalar).Has(InterpScalar))
	require.True(t, InterpAll.Has(InterpSubstitution))

	require.Equal(t, "none", InterpFlags(0).String())
	require.Equal(t, "closure|scalar", flags.String())
	require.Equal(t, "closure|scalar|array|hash|function|substitution", InterpAll.String())
	require.Equal(t, "scalar|active", InterpScalar.With(flagBodyActive).String())
}

func TestHeredocQueueOrder(t *testing.T) {
	t.Parallel()
	var queue HeredocQueue

	require.Equal(t, 0, queue.Depth())
	require.False(t, queue.Head().IsPresent())

	a := queue.Push("A", InterpAll)
	require.Equal(t, HeredocFrame{Depth: 1, Sentinel: "A", Flags: InterpAll}, a)
	b := queue.Push("B", 0)
	require.Equal(t, HeredocFrame{Depth: 2, Sentinel: "B", Flags: 0}, b)
	c := queue.Push("C", InterpClosure)
	require.Equal(t, HeredocFrame{Depth: 3, Sentinel: "C", Flags: InterpClosure}, c)
	require.Equal(t, 3, queue.Depth())

	// Oldest declaration first, however many share a line.
	require.Equal(t, a, queue.Head().Value())
	require.Equal(t, a, queue.Pop())

	// Remaining frames renumber from the root.
	require.Equal(t, HeredocFrame{Depth: 1, Sentinel: "B", Flags: 0}, queue.Head().Value())
	require.Equal(t, HeredocFrame{Depth: 1, Sentinel: "B", Flags: 0}, queue.Pop())
	require.Equal(t, HeredocFrame{Depth: 1, Sentinel: "C", Flags: InterpClosure}, queue.Pop())

	require.Equal(t, 0, queue.Depth())
	require.False(t, queue.Head().IsPresent())
}

func TestHeredocQueuePopAtRoot(t *testing.T) {
	t.Parallel()
	var queue HeredocQueue
	require.Panics(t, func() {
		queue.Pop()
	})
}

func TestHeredocQueueEmptySentinel(t *testing.T) {
	t.Parallel()
	var queue HeredocQueue
	require.Panics(t, func() {
		queue.Push("", InterpAll)
	})
}

func TestHeredocQueueReset(t *testing.T) {
	t.Parallel()
	var queue HeredocQueue
	queue.Push("END", 0)
	queue.Push("EOF", InterpAll)

	queue.Reset()
	require.Equal(t, 0, queue.Depth())
	require.Empty(t, queue.Frames())
}

func TestHeredocQueueMarkHeadActive(t *testing.T) {
	t.Parallel()
	var queue HeredocQueue

	// A no-op at root depth.
	queue.markHeadActive(true)

	queue.Push("END", InterpScalar)
	queue.Push("EOF", InterpScalar)

	queue.markHeadActive(true)
	require.True(t, queue.Frames()[0].Flags.Has(flagBodyActive))
	require.False(t, queue.Frames()[1].Flags.Has(flagBodyActive))

	queue.markHeadActive(false)
	require.False(t, queue.Frames()[0].Flags.Has(flagBodyActive))
	require.Equal(t, InterpScalar, queue.Frames()[0].Flags)
}
