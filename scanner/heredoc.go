// © 2024 Roman Hargrave
//
// SPDX-License-Identifier: MIT

package scanner

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/RomanHargrave/tree-sitter-raku/optional"
)

// InterpFlags records which interpolation forms a heredoc body permits. The
// bit order is part of the serialized state layout.
type InterpFlags uint32

const (
	InterpClosure InterpFlags = 1 << iota
	InterpScalar
	InterpArray
	InterpHash
	InterpFunction
	InterpSubstitution
)

// InterpAll enables every interpolation form, as qq-style heredocs do.
const InterpAll = InterpClosure | InterpScalar | InterpArray | InterpHash | InterpFunction | InterpSubstitution

// flagBodyActive marks the head frame of a heredoc whose body delivery has
// started and stopped short at an interpolation span. It rides in the same
// flags word as the interpolation bits so serialized state carries it.
const flagBodyActive InterpFlags = 1 << 31

func (f InterpFlags) Has(flag InterpFlags) bool {
	return f&flag != 0
}

func (f InterpFlags) With(flag InterpFlags) InterpFlags {
	return f | flag
}

func (f InterpFlags) Without(flag InterpFlags) InterpFlags {
	return f &^ flag
}

var interpNames = []struct {
	flag InterpFlags
	name string
}{
	{InterpClosure, "closure"},
	{InterpScalar, "scalar"},
	{InterpArray, "array"},
	{InterpHash, "hash"},
	{InterpFunction, "function"},
	{InterpSubstitution, "substitution"},
}

func (f InterpFlags) String() string {
	if f == 0 {
		return "none"
	}
	parts := make([]string, 0, len(interpNames)+1)
	for _, entry := range interpNames {
		if f.Has(entry.flag) {
			parts = append(parts, entry.name)
		}
	}
	if f.Has(flagBodyActive) {
		parts = append(parts, "active")
	}
	return strings.Join(parts, "|")
}

// HeredocFrame is one pending heredoc: the sentinel that terminates its
// body and the interpolation forms the body permits. Depth counts frames
// from the root, so the oldest pending frame is depth 1.
type HeredocFrame struct {
	Depth    int
	Sentinel string
	Flags    InterpFlags
}

// HeredocQueue holds the heredocs whose bodies are still owed. Declaration
// order is delivery order: however many heredocs one line declares, bodies
// are consumed for the oldest declaration first.
type HeredocQueue struct {
	frames []HeredocFrame
}

// Push enqueues a pending heredoc and returns its frame. Only the implicit
// root carries an empty sentinel; pushing one is a contract violation.
func (q *HeredocQueue) Push(sentinel string, flags InterpFlags) HeredocFrame {
	if sentinel == "" {
		contractf("heredoc pushed with an empty sentinel")
	}
	frame := HeredocFrame{Depth: len(q.frames) + 1, Sentinel: sentinel, Flags: flags}
	q.frames = append(q.frames, frame)
	return frame
}

// Pop removes and returns the oldest pending heredoc, renumbering the
// remaining frames so depth keeps counting from the root. Popping at root
// depth is a contract violation.
func (q *HeredocQueue) Pop() HeredocFrame {
	if len(q.frames) == 0 {
		contractf("heredoc queue popped at root depth")
	}
	frame := q.frames[0]
	q.frames = append(q.frames[:0], q.frames[1:]...)
	for i := range q.frames {
		q.frames[i].Depth = i + 1
	}
	return frame
}

// Head returns the oldest pending heredoc without removing it, absent when
// only the root remains.
func (q *HeredocQueue) Head() optional.Optional[HeredocFrame] {
	if len(q.frames) == 0 {
		return optional.None[HeredocFrame]()
	}
	return optional.Some(q.frames[0])
}

// Depth is the number of frames above the root.
func (q *HeredocQueue) Depth() int {
	return len(q.frames)
}

// Reset drops every frame, returning the queue to root depth.
func (q *HeredocQueue) Reset() {
	q.frames = q.frames[:0]
}

// Frames returns a copy of the pending frames, oldest first.
func (q *HeredocQueue) Frames() []HeredocFrame {
	return slices.Clone(q.frames)
}

// restore appends a frame as-is, used when rebuilding from serialized
// state.
func (q *HeredocQueue) restore(sentinel string, flags InterpFlags) {
	q.frames = append(q.frames, HeredocFrame{Depth: len(q.frames) + 1, Sentinel: sentinel, Flags: flags})
}

// markHeadActive sets or clears the body-active flag on the oldest frame.
func (q *HeredocQueue) markHeadActive(active bool) {
	if len(q.frames) == 0 {
		return
	}
	if active {
		q.frames[0].Flags = q.frames[0].Flags.With(flagBodyActive)
	} else {
		q.frames[0].Flags = q.frames[0].Flags.Without(flagBodyActive)
	}
}
