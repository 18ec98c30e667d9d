// © 2024 Roman Hargrave
//
// SPDX-License-Identifier: MIT

package scanner

import (
	"encoding/binary"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// Serialized state layout, little-endian throughout:
//
//	[brace frame count: uint64]
//	  [closing delimiter: uint32] x count        innermost first
//	[heredoc frame count: uint64]
//	  [flags: uint32]
//	  [sentinel length: uint64]
//	  [sentinel codepoints: uint32 x length]     oldest first
//
// Counts are 64-bit and delimiters, flags, and codepoints are 32-bit so
// buffers written by the C scanner deserialize unchanged.
const (
	// MaxSerializedSize bounds the serialized session state, matching the
	// fixed-capacity snapshot buffer the host engine provides.
	MaxSerializedSize = 1024

	countSize = 8
	wordSize  = 4
)

// SerializedSize reports the exact byte length Serialize would produce for
// the current state.
func (s *Scanner) SerializedSize() int {
	size := countSize + wordSize*s.braces.Depth() + countSize
	for _, frame := range s.heredocs.frames {
		size += wordSize + countSize + wordSize*utf8.RuneCountInString(frame.Sentinel)
	}
	return size
}

// Serialize captures both stacks as an opaque byte buffer for incremental
// reparsing. Exceeding MaxSerializedSize is a contract violation: the
// host's snapshot buffer is fixed-capacity.
func (s *Scanner) Serialize() []byte {
	size := s.SerializedSize()
	if size > MaxSerializedSize {
		contractf("serialized scanner state needs %d bytes, over the %d byte capacity", size, MaxSerializedSize)
	}

	buf := make([]byte, 0, size)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(s.braces.Depth()))
	for i := s.braces.Depth() - 1; i >= 0; i-- {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(s.braces.frames[i].Closing))
	}
	buf = binary.LittleEndian.AppendUint64(buf, uint64(s.heredocs.Depth()))
	for _, frame := range s.heredocs.frames {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(frame.Flags))
		points := []rune(frame.Sentinel)
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(points)))
		for _, p := range points {
			buf = binary.LittleEndian.AppendUint32(buf, uint32(p))
		}
	}
	return buf
}

// Deserialize replaces the session state wholesale with one previously
// produced by Serialize. Empty input resets both stacks to root depth,
// which is how the host begins a parse with no prior snapshot. Anything
// malformed is a contract violation: the buffer is opaque to the host and
// must round-trip unmodified.
func (s *Scanner) Deserialize(data []byte) {
	s.Reset()
	if len(data) == 0 {
		return
	}
	dec := stateDecoder{buf: data}

	closers := make([]rune, dec.count("brace frame count"))
	for i := range closers {
		closers[i] = rune(dec.word("closing delimiter"))
	}
	slices.Reverse(closers)
	for _, closing := range closers {
		s.braces.restore(closing)
	}

	heredocs := dec.count("heredoc frame count")
	for i := uint64(0); i < heredocs; i++ {
		flags := InterpFlags(dec.word("interpolation flags"))
		points := make([]rune, dec.count("sentinel length"))
		for j := range points {
			points[j] = rune(dec.word("sentinel codepoint"))
		}
		s.heredocs.restore(string(points), flags)
	}
	dec.done()
}

// stateDecoder walks the serialized layout, treating truncation, absurd
// counts, and trailing bytes as contract violations.
type stateDecoder struct {
	buf []byte
	off int
}

func (d *stateDecoder) count(field string) uint64 {
	if d.off+countSize > len(d.buf) {
		contractf("scanner state truncated reading %s", field)
	}
	v := binary.LittleEndian.Uint64(d.buf[d.off:])
	d.off += countSize
	if v > uint64(len(d.buf)/wordSize) {
		contractf("scanner state claims %d entries for %s in a %d byte buffer", v, field, len(d.buf))
	}
	return v
}

func (d *stateDecoder) word(field string) uint32 {
	if d.off+wordSize > len(d.buf) {
		contractf("scanner state truncated reading %s", field)
	}
	v := binary.LittleEndian.Uint32(d.buf[d.off:])
	d.off += wordSize
	return v
}

func (d *stateDecoder) done() {
	if d.off != len(d.buf) {
		contractf("scanner state carries %d trailing bytes", len(d.buf)-d.off)
	}
}
