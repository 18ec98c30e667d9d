// © 2024 Roman Hargrave
//
// SPDX-License-Identifier: MIT

package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateRoundTrip(t *testing.T) {
	t.Parallel()
	type testCase struct {
		name  string
		setup func(s *Scanner)
	}
	testCases := []testCase{
		{
			name:  "root state",
			setup: func(s *Scanner) {},
		},
		{
			name: "braces only",
			setup: func(s *Scanner) {
				s.Braces().Push('(')
				s.Braces().Push('/')
				s.Braces().Push('«')
			},
		},
		{
			name: "heredocs only",
			setup: func(s *Scanner) {
				s.Heredocs().Push("END", InterpAll)
				s.Heredocs().Push("EOF", 0)
				s.Heredocs().Push("FIN", InterpClosure|InterpScalar)
			},
		},
		{
			name: "both stacks",
			setup: func(s *Scanner) {
				s.Braces().Push('[')
				s.Heredocs().Push("END", InterpAll)
				s.Braces().Push('<')
			},
		},
		{
			name: "sentinel outside ascii",
			setup: func(s *Scanner) {
				s.Heredocs().Push("終わり", InterpScalar)
			},
		},
		{
			name: "body active flag",
			setup: func(s *Scanner) {
				s.Heredocs().Push("END", InterpAll)
				s.Heredocs().markHeadActive(true)
			},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			before := New()
			tc.setup(before)

			after := New()
			after.Deserialize(before.Serialize())

			require.Equal(t, before.Braces().Frames(), after.Braces().Frames())
			require.Equal(t, before.Heredocs().Frames(), after.Heredocs().Frames())
			require.Equal(t, before.Serialize(), after.Serialize())
		})
	}
}

func TestStateLayout(t *testing.T) {
	t.Parallel()
	s := New()
	s.Braces().Push('(')
	s.Braces().Push('[')
	s.Heredocs().Push("A", InterpAll)

	require.Equal(t, []byte{
		2, 0, 0, 0, 0, 0, 0, 0, // two brace frames
		']', 0, 0, 0, // innermost first
		')', 0, 0, 0,
		1, 0, 0, 0, 0, 0, 0, 0, // one heredoc frame
		0x3f, 0, 0, 0, // every interpolation flag
		1, 0, 0, 0, 0, 0, 0, 0, // one sentinel codepoint
		'A', 0, 0, 0,
	}, s.Serialize())
	require.Equal(t, s.SerializedSize(), len(s.Serialize()))
}

func TestStateDeserializeEmptyResets(t *testing.T) {
	t.Parallel()
	s := New()
	s.Braces().Push('(')
	s.Heredocs().Push("END", 0)

	s.Deserialize(nil)
	require.Equal(t, 0, s.Braces().Depth())
	require.Equal(t, 0, s.Heredocs().Depth())
}

func TestStateSerializeOverflow(t *testing.T) {
	t.Parallel()
	s := New()
	s.Heredocs().Push(strings.Repeat("x", 300), InterpAll)

	require.Greater(t, s.SerializedSize(), MaxSerializedSize)
	require.Panics(t, func() {
		s.Serialize()
	})
}

func TestStateDeserializeMalformed(t *testing.T) {
	t.Parallel()
	valid := func() []byte {
		s := New()
		s.Braces().Push('(')
		s.Heredocs().Push("END", InterpAll)
		return s.Serialize()
	}()

	type testCase struct {
		name string
		data []byte
	}
	testCases := []testCase{
		{name: "truncated count", data: valid[:4]},
		{name: "truncated frame", data: valid[:len(valid)-1]},
		{name: "trailing bytes", data: append(append([]byte{}, valid...), 0)},
		{name: "absurd count", data: []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := New()
			require.Panics(t, func() {
				s.Deserialize(tc.data)
			})
		})
	}
}
