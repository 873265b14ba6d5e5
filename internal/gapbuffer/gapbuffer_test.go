package gapbuffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushAndGetLine(t *testing.T) {
	g := New()
	g.PushLine("hello")
	g.PushLine("world")
	assert.Equal(t, 2, g.Len())

	content, ok := g.GetLineContent(0)
	require.True(t, ok)
	assert.Equal(t, "hello", content)

	_, ok = g.GetLineContent(5)
	assert.False(t, ok)
}

func TestInsertAndDeleteChar(t *testing.T) {
	g := FromLines([]string{"helo"})
	require.True(t, g.InsertCharAt(0, 3, 'l'))
	content, _ := g.GetLineContent(0)
	assert.Equal(t, "hello", content)

	require.True(t, g.DeleteCharAt(0, 0))
	content, _ = g.GetLineContent(0)
	assert.Equal(t, "ello", content)
}

func TestSplitAndJoinLine(t *testing.T) {
	g := FromLines([]string{"helloworld"})
	require.True(t, g.SplitLineAt(0, 5))
	assert.Equal(t, 2, g.Len())
	l0, _ := g.GetLineContent(0)
	l1, _ := g.GetLineContent(1)
	assert.Equal(t, "hello", l0)
	assert.Equal(t, "world", l1)

	require.True(t, g.JoinLineWithNext(0))
	assert.Equal(t, 1, g.Len())
	joined, _ := g.GetLineContent(0)
	assert.Equal(t, "helloworld", joined)
}

func TestEmptyBuffer(t *testing.T) {
	g := New()
	assert.True(t, g.IsEmpty())
	assert.Equal(t, "", g.AsStr())
}

func TestDisplayWidthWideGrapheme(t *testing.T) {
	g := FromLines([]string{"a中b"}) // wide CJK char is 2 columns
	w, ok := g.GetLineDisplayWidth(0)
	require.True(t, ok)
	assert.Equal(t, 4, w)
}

func TestAsStrNulPadding(t *testing.T) {
	g := FromLines([]string{"ab", "cd"})
	s := g.AsStr()
	assert.Contains(t, s, "ab\x00\x00\x00\x00\ncd\x00\x00\x00\x00")
}
