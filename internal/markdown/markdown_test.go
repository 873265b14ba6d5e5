package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r3bl-org/tuicore/internal/gapbuffer"
)

func TestMetadataBlock(t *testing.T) {
	blocks := Parse([]string{"@title: Hello World"})
	require.Len(t, blocks, 1)
	assert.Equal(t, BlockMetadata, blocks[0].Kind)
	assert.Equal(t, "title", blocks[0].MetaKey)
	assert.Equal(t, "Hello World", blocks[0].MetaValue)
}

func TestHeadingBlock(t *testing.T) {
	blocks := Parse([]string{"## Section _one_"})
	require.Len(t, blocks, 1)
	assert.Equal(t, BlockHeading, blocks[0].Kind)
	assert.Equal(t, 2, blocks[0].Level)
	require.Len(t, blocks[0].Fragments, 2)
	assert.Equal(t, FragItalic, blocks[0].Fragments[1].Kind)
}

func TestCodeBlock(t *testing.T) {
	blocks := Parse([]string{"```go", "fmt.Println(1)", "```"})
	require.Len(t, blocks, 1)
	assert.Equal(t, BlockCodeBlock, blocks[0].Kind)
	assert.Equal(t, "go", blocks[0].Language)
	assert.Equal(t, "fmt.Println(1)", blocks[0].Code)
}

// Scenario 6: "- foo" then "  bar baz" is one list item with two line
// fragments, first is_first_line=true, second false.
func TestListWithContinuation(t *testing.T) {
	blocks := Parse([]string{"- foo", "  bar baz"})
	require.Len(t, blocks, 1)
	require.Equal(t, BlockSmartList, blocks[0].Kind)
	require.Len(t, blocks[0].Items, 1)
	item := blocks[0].Items[0]
	require.Len(t, item.Lines, 2)
	assert.True(t, item.Lines[0].IsFirstLine)
	assert.False(t, item.Lines[1].IsFirstLine)
}

func TestOrderedListWithCheckbox(t *testing.T) {
	blocks := Parse([]string{"1. [x] done", "2. [ ] todo"})
	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Items, 2)
	assert.True(t, blocks[0].Items[0].Ordered)
	require.NotNil(t, blocks[0].Items[0].Checkbox)
	assert.True(t, *blocks[0].Items[0].Checkbox)
	assert.Equal(t, 1, blocks[0].Items[0].Number)
	require.NotNil(t, blocks[0].Items[1].Checkbox)
	assert.False(t, *blocks[0].Items[1].Checkbox)
}

func TestListEndsOnNonConformingLine(t *testing.T) {
	blocks := Parse([]string{"- item one", "not indented", "- item two"})
	require.Len(t, blocks, 3)
	assert.Equal(t, BlockSmartList, blocks[0].Kind)
	assert.Equal(t, BlockParagraph, blocks[1].Kind)
	assert.Equal(t, BlockSmartList, blocks[2].Kind)
}

func TestInlineLinkAndImage(t *testing.T) {
	frags := ParseInline("see [docs](http://x) and ![pic](http://y)", ParseCheckbox)
	var link, image *Fragment
	for i := range frags {
		switch frags[i].Kind {
		case FragLink:
			link = &frags[i]
		case FragImage:
			image = &frags[i]
		}
	}
	require.NotNil(t, link)
	assert.Equal(t, "docs", link.Text)
	assert.Equal(t, "http://x", link.URI)
	require.NotNil(t, image)
	assert.Equal(t, "pic", image.Text)
	assert.Equal(t, "http://y", image.URI)
}

func TestInlineUnbalancedDelimiterIsPlain(t *testing.T) {
	frags := ParseInline("this _is not closed", ParseCheckbox)
	require.Len(t, frags, 1)
	assert.Equal(t, FragPlain, frags[0].Kind)
	assert.Equal(t, "this _is not closed", frags[0].Text)
}

func TestInlineTripleBacktickRejectedAsInlineCode(t *testing.T) {
	frags := ParseInline("```not inline```", ParseCheckbox)
	require.Len(t, frags, 1)
	assert.Equal(t, FragPlain, frags[0].Kind)
}

func TestEmptyDocument(t *testing.T) {
	assert.Empty(t, Parse(nil))
}

// Spec §4.5.3: gap-buffer-sourced parsing and materialized-string parsing
// must agree.
func TestGapBufferAndMaterializedParsingAgree(t *testing.T) {
	lines := []string{"@title: Demo", "# Heading", "", "- foo", "  bar baz", "plain text"}
	g := gapbuffer.FromLines(lines)

	fromGapBuffer := ParseGapBuffer(g)
	fromMaterialized := ParseMaterialized(g.AsStr())

	require.Equal(t, len(fromGapBuffer), len(fromMaterialized))
	for i := range fromGapBuffer {
		assert.Equal(t, fromGapBuffer[i], fromMaterialized[i])
	}
}
