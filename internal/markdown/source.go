package markdown

import (
	"strings"

	"github.com/r3bl-org/tuicore/internal/gapbuffer"
)

// ParseGapBuffer parses directly from a GapBuffer's lines (zero-copy: each
// Line.Content() already excludes NUL padding).
func ParseGapBuffer(g *gapbuffer.GapBuffer) []Block {
	lines := g.IterLines()
	content := make([]string, len(lines))
	for i, l := range lines {
		content[i] = l.Content()
	}
	return Parse(content)
}

// ParseMaterialized parses the gap buffer's AsStr() concatenated view,
// splitting on '\n' and relying on Parse's stripLineSentinel to treat the
// NUL padding as a line-end equivalent. Must agree block-for-block with
// ParseGapBuffer over the same buffer.
func ParseMaterialized(materialized string) []Block {
	return Parse(strings.Split(materialized, "\n"))
}
