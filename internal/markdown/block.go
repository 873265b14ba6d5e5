package markdown

import (
	"strconv"
	"strings"
)

// BlockKind tags a document block.
type BlockKind int

const (
	BlockMetadata BlockKind = iota
	BlockHeading
	BlockCodeBlock
	BlockSmartList
	BlockParagraph
	BlockBlank
)

// ListItemLine is one physical line belonging to a smart-list item.
// IsFirstLine marks the line that held the bullet; the bullet and checkbox
// state are kept on the ListItem, not emitted as fragments.
type ListItemLine struct {
	Fragments   []Fragment
	IsFirstLine bool
}

// ListItem is one entry of a SmartList block.
type ListItem struct {
	Ordered  bool
	Indent   int
	Number   int // valid when Ordered
	Checkbox *bool
	Lines    []ListItemLine
}

// Block is one element of a parsed document.
type Block struct {
	Kind BlockKind

	// Metadata
	MetaKey   string
	MetaValue string

	// Heading
	Level     int
	Fragments []Fragment

	// CodeBlock
	Language string
	Code     string

	// SmartList
	Items []ListItem
}

const listIndentBase = 2

var metadataKeys = []string{"title", "tags", "authors", "date"}

// stripLineSentinel removes a trailing NUL-padding run (the gap buffer's
// line-end equivalent) from a line before block-level matching.
func stripLineSentinel(line string) string {
	if i := strings.IndexByte(line, 0); i >= 0 {
		return line[:i]
	}
	return line
}

// Parse parses a slice of logical lines into a document IR. Total: any
// construct not recognized becomes a Paragraph of plain text.
func Parse(rawLines []string) []Block {
	lines := make([]string, len(rawLines))
	for i, l := range rawLines {
		lines[i] = stripLineSentinel(l)
	}

	var blocks []Block
	i := 0
	for i < len(lines) {
		line := lines[i]

		switch {
		case line == "":
			blocks = append(blocks, Block{Kind: BlockBlank})
			i++

		case matchMetadata(line) != nil:
			m := matchMetadata(line)
			blocks = append(blocks, *m)
			i++

		case strings.HasPrefix(line, "```"):
			block, next := parseCodeBlock(lines, i)
			blocks = append(blocks, block)
			i = next

		case headingLevel(line) > 0:
			level := headingLevel(line)
			text := strings.TrimSpace(line[level+1:])
			blocks = append(blocks, Block{Kind: BlockHeading, Level: level, Fragments: ParseInline(text, ParseCheckbox)})
			i++

		case isListStart(line):
			block, next := parseSmartList(lines, i)
			blocks = append(blocks, block)
			i = next

		default:
			blocks = append(blocks, Block{Kind: BlockParagraph, Fragments: ParseInline(line, ParseCheckbox)})
			i++
		}
	}
	return blocks
}

func matchMetadata(line string) *Block {
	for _, key := range metadataKeys {
		prefix := "@" + key + ": "
		if strings.HasPrefix(line, prefix) {
			return &Block{Kind: BlockMetadata, MetaKey: key, MetaValue: line[len(prefix):]}
		}
	}
	return nil
}

func headingLevel(line string) int {
	n := 0
	for n < len(line) && n < 6 && line[n] == '#' {
		n++
	}
	if n == 0 || n >= len(line) || line[n] != ' ' {
		return 0
	}
	return n
}

func parseCodeBlock(lines []string, start int) (Block, int) {
	lang := strings.TrimSpace(strings.TrimPrefix(lines[start], "```"))
	var body strings.Builder
	i := start + 1
	for i < len(lines) {
		if strings.HasPrefix(lines[i], "```") {
			i++
			break
		}
		if body.Len() > 0 {
			body.WriteByte('\n')
		}
		body.WriteString(lines[i])
		i++
	}
	return Block{Kind: BlockCodeBlock, Language: lang, Code: body.String()}, i
}

// indentOf returns the number of leading spaces in line.
func indentOf(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

// bulletPrefix detects a list bullet at the start of s (after indentation
// has already been stripped): "- " (unordered) or "<digits>. " (ordered).
// Returns (ordered, number, bulletWidth, ok).
func bulletPrefix(s string) (bool, int, int, bool) {
	if strings.HasPrefix(s, "- ") {
		return false, 0, 2, true
	}
	j := 0
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j > 0 && j+1 < len(s) && s[j] == '.' && s[j+1] == ' ' {
		num, _ := strconv.Atoi(s[:j])
		return true, num, j + 2, true
	}
	return false, 0, 0, false
}

func isListStart(line string) bool {
	indent := indentOf(line)
	if indent%listIndentBase != 0 {
		return false
	}
	_, _, _, ok := bulletPrefix(line[indent:])
	return ok
}

// parseSmartList consumes a run of list items (with continuation lines)
// starting at lines[start], returning the SmartList block and the index of
// the first line after the list.
func parseSmartList(lines []string, start int) (Block, int) {
	block := Block{Kind: BlockSmartList}
	i := start

	for i < len(lines) {
		line := lines[i]
		indent := indentOf(line)
		if indent%listIndentBase != 0 {
			break
		}
		ordered, number, bulletWidth, ok := bulletPrefix(line[indent:])
		if !ok {
			break
		}

		rest := line[indent+bulletWidth:]
		var checkbox *bool
		if cb, n, ok := tryCheckbox(rest); ok {
			checked := cb.Checked
			checkbox = &checked
			rest = rest[n:]
		}

		item := ListItem{Ordered: ordered, Indent: indent, Number: number, Checkbox: checkbox}
		item.Lines = append(item.Lines, ListItemLine{
			Fragments:   ParseInline(strings.TrimLeft(rest, " "), ParseCheckbox),
			IsFirstLine: true,
		})
		i++

		contIndent := indent + bulletWidth
		for i < len(lines) {
			cont := lines[i]
			if strings.TrimSpace(cont) == "" {
				break
			}
			if indentOf(cont) != contIndent {
				break
			}
			if isListStart(cont) {
				break
			}
			item.Lines = append(item.Lines, ListItemLine{
				Fragments:   ParseInline(strings.TrimLeft(cont, " "), ParseCheckbox),
				IsFirstLine: false,
			})
			i++
		}

		block.Items = append(block.Items, item)
	}

	return block, i
}
