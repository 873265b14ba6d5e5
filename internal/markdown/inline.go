package markdown

import "strings"

// ParseInline parses one newline-free line into inline fragments, trying
// recognizers in priority order at each position: italic, bold, inline
// code, image, link, checkbox, then plain text up to the next special
// character.
func ParseInline(line string, policy CheckboxPolicy) []Fragment {
	var frags []Fragment
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			frags = append(frags, Fragment{Kind: FragPlain, Text: plain.String()})
			plain.Reset()
		}
	}

	i := 0
	for i < len(line) {
		rest := line[i:]

		if frag, n, ok := tryItalic(rest); ok {
			flush()
			frags = append(frags, frag)
			i += n
			continue
		}
		if frag, n, ok := tryBold(rest); ok {
			flush()
			frags = append(frags, frag)
			i += n
			continue
		}
		if frag, n, ok := tryInlineCode(rest); ok {
			flush()
			frags = append(frags, frag)
			i += n
			continue
		}
		if frag, n, ok := tryImage(rest); ok {
			flush()
			frags = append(frags, frag)
			i += n
			continue
		}
		if frag, n, ok := tryLink(rest); ok {
			flush()
			frags = append(frags, frag)
			i += n
			continue
		}
		if policy == ParseCheckbox {
			if frag, n, ok := tryCheckbox(rest); ok {
				flush()
				frags = append(frags, frag)
				i += n
				continue
			}
		}

		if strings.HasPrefix(rest, "```") {
			// A run of three or more backticks stays plain text as a whole,
			// so no backtick inside the run can open inline code.
			n := len(rest) - len(strings.TrimLeft(rest, "`"))
			plain.WriteString(rest[:n])
			i += n
			continue
		}

		plain.WriteByte(line[i])
		i++
	}
	flush()
	return frags
}

// balancedDelim finds content between a single leading delim byte and the
// next occurrence of the same byte, not crossing the line (no newlines in
// input by construction). Returns (content, totalConsumed, ok).
func balancedDelim(s string, delim byte) (string, int, bool) {
	if len(s) == 0 || s[0] != delim {
		return "", 0, false
	}
	end := strings.IndexByte(s[1:], delim)
	if end < 0 {
		return "", 0, false
	}
	content := s[1 : 1+end]
	if content == "" {
		return "", 0, false
	}
	return content, 1 + end + 1, true
}

func tryItalic(s string) (Fragment, int, bool) {
	content, n, ok := balancedDelim(s, '_')
	if !ok {
		return Fragment{}, 0, false
	}
	return Fragment{Kind: FragItalic, Text: content}, n, true
}

func tryBold(s string) (Fragment, int, bool) {
	content, n, ok := balancedDelim(s, '*')
	if !ok {
		return Fragment{}, 0, false
	}
	return Fragment{Kind: FragBold, Text: content}, n, true
}

func tryInlineCode(s string) (Fragment, int, bool) {
	if len(s) < 2 || s[0] != '`' {
		return Fragment{}, 0, false
	}
	if strings.HasPrefix(s, "```") {
		// Three or more consecutive backticks: not inline code here.
		return Fragment{}, 0, false
	}
	content, n, ok := balancedDelim(s, '`')
	if !ok {
		return Fragment{}, 0, false
	}
	return Fragment{Kind: FragInlineCode, Text: content}, n, true
}

// bracketParen parses "<prefix><inner1>](<inner2>)" at the start of s,
// returning inner1, inner2, total bytes consumed.
func bracketParen(s string, prefix string) (string, string, int, bool) {
	if !strings.HasPrefix(s, prefix) {
		return "", "", 0, false
	}
	rest := s[len(prefix):]
	closeBracket := strings.IndexByte(rest, ']')
	if closeBracket < 0 {
		return "", "", 0, false
	}
	inner1 := rest[:closeBracket]
	afterBracket := rest[closeBracket+1:]
	if len(afterBracket) == 0 || afterBracket[0] != '(' {
		return "", "", 0, false
	}
	closeParen := strings.IndexByte(afterBracket, ')')
	if closeParen < 0 {
		return "", "", 0, false
	}
	inner2 := afterBracket[1:closeParen]
	total := len(prefix) + closeBracket + 1 + closeParen + 1
	return inner1, inner2, total, true
}

func tryImage(s string) (Fragment, int, bool) {
	alt, uri, n, ok := bracketParen(s, "![")
	if !ok {
		return Fragment{}, 0, false
	}
	return Fragment{Kind: FragImage, Text: alt, URI: uri}, n, true
}

func tryLink(s string) (Fragment, int, bool) {
	text, uri, n, ok := bracketParen(s, "[")
	if !ok {
		return Fragment{}, 0, false
	}
	return Fragment{Kind: FragLink, Text: text, URI: uri}, n, true
}

func tryCheckbox(s string) (Fragment, int, bool) {
	if strings.HasPrefix(s, "[ ]") {
		return Fragment{Kind: FragCheckbox, Checked: false}, 3, true
	}
	if strings.HasPrefix(s, "[x]") || strings.HasPrefix(s, "[X]") {
		return Fragment{Kind: FragCheckbox, Checked: true}, 3, true
	}
	return Fragment{}, 0, false
}
