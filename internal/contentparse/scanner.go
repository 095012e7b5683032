package contentparse

// lexState tracks whether the scan position is inside a JSON string literal.
// A backslash escapes exactly one following character, so `\\"` ends the
// string while `\"` does not.
type lexState struct {
	inString bool
	escaped  bool
}

// step consumes c and reports whether it is structural, i.e. outside any
// string literal and not itself a quote.
func (s *lexState) step(c byte) bool {
	if s.inString {
		switch {
		case s.escaped:
			s.escaped = false
		case c == '\\':
			s.escaped = true
		case c == '"':
			s.inString = false
		}
		return false
	}
	if c == '"' {
		s.inString = true
		return false
	}
	return true
}

func closerFor(open byte) byte {
	if open == '[' {
		return ']'
	}
	return '}'
}

// span is a balanced bracket region text[start:end].
type span struct {
	start int
	end   int
	depth int
	open  byte
}

// balancedSpans returns every balanced region whose opening character is in
// opens ("{", "[" or "{["). Regions are reported in the order they close, so
// inner regions come before the region enclosing them and siblings keep
// their textual order. A closer that does not match the innermost open
// region is ignored.
func balancedSpans(text string, opens string) []span {
	type frame struct {
		pos  int
		open byte
	}
	var (
		st    lexState
		stack []frame
		spans []span
	)
	tracks := func(c byte) bool {
		for i := 0; i < len(opens); i++ {
			if opens[i] == c {
				return true
			}
		}
		return false
	}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if !st.step(c) {
			continue
		}
		switch c {
		case '{', '[':
			if tracks(c) {
				stack = append(stack, frame{pos: i, open: c})
			}
		case '}', ']':
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			if closerFor(top.open) != c {
				continue
			}
			stack = stack[:len(stack)-1]
			spans = append(spans, span{start: top.pos, end: i + 1, depth: len(stack), open: top.open})
		}
	}
	return spans
}

// matchingClose returns the index just past the bracket that closes the
// opener at text[open], or -1 when the text ends first.
func matchingClose(text string, open int) int {
	if open < 0 || open >= len(text) {
		return -1
	}
	opener := text[open]
	if opener != '{' && opener != '[' {
		return -1
	}
	var (
		st    lexState
		stack []byte
	)
	for i := open; i < len(text); i++ {
		c := text[i]
		if !st.step(c) {
			continue
		}
		switch c {
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) == 0 || closerFor(stack[len(stack)-1]) != c {
				continue
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// segment is a run of text that is either a string literal (quotes
// included) or structural text between literals.
type segment struct {
	text    string
	literal bool
}

// splitLiterals cuts text into alternating structural and literal segments.
// An unterminated literal runs to the end of the text.
func splitLiterals(text string) []segment {
	var (
		st       lexState
		segments []segment
		start    int
	)
	for i := 0; i < len(text); i++ {
		wasInString := st.inString
		st.step(text[i])
		switch {
		case !wasInString && st.inString:
			if i > start {
				segments = append(segments, segment{text: text[start:i]})
			}
			start = i
		case wasInString && !st.inString:
			segments = append(segments, segment{text: text[start : i+1], literal: true})
			start = i + 1
		}
	}
	if start < len(text) {
		segments = append(segments, segment{text: text[start:], literal: st.inString})
	}
	return segments
}

// mapStructural applies fn to every structural segment and leaves string
// literals untouched.
func mapStructural(text string, fn func(string) string) string {
	segments := splitLiterals(text)
	out := make([]byte, 0, len(text))
	for _, seg := range segments {
		if seg.literal {
			out = append(out, seg.text...)
			continue
		}
		out = append(out, fn(seg.text)...)
	}
	return string(out)
}
