package contentparse

import (
	"strings"
)

// IsComplete reports whether text looks like a finished quiz payload:
// balanced braces and brackets outside string literals, no unterminated
// string, a closing brace at the end, and both "questions" and "topic" keys.
func IsComplete(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || !strings.HasSuffix(trimmed, "}") {
		return false
	}
	if !strings.Contains(trimmed, `"questions"`) || !strings.Contains(trimmed, `"topic"`) {
		return false
	}
	var (
		st                     lexState
		braces, brackets       int
		closeBrace, closeBrack int
	)
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if !st.step(c) {
			continue
		}
		switch c {
		case '{':
			braces++
		case '}':
			closeBrace++
		case '[':
			brackets++
		case ']':
			closeBrack++
		}
	}
	return !st.inString && braces == closeBrace && brackets == closeBrack
}

// Complete closes whatever the text left open so that it has a chance to
// parse: an unterminated string literal is closed, dangling commas are
// dropped, a dangling key separator gets a null value, and the missing
// closers are appended innermost first. Trailing commas before a closer are
// removed everywhere. The result is a best-effort candidate, not a
// guarantee of valid JSON. Complete is idempotent on its own output.
func Complete(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return s
	}

	var st lexState
	for i := 0; i < len(s); i++ {
		st.step(s[i])
	}
	if st.inString {
		if st.escaped {
			s = s[:len(s)-1]
		}
		s += `"`
	}

	s = stripTrailingCommas(s)
	s = strings.TrimRight(s, " \t\r\n")
	for strings.HasSuffix(s, ",") {
		s = strings.TrimRight(strings.TrimSuffix(s, ","), " \t\r\n")
	}
	if strings.HasSuffix(s, ":") {
		s += "null"
	}

	open := unclosed(s)
	if len(open) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(open))
	b.WriteString(s)
	for i := len(open) - 1; i >= 0; i-- {
		b.WriteByte(closerFor(open[i]))
	}
	return b.String()
}

// unclosed returns the openers still pending at the end of s, outermost
// first. Mismatched closers are ignored, as in balancedSpans.
func unclosed(s string) []byte {
	var (
		st    lexState
		stack []byte
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !st.step(c) {
			continue
		}
		switch c {
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) > 0 && closerFor(stack[len(stack)-1]) == c {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return stack
}

// stripTrailingCommas removes commas that are followed, after optional
// whitespace, by a closing brace or bracket. Commas inside string literals
// are kept.
func stripTrailingCommas(s string) string {
	var (
		st  lexState
		out = make([]byte, 0, len(s))
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if st.step(c) && c == ',' {
			j := i + 1
			for j < len(s) && isSpace(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}
		out = append(out, c)
	}
	return string(out)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}
