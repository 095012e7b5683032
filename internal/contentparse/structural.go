package contentparse

import (
	"regexp"
	"strings"
)

var (
	smartQuotes = strings.NewReplacer(
		"“", `"`, "”", `"`, "„", `"`, "‟", `"`,
		"‘", "'", "’", "'", "‚", "'", "‛", "'",
	)
	controlChars    = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	bareKey         = regexp.MustCompile(`([{,]\s*)([A-Za-z_$][A-Za-z0-9_$-]*)(\s*:)`)
	trailingComma   = regexp.MustCompile(`,(\s*[}\]])`)
	adjacentBlocks  = regexp.MustCompile(`([}\]])(\s*)([{\[])`)
	closerThenSpace = regexp.MustCompile(`[}\]]\s*$`)
)

// structuralRepair applies the textual fixes models most often need:
// control characters are stripped, smart and single quotes become double
// quotes, bare keys are quoted, trailing commas are dropped, and missing
// commas are inserted between adjacent strings and between a closed value
// and the next key or value.
func structuralRepair(text string) string {
	s := controlChars.ReplaceAllString(text, "")
	s = smartQuotes.Replace(s)
	s = convertSingleQuotes(s)
	s = mapStructural(s, func(seg string) string {
		seg = bareKey.ReplaceAllString(seg, `$1"$2"$3`)
		seg = trailingComma.ReplaceAllString(seg, "$1")
		return adjacentBlocks.ReplaceAllString(seg, "$1,$2$3")
	})
	s = insertMissingCommas(s)
	s = escapeRawNewlines(s)
	return stripTrailingCommas(s)
}

var rawWhitespace = strings.NewReplacer("\r\n", `\n`, "\n", `\n`, "\r", `\n`, "\t", `\t`)

// escapeRawNewlines escapes line breaks and tabs that appear unescaped
// inside string literals.
func escapeRawNewlines(s string) string {
	segments := splitLiterals(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, seg := range segments {
		if seg.literal {
			b.WriteString(rawWhitespace.Replace(seg.text))
			continue
		}
		b.WriteString(seg.text)
	}
	return b.String()
}

// convertSingleQuotes rewrites single-quoted strings outside double-quoted
// literals as double-quoted ones, escaping any double quotes they contain.
// Apostrophes inside double-quoted strings are left alone.
func convertSingleQuotes(s string) string {
	if !strings.Contains(s, "'") {
		return s
	}
	var (
		b        strings.Builder
		inDouble bool
		inSingle bool
		escaped  bool
	)
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
			if inSingle && c == '\'' {
				// \' needs no escape inside a double-quoted string
				b.WriteByte(c)
				continue
			}
			b.WriteByte('\\')
			b.WriteByte(c)
		case (inDouble || inSingle) && c == '\\':
			escaped = true
		case inDouble:
			if c == '"' {
				inDouble = false
			}
			b.WriteByte(c)
		case inSingle:
			switch c {
			case '\'':
				inSingle = false
				b.WriteByte('"')
			case '"':
				b.WriteString(`\"`)
			default:
				b.WriteByte(c)
			}
		case c == '"':
			inDouble = true
			b.WriteByte(c)
		case c == '\'':
			inSingle = true
			b.WriteByte('"')
		default:
			b.WriteByte(c)
		}
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}

// insertMissingCommas adds a comma before a string literal that directly
// follows another literal, or a closed object or array, with only
// whitespace in between.
func insertMissingCommas(s string) string {
	segments := splitLiterals(s)
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i, seg := range segments {
		if seg.literal && i > 0 {
			prev := segments[i-1]
			switch {
			case prev.literal:
				b.WriteByte(',')
			case i > 1 && segments[i-2].literal && strings.TrimSpace(prev.text) == "":
				b.WriteByte(',')
			case closerThenSpace.MatchString(prev.text):
				b.WriteByte(',')
			}
		}
		b.WriteString(seg.text)
	}
	return b.String()
}
