package ics

import (
	"io"
	"unicode/utf8"
)

// foldLine writes one logical content line folded per RFC 5545 section 3.1:
// the first physical line carries at most MaxLength octets, every
// continuation line a single leading space plus at most MaxLength-1 octets.
// Widths are measured in UTF-8 octets, as the RFC specifies, and a multi-byte
// rune is never split across physical lines.  Input at or under MaxLength
// passes through untouched.
func foldLine(w io.Writer, line string, serialConfig *SerializationConfiguration) error {
	max := serialConfig.MaxLength
	if max <= 0 {
		max = 75
	}
	if len(line) <= max {
		_, err := io.WriteString(w, line+serialConfig.NewLine)
		return err
	}
	seg := nextSegment(line, max)
	if _, err := io.WriteString(w, seg+serialConfig.NewLine); err != nil {
		return err
	}
	line = line[len(seg):]
	for len(line) > max-1 {
		seg = nextSegment(line, max-1)
		if _, err := io.WriteString(w, " "+seg+serialConfig.NewLine); err != nil {
			return err
		}
		line = line[len(seg):]
	}
	if len(line) == 0 {
		return nil
	}
	_, err := io.WriteString(w, " "+line+serialConfig.NewLine)
	return err
}

// nextSegment returns the prefix of line to put on the next physical line.
// A rune wider than the configured width still has to go somewhere, so the
// segment is never empty: the width is exceeded rather than looping without
// consuming input.
func nextSegment(line string, width int) string {
	seg := trimToOctets(line, width)
	if seg == "" {
		_, size := utf8.DecodeRuneInString(line)
		return line[:size]
	}
	return seg
}

// trimToOctets returns the longest prefix of s that fits in maxLength octets
// without cutting a rune in half.
func trimToOctets(s string, maxLength int) string {
	length := 0
	for length < len(s) {
		_, size := utf8.DecodeRuneInString(s[length:])
		if length+size > maxLength {
			break
		}
		length += size
	}
	return s[:length]
}
