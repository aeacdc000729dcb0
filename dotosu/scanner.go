package dotosu

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type line struct {
	text string
	num  int
}

// Scanner is a forward-only cursor over the non-blank lines of a document.
// Blank and whitespace-only lines are never yielded.
type Scanner struct {
	lines   []line
	pos     int // index of the current line, -1 before the first read
	started bool
}

// NewScanner splits text into trimmed, non-blank lines.
func NewScanner(text string) *Scanner {
	s := &Scanner{pos: -1}
	for i, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		s.lines = append(s.lines, line{text: l, num: i + 1})
	}
	return s
}

// Current returns the current line without consuming it. On a fresh
// scanner it reads the first line.
func (s *Scanner) Current() (string, bool) {
	if !s.started {
		return s.Next()
	}
	if s.pos >= len(s.lines) {
		return "", false
	}
	return s.lines[s.pos].text, true
}

// Next consumes the current line and returns the one after it.
func (s *Scanner) Next() (string, bool) {
	s.started = true
	if s.pos < len(s.lines) {
		s.pos++
	}
	if s.pos >= len(s.lines) {
		return "", false
	}
	return s.lines[s.pos].text, true
}

// Line returns the source line number of the current line, or 0 at end of input.
func (s *Scanner) Line() int {
	if !s.started || s.pos < 0 || s.pos >= len(s.lines) {
		return 0
	}
	return s.lines[s.pos].num
}

// Reset rewinds the scanner to before the first line.
func (s *Scanner) Reset() {
	s.pos = -1
	s.started = false
}

// decodeText turns raw chart bytes into text. A UTF-8 or UTF-16 byte order
// mark selects the encoding and is dropped; without one the bytes are UTF-8.
func decodeText(raw []byte) (string, error) {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
