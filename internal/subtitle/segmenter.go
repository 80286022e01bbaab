package subtitle

import (
	"strings"
	"unicode"
)

const (
	sentenceDelims = "。？！"
	clauseDelims   = "，；"
)

// Segmenter splits narration text into display lines.
type Segmenter struct {
	// MaxLineLength is the rune count a line may reach before it is broken.
	// Zero disables the overflow guard.
	MaxLineLength int
	// MinSplitIndex keeps overflow breaks away from the start of the line:
	// clause punctuation at or before this rune index is not used as a break.
	MinSplitIndex int
	// ClauseBreaks ends a line on every clause delimiter. When false, clause
	// punctuation stays inside the line and is only used as an overflow break.
	ClauseBreaks bool
}

// DefaultSegmenter returns the segmenter used for narration subtitles.
func DefaultSegmenter() Segmenter {
	return Segmenter{
		MaxLineLength: 25,
		MinSplitIndex: 10,
	}
}

// Split tokenizes text on sentence and clause punctuation and returns the
// display lines in order. Delimiters are never part of a line's tail.
// Empty input yields no lines.
func (s Segmenter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var lines []string
	flush := func(buf []rune) {
		if line := cleanLine(string(buf)); line != "" {
			lines = append(lines, line)
		}
	}

	var buf []rune
	for _, r := range text {
		switch {
		case isSentenceDelim(r), isClauseDelim(r) && s.ClauseBreaks:
			flush(buf)
			buf = buf[:0]
		default:
			if s.MaxLineLength > 0 && len(buf) >= s.MaxLineLength {
				buf = s.breakOverflow(buf, flush)
			}
			// a clause mark cannot open a line
			if isClauseDelim(r) && isBlank(buf) {
				continue
			}
			buf = append(buf, r)
		}
	}
	flush(buf)

	return lines
}

// breakOverflow flushes a full buffer and returns what keeps accumulating.
func (s Segmenter) breakOverflow(buf []rune, flush func([]rune)) []rune {
	split := -1
	for i := len(buf) - 1; i >= 0; i-- {
		if isClauseDelim(buf[i]) {
			split = i
			break
		}
	}

	if split > s.MinSplitIndex {
		flush(buf[:split+1])
		return append([]rune(nil), buf[split+1:]...)
	}

	flush(buf)
	return nil
}

// cleanLine strips trailing punctuation and surrounding whitespace
func cleanLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimRightFunc(line, func(r rune) bool {
		return isSentenceDelim(r) || isClauseDelim(r)
	})
	return strings.TrimSpace(line)
}

func isSentenceDelim(r rune) bool {
	return strings.ContainsRune(sentenceDelims, r)
}

func isClauseDelim(r rune) bool {
	return strings.ContainsRune(clauseDelims, r)
}

func isBlank(buf []rune) bool {
	for _, r := range buf {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
