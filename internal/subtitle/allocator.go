package subtitle

import "unicode/utf8"

// Line is one displayed chunk of a segment's text with its time share.
type Line struct {
	Text     string
	Start    float64 // offset from the segment start, seconds
	Duration float64 // seconds
}

// End returns the line's end offset within the segment
func (l Line) End() float64 {
	return l.Start + l.Duration
}

// Allocator distributes a segment's speaking time over its lines in
// proportion to their length.
type Allocator struct {
	// MinDuration is the per-line floor in seconds. With the floor applied
	// the allocated sum may exceed the segment duration; that overrun is kept.
	MinDuration float64
}

// DefaultAllocator returns the allocator with the one second floor.
func DefaultAllocator() Allocator {
	return Allocator{MinDuration: 1.0}
}

// Allocate returns one duration per line. It returns nil when there is
// nothing to weigh.
func (a Allocator) Allocate(lines []string, total float64) []float64 {
	if len(lines) == 0 {
		return nil
	}

	chars := make([]int, len(lines))
	totalChars := 0
	for i, line := range lines {
		chars[i] = utf8.RuneCountInString(line)
		totalChars += chars[i]
	}
	if totalChars == 0 {
		return nil
	}

	durations := make([]float64, len(lines))
	for i, c := range chars {
		d := total * float64(c) / float64(totalChars)
		if d < a.MinDuration {
			d = a.MinDuration
		}
		durations[i] = d
	}
	return durations
}

// Lines allocates durations and lays the lines out back to back.
func (a Allocator) Lines(lines []string, total float64) []Line {
	durations := a.Allocate(lines, total)
	if durations == nil {
		return nil
	}

	out := make([]Line, len(lines))
	offset := 0.0
	for i, text := range lines {
		out[i] = Line{Text: text, Start: offset, Duration: durations[i]}
		offset += durations[i]
	}
	return out
}
