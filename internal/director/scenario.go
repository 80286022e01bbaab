package director

// Scenario is the cue sheet of a render: the frames at which something
// visible changes, for an external compositor to schedule its work around.
type Scenario struct {
	Version     string `yaml:"version"`
	Mode        string `yaml:"mode"`
	FPS         int    `yaml:"fps"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	TotalFrames int    `yaml:"total_frames"`
	Cues        []Cue  `yaml:"cues"`
}

// CueKind names what changed at a cue.
type CueKind string

const (
	CueBackground   CueKind = "background"
	CueSegmentStart CueKind = "segment_start"
	CueSegmentEnd   CueKind = "segment_end"
	CueLine         CueKind = "line"
	CueHold         CueKind = "hold"
)

// Cue is a single change point
type Cue struct {
	Frame int     `yaml:"frame"`
	Time  float64 `yaml:"time"` // Seconds from the start of the composition
	Kind  CueKind `yaml:"kind"`
	// Index is the image index for background cues, the segment index for
	// segment and hold cues and the line index for line cues.
	Index   int    `yaml:"index"`
	Speaker string `yaml:"speaker,omitempty"`
	Text    string `yaml:"text,omitempty"`
}

// Count returns the number of cues of the given kind.
func (s *Scenario) Count(kind CueKind) int {
	n := 0
	for _, c := range s.Cues {
		if c.Kind == kind {
			n++
		}
	}
	return n
}
