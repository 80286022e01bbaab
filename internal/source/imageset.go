package source

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrNoImages is returned when a render is configured without backgrounds.
var ErrNoImages = errors.New("image set is empty")

// ImageSet is the ordered, read-only list of background image references.
// The engine only ever needs its length and index lookups.
type ImageSet struct {
	refs []string
}

func NewImageSet(refs []string) (*ImageSet, error) {
	if len(refs) == 0 {
		return nil, ErrNoImages
	}
	return &ImageSet{refs: append([]string(nil), refs...)}, nil
}

func (s *ImageSet) Len() int {
	return len(s.refs)
}

// At returns the reference at index i, or "" when i is out of range.
func (s *ImageSet) At(i int) string {
	if i < 0 || i >= len(s.refs) {
		return ""
	}
	return s.refs[i]
}

// CoverIndex picks the cover image: the first reference whose file name
// mentions "cover", otherwise the first image.
func (s *ImageSet) CoverIndex() int {
	for i, ref := range s.refs {
		if strings.Contains(strings.ToLower(filepath.Base(ref)), "cover") {
			return i
		}
	}
	return 0
}
