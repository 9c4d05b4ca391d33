package offer

import (
	"strings"
)

// Segment is a customer classification tag such as "p1".
type Segment string

// DefaultSegments is the recognised segment set when none is configured.
var DefaultSegments = []string{"p1", "p2", "p3"}

// SegmentRegistry is the closed set of segment tags offers may target.
type SegmentRegistry struct {
	ordered []Segment
	index   map[Segment]struct{}
}

// NewSegmentRegistry creates a registry from the given tags.
// Blank and duplicate tags are ignored.
func NewSegmentRegistry(tags ...string) *SegmentRegistry {
	r := &SegmentRegistry{
		ordered: make([]Segment, 0, len(tags)),
		index:   make(map[Segment]struct{}, len(tags)),
	}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		s := Segment(tag)
		if _, exists := r.index[s]; exists {
			continue
		}
		r.index[s] = struct{}{}
		r.ordered = append(r.ordered, s)
	}
	return r
}

// DefaultSegmentRegistry returns a registry holding p1, p2 and p3.
func DefaultSegmentRegistry() *SegmentRegistry {
	return NewSegmentRegistry(DefaultSegments...)
}

// Contains reports whether the tag is a recognised segment.
func (r *SegmentRegistry) Contains(s Segment) bool {
	_, ok := r.index[s]
	return ok
}

// Size returns the number of recognised segments.
func (r *SegmentRegistry) Size() int {
	return len(r.ordered)
}

// Describe lists the segments in English, e.g. "p1, p2, or p3".
func (r *SegmentRegistry) Describe() string {
	names := make([]string, len(r.ordered))
	for i, s := range r.ordered {
		names[i] = string(s)
	}

	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	}
}
