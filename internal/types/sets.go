package types

import (
	"sort"
	"strings"
)

// TagSet is an immutable set of tags. The zero value is an empty set.
//
// Construction copies the caller's slice, and Slice hands back a fresh
// copy, so no caller can reach the backing map.
type TagSet struct {
	items map[Tag]struct{}
}

// NewTagSet builds a set from tags; duplicates collapse into one entry.
func NewTagSet(tags ...Tag) TagSet {
	items := make(map[Tag]struct{}, len(tags))
	for _, t := range tags {
		items[t] = struct{}{}
	}
	return TagSet{items: items}
}

// WithRequiredLabel returns a new set holding every tag of tags plus label.
// tags itself is left untouched; adding a label that is already present is
// a no-op on the result.
func WithRequiredLabel(tags TagSet, label Tag) TagSet {
	items := make(map[Tag]struct{}, len(tags.items)+1)
	for t := range tags.items {
		items[t] = struct{}{}
	}
	items[label] = struct{}{}
	return TagSet{items: items}
}

func (s TagSet) Len() int { return len(s.items) }

func (s TagSet) IsEmpty() bool { return len(s.items) == 0 }

func (s TagSet) Contains(t Tag) bool {
	_, ok := s.items[t]
	return ok
}

// Slice returns the tags ordered by name.
func (s TagSet) Slice() []Tag {
	out := make([]Tag, 0, len(s.items))
	for t := range s.items {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Names returns the bare tag names ordered by name.
func (s TagSet) Names() []string {
	tags := s.Slice()
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.name
	}
	return out
}

func (s TagSet) Equal(other TagSet) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for t := range s.items {
		if _, ok := other.items[t]; !ok {
			return false
		}
	}
	return true
}

// ClassSet is an immutable set of class names such as "Math101".
// The zero value is an empty set.
type ClassSet struct {
	items map[string]struct{}
}

func NewClassSet(classes ...string) ClassSet {
	items := make(map[string]struct{}, len(classes))
	for _, c := range classes {
		items[c] = struct{}{}
	}
	return ClassSet{items: items}
}

func (s ClassSet) Len() int { return len(s.items) }

func (s ClassSet) IsEmpty() bool { return len(s.items) == 0 }

func (s ClassSet) Contains(class string) bool {
	_, ok := s.items[class]
	return ok
}

// Slice returns the class names in sorted order.
func (s ClassSet) Slice() []string {
	out := make([]string, 0, len(s.items))
	for c := range s.items {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func (s ClassSet) Equal(other ClassSet) bool {
	if len(s.items) != len(other.items) {
		return false
	}
	for c := range s.items {
		if _, ok := other.items[c]; !ok {
			return false
		}
	}
	return true
}

// String joins the class names with ", ".
func (s ClassSet) String() string {
	return strings.Join(s.Slice(), ", ")
}
