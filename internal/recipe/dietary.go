package recipe

import "strings"

// KnownDietaryTags are the restrictions offered as toggles.
var KnownDietaryTags = []string{
	"Vegetarian",
	"Vegan",
	"Gluten-Free",
	"Dairy-Free",
	"Keto",
	"Low-Carb",
	"Nut-Free",
}

// DietarySet is an insertion-ordered set of dietary tags. Tags are only
// removed by toggling them off. The zero value is ready to use.
type DietarySet struct {
	tags []string
}

// NewDietarySet builds a set from tags, dropping blanks and duplicates.
func NewDietarySet(tags ...string) *DietarySet {
	s := &DietarySet{}
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" && !s.Has(t) {
			s.tags = append(s.tags, t)
		}
	}
	return s
}

// Toggle adds the tag when absent and removes it when present. It reports
// whether the tag is set afterwards. Matching ignores case.
func (s *DietarySet) Toggle(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	for i, t := range s.tags {
		if strings.EqualFold(t, tag) {
			s.tags = append(s.tags[:i], s.tags[i+1:]...)
			return false
		}
	}
	s.tags = append(s.tags, canonicalTag(tag))
	return true
}

// Has reports whether the tag is set.
func (s *DietarySet) Has(tag string) bool {
	for _, t := range s.tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Tags returns a copy of the set in insertion order.
func (s *DietarySet) Tags() []string {
	out := make([]string, len(s.tags))
	copy(out, s.tags)
	return out
}

func canonicalTag(tag string) string {
	for _, known := range KnownDietaryTags {
		if strings.EqualFold(known, tag) {
			return known
		}
	}
	return tag
}
