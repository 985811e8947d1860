package textutil

import "sort"

// KeywordSet is an unordered set of keywords.
type KeywordSet map[string]struct{}

// NewKeywordSet builds a set from the provided words. Empty words are skipped.
func NewKeywordSet(words ...string) KeywordSet {
	set := make(KeywordSet, len(words))
	for _, word := range words {
		if word == "" {
			continue
		}
		set[word] = struct{}{}
	}
	return set
}

// Add inserts the provided words into the set.
func (s KeywordSet) Add(words ...string) {
	for _, word := range words {
		if word == "" {
			continue
		}
		s[word] = struct{}{}
	}
}

// Merge inserts every member of other into the set.
func (s KeywordSet) Merge(other KeywordSet) {
	for word := range other {
		s[word] = struct{}{}
	}
}

// Contains reports whether word is a member of the set.
func (s KeywordSet) Contains(word string) bool {
	_, ok := s[word]
	return ok
}

// Sorted returns the members in lexical order.
func (s KeywordSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for word := range s {
		out = append(out, word)
	}
	sort.Strings(out)
	return out
}

// Jaccard computes |a ∩ b| / |a ∪ b|. Returns 0 when the union is empty.
func Jaccard(a, b KeywordSet) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	intersection := 0
	for word := range a {
		if b.Contains(word) {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
