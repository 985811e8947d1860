package grouping

import "smartsort/internal/textutil"

// Record is the classification outcome for one file. Records are not modified
// after they are added to a Store.
type Record struct {
	SourcePath    string
	RawCategory   string
	SuggestedName string
	Keywords      textutil.KeywordSet
}

// Member is one file inside a cluster or merged group.
type Member struct {
	SourcePath    string
	SuggestedName string
	RawCategory   string
}

// Store holds the records gathered during one run.
type Store struct {
	records  []Record
	order    []string
	profiles map[string]textutil.KeywordSet
	byCat    map[string][]int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		profiles: make(map[string]textutil.KeywordSet),
		byCat:    make(map[string][]int),
	}
}

// Add appends a record and folds its keywords into its category profile.
func (s *Store) Add(rec Record) {
	kw := textutil.NewKeywordSet()
	kw.Merge(rec.Keywords)
	rec.Keywords = kw

	profile, ok := s.profiles[rec.RawCategory]
	if !ok {
		profile = textutil.NewKeywordSet()
		s.profiles[rec.RawCategory] = profile
		s.order = append(s.order, rec.RawCategory)
	}
	profile.Merge(kw)

	s.byCat[rec.RawCategory] = append(s.byCat[rec.RawCategory], len(s.records))
	s.records = append(s.records, rec)
}

// Len reports the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Records returns the records in arrival order.
func (s *Store) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Categories returns raw categories in the order they were first seen.
func (s *Store) Categories() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Profile returns the keyword union for a raw category. The returned set is
// shared with the store and must not be modified.
func (s *Store) Profile(category string) textutil.KeywordSet {
	return s.profiles[category]
}

// Profiles returns the category keyword profiles.
func (s *Store) Profiles() map[string]textutil.KeywordSet {
	out := make(map[string]textutil.KeywordSet, len(s.profiles))
	for cat, kw := range s.profiles {
		out[cat] = kw
	}
	return out
}

// MembersOf returns the files classified under category in arrival order.
func (s *Store) MembersOf(category string) []Member {
	idx := s.byCat[category]
	out := make([]Member, 0, len(idx))
	for _, i := range idx {
		rec := s.records[i]
		out = append(out, Member{
			SourcePath:    rec.SourcePath,
			SuggestedName: rec.SuggestedName,
			RawCategory:   rec.RawCategory,
		})
	}
	return out
}
