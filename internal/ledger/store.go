// Package ledger holds the expense records and answers aggregate queries
// about them: totals, per-category and per-day sums, filtering and budget
// utilization.
package ledger

import (
	"sort"

	"github.com/Veraticus/spent/internal/model"
)

// Store owns the set of expense records. Records are kept in insertion order;
// ids are unique within the store.
type Store struct {
	index   map[string]int
	records []model.Expense
}

// NewStore creates a store seeded with records. Later duplicates of an id
// replace earlier ones.
func NewStore(records ...model.Expense) *Store {
	s := &Store{index: make(map[string]int, len(records))}
	for _, r := range records {
		s.AddOrReplace(r)
	}
	return s
}

// AddOrReplace inserts r, or overwrites the record that shares its id while
// keeping that record's position.
func (s *Store) AddOrReplace(r model.Expense) {
	if i, ok := s.index[r.ID]; ok {
		s.records[i] = r
		return
	}
	s.index[r.ID] = len(s.records)
	s.records = append(s.records, r)
}

// Remove deletes the record with the given id. Unknown ids are ignored.
func (s *Store) Remove(id string) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.records); j++ {
		s.index[s.records[j].ID] = j
	}
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (model.Expense, bool) {
	i, ok := s.index[id]
	if !ok {
		return model.Expense{}, false
	}
	return s.records[i], true
}

// Contains reports whether a record with the given id exists.
func (s *Store) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// All returns a copy of every record in insertion order.
func (s *Store) All() []model.Expense {
	out := make([]model.Expense, len(s.records))
	copy(out, s.records)
	return out
}

// Criteria selects records by inclusive date bounds and category. Empty fields
// match everything.
type Criteria struct {
	StartDate string
	EndDate   string
	Category  model.Category
}

// Matches reports whether r satisfies every supplied criterion. Dates are
// canonical YYYY-MM-DD strings, so lexical comparison orders them correctly.
func (c Criteria) Matches(r model.Expense) bool {
	if c.StartDate != "" && r.Date < c.StartDate {
		return false
	}
	if c.EndDate != "" && r.Date > c.EndDate {
		return false
	}
	if c.Category != "" && r.Category != c.Category {
		return false
	}
	return true
}

// Filter returns the records matching c, in insertion order.
func (s *Store) Filter(c Criteria) []model.Expense {
	out := make([]model.Expense, 0, len(s.records))
	for _, r := range s.records {
		if c.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// SortedByDateDesc returns a copy of records ordered most recent first.
// Records sharing a date keep their relative order.
func SortedByDateDesc(records []model.Expense) []model.Expense {
	out := make([]model.Expense, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}
