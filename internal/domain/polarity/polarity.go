// Package polarity holds the table of biomarkers for which a lower value is
// the favourable direction.
package polarity

import (
	"sort"

	"github.com/okian/vitals/internal/domain/types"
)

// Built-in lower-is-better biomarker identifiers. Lookups are exact; an id
// that is misspelled here silently classifies as higher-is-better.
const (
	TotalCholesterol = "total_cholesterol"
	LDLCholesterol   = "ldl_cholesterol"
	Glucose          = "glucose"
	Creatinine       = "creatinine"
)

// Table is an immutable set of lower-is-better biomarker ids. The zero value
// is an empty table where every id is higher-is-better. A Table is safe for
// concurrent use.
type Table struct {
	lower map[string]struct{}
}

// New builds a table from the given ids. Empty ids are ignored and the input
// slice is copied.
func New(ids ...string) *Table {
	t := &Table{lower: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id == "" {
			continue
		}
		t.lower[id] = struct{}{}
	}
	return t
}

// Default returns the built-in table.
func Default() *Table {
	return New(TotalCholesterol, LDLCholesterol, Glucose, Creatinine)
}

// Contains reports whether id is listed as lower-is-better.
func (t *Table) Contains(id string) bool {
	if t == nil {
		return false
	}
	_, ok := t.lower[id]
	return ok
}

// Of returns the polarity for id. Unlisted ids default to higher-is-better.
func (t *Table) Of(id string) types.Polarity {
	if t.Contains(id) {
		return types.LowerIsBetter
	}
	return types.HigherIsBetter
}

// IDs returns the lower-is-better ids in sorted order.
func (t *Table) IDs() []string {
	if t == nil {
		return []string{}
	}
	ids := make([]string, 0, len(t.lower))
	for id := range t.lower {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of lower-is-better ids.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.lower)
}
