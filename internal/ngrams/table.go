package ngrams

import "sort"

// Row maps a language id to the frequency of one n-gram in that language.
type Row map[int]float64

// Table maps an n-gram to its per-language frequencies.
type Table map[string]Row

// Stats summarizes the shape of a table.
type Stats struct {
	Ngrams    int
	Pairs     int
	Languages int
}

// Clone returns a structural copy of the row.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for id, freq := range r {
		out[id] = freq
	}
	return out
}

// IDs returns the row's language ids in ascending order.
func (r Row) IDs() []int {
	ids := make([]int, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Clone walks both levels of the table and allocates new maps for each,
// so the copy can be mutated without touching t.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	for key, row := range t {
		out[key] = row.Clone()
	}
	return out
}

// Keys returns the n-gram keys sorted by byte order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for key := range t {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Stats counts n-grams, id/frequency pairs and distinct language ids.
func (t Table) Stats() Stats {
	seen := make(map[int]struct{})
	stats := Stats{Ngrams: len(t)}
	for _, row := range t {
		stats.Pairs += len(row)
		for id := range row {
			seen[id] = struct{}{}
		}
	}
	stats.Languages = len(seen)
	return stats
}

// Coverage reports how many n-grams carry a frequency for each language id.
func (t Table) Coverage() map[int]int {
	counts := make(map[int]int)
	for _, row := range t {
		for id := range row {
			counts[id]++
		}
	}
	return counts
}
