package ngrams

// Filter returns a new table holding, for every n-gram of t, only the
// frequencies whose language id is in subset. N-grams left without any
// frequency are omitted. The result shares no maps with t.
//
// An empty subset yields an empty table; callers that treat an empty subset
// as a distinct outcome must check before filtering.
func Filter(t Table, subset Subset) Table {
	out := make(Table)
	if subset.Empty() {
		return out
	}
	for key, row := range t {
		var kept Row
		for id, freq := range row {
			if !subset.Contains(id) {
				continue
			}
			if kept == nil {
				kept = make(Row)
			}
			kept[id] = freq
		}
		if len(kept) > 0 {
			out[key] = kept
		}
	}
	return out
}
