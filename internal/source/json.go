package source

import (
	"encoding/json"
	"fmt"
	"strconv"

	"ngramsubset/internal/ngrams"
)

func loadJSON(ds *Dataset, data []byte) error {
	var raw map[string]map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	table := make(ngrams.Table, len(raw))
	for key, rawRow := range raw {
		row := make(ngrams.Row, len(rawRow))
		for idText, freq := range rawRow {
			id, err := strconv.Atoi(idText)
			if err != nil || id < 0 {
				return fmt.Errorf("ngram %q: invalid language id %q", key, idText)
			}
			row[id] = freq
		}
		table[key] = row
	}
	ds.Table = table
	return nil
}
