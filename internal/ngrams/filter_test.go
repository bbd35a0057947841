package ngrams_test

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngramsubset/internal/ngrams"
)

func TestFilterConcreteExample(t *testing.T) {
	table := ngrams.Table{
		"xy": {1: 5, 2: 3},
		"ab": {3: 1},
	}
	got := ngrams.Filter(table, ngrams.NewSubset(1, 2))
	want := ngrams.Table{"xy": {1: 5, 2: 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected filtered table (-want +got):\n%s", diff)
	}
}

func TestFilterKeepsOnlyIntersection(t *testing.T) {
	table := ngrams.Table{
		" a":  {0: 12, 4: 7, 9: 1},
		"ng ": {4: 3},
		"zz":  {9: 2, 11: 8},
		"é":   {2: 0.5},
	}
	cases := []struct {
		name   string
		subset ngrams.Subset
		want   ngrams.Table
	}{
		{
			name:   "single language",
			subset: ngrams.NewSubset(4),
			want:   ngrams.Table{" a": {4: 7}, "ng ": {4: 3}},
		},
		{
			name:   "ids absent from table are ignored",
			subset: ngrams.NewSubset(9, 40, 41),
			want:   ngrams.Table{" a": {9: 1}, "zz": {9: 2}},
		},
		{
			name:   "every language",
			subset: ngrams.NewSubset(0, 2, 4, 9, 11),
			want:   table,
		},
		{
			name:   "no overlap",
			subset: ngrams.NewSubset(30),
			want:   ngrams.Table{},
		},
		{
			name:   "empty subset",
			subset: ngrams.Subset{},
			want:   ngrams.Table{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ngrams.Filter(table, tc.subset)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterIntersectionPropertyRandomTables(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for iter := 0; iter < 50; iter++ {
		table := randomTable(rng, 40, 12)
		var ids []int
		for id := 0; id < 12; id++ {
			if rng.IntN(3) == 0 {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			ids = append(ids, rng.IntN(12))
		}
		subset := ngrams.NewSubset(ids...)
		got := ngrams.Filter(table, subset)

		for key, row := range table {
			expected := ngrams.Row{}
			for id, freq := range row {
				if subset.Contains(id) {
					expected[id] = freq
				}
			}
			filtered, ok := got[key]
			if len(expected) == 0 {
				if ok {
					t.Fatalf("iteration %d: key %q retained without subset ids: %v", iter, key, filtered)
				}
				continue
			}
			if !ok {
				t.Fatalf("iteration %d: key %q missing from filtered table", iter, key)
			}
			if diff := cmp.Diff(expected, filtered); diff != "" {
				t.Fatalf("iteration %d: row %q mismatch (-want +got):\n%s", iter, key, diff)
			}
		}
		for key := range got {
			if _, ok := table[key]; !ok {
				t.Fatalf("iteration %d: filtered table invented key %q", iter, key)
			}
		}
	}
}

func TestFilterDoesNotAliasInput(t *testing.T) {
	table := ngrams.Table{
		"xy": {1: 5, 2: 3},
		"ab": {1: 1, 3: 1},
	}
	before := table.Clone()

	got := ngrams.Filter(table, ngrams.NewSubset(1, 2, 3))
	got["xy"][1] = 99
	delete(got["ab"], 3)
	got["new"] = ngrams.Row{1: 1}
	if diff := cmp.Diff(before, table); diff != "" {
		t.Fatalf("mutating result changed input (-want +got):\n%s", diff)
	}

	table["xy"][2] = 42
	if got["xy"][2] != 3 {
		t.Fatalf("mutating input changed result: got %v want 3", got["xy"][2])
	}
}

func TestCloneIsIndependent(t *testing.T) {
	table := ngrams.Table{"ab": {0: 1}}
	clone := table.Clone()
	clone["ab"][0] = 2
	clone["cd"] = ngrams.Row{1: 1}
	if table["ab"][0] != 1 || len(table) != 1 {
		t.Fatalf("clone shares state with source: %v", table)
	}
	if ngrams.Table(nil).Clone() != nil {
		t.Fatal("expected nil clone of nil table")
	}
}

func randomTable(rng *rand.Rand, size, languages int) ngrams.Table {
	const alphabet = "abcdefg' "
	table := make(ngrams.Table, size)
	for len(table) < size {
		n := 1 + rng.IntN(3)
		key := make([]byte, n)
		for i := range key {
			key[i] = alphabet[rng.IntN(len(alphabet))]
		}
		row := ngrams.Row{}
		for j := 0; j < 1+rng.IntN(4); j++ {
			row[rng.IntN(languages)] = float64(rng.IntN(1000))
		}
		table[string(key)] = row
	}
	return table
}
