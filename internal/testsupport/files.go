package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"ngramsubset/internal/ngrams"
)

// SampleModule is a small full data module over three languages
// (1=en, 2=es, 3=de).
const SampleModule = `// Copyright 2023 Nito T.M. [ Apache 2.0 Licence https://www.apache.org/licenses/LICENSE-2.0 ]
export const ngramsData = {
   type: "M60",
   languages: {"1":"en","2":"es","3":"de"},
   isSubset: false,
   ngrams: {'xy':{1:5,2:3},'ab':{3:1},"it's":{1:0.5,3:2e-7}}
}`

// SampleTable returns the table carried by SampleModule.
func SampleTable() ngrams.Table {
	return ngrams.Table{
		"xy":   {1: 5, 2: 3},
		"ab":   {3: 1},
		"it's": {1: 0.5, 3: 2e-7},
	}
}

// WriteModule writes SampleModule to path, creating parent directories.
func WriteModule(t testing.TB, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(SampleModule), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
