package artifact_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngramsubset/internal/artifact"
	"ngramsubset/internal/language"
	"ngramsubset/internal/ngrams"
)

func TestParseRoundTripsBuiltArtifact(t *testing.T) {
	table := ngrams.Table{
		"it's": {11: 4, 12: 1},
		" de":  {9: 8, 11: 2},
		"zz":   {59: 1},
	}
	a, err := newTestBuilder().Build(ngrams.NewSubset(11, 12), table, language.Default(), "M60")
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	env, err := artifact.Parse(a.Content)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	want := artifact.Envelope{
		Type:      "M60",
		Languages: map[int]string{11: "en", 12: "es"},
		IsSubset:  true,
		Ngrams: ngrams.Table{
			"it's": {11: 4, 12: 1},
			" de":  {11: 2},
		},
	}
	if diff := cmp.Diff(want, env); diff != "" {
		t.Fatalf("unexpected envelope (-want +got):\n%s", diff)
	}
}

func TestParseFullModuleWithArrayLanguages(t *testing.T) {
	content := `/* ELD full data */
export const ngramsData = {
    type: 'M60',
    languages: ['am', 'ar', 'az'],
    isSubset: false,
    ngrams: {
        ' a': {0: 3, 2: 1},
        'b ': {1: 9}
    }
};
`
	env, err := artifact.Parse(content)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if env.Type != "M60" || env.IsSubset {
		t.Fatalf("unexpected header: type=%q isSubset=%v", env.Type, env.IsSubset)
	}
	if diff := cmp.Diff(map[int]string{0: "am", 1: "ar", 2: "az"}, env.Languages); diff != "" {
		t.Fatalf("unexpected languages (-want +got):\n%s", diff)
	}
	if env.Ngrams.Stats().Pairs != 3 {
		t.Fatalf("unexpected ngrams: %v", env.Ngrams)
	}
}

func TestParseRejectsNonModules(t *testing.T) {
	cases := map[string]string{
		"no object":        "hello",
		"missing ngrams":   "export const ngramsData = {type: 'M60'}",
		"bad type":         "export const ngramsData = {type: 60, ngrams: {}}",
		"bad languages":    "export const ngramsData = {languages: 'en', ngrams: {}}",
		"unassigned":       "ngramsData",
		"scalar data":      "export const ngramsData = 5",
		"broken ngrams":    "export const ngramsData = {ngrams: {'a': 1}}",
		"unterminated":     "export const ngramsData = {ngrams: {}",
		"bad language ids": "export const ngramsData = {languages: {x: 'en'}, ngrams: {}}",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := artifact.Parse(content)
			if err == nil {
				t.Fatal("expected error")
			}
			if name == "no object" && !errors.Is(err, artifact.ErrNotDataModule) {
				t.Fatalf("expected ErrNotDataModule, got %v", err)
			}
		})
	}
}
