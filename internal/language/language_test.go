package language

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngramsubset/internal/ngrams"
)

func TestDefaultCatalog(t *testing.T) {
	cat := Default()
	if cat.Len() != 60 {
		t.Fatalf("unexpected catalog size: got %d want 60", cat.Len())
	}
	tests := []struct {
		id   int
		code string
	}{
		{0, "am"},
		{9, "de"},
		{11, "en"},
		{12, "es"},
		{17, "fr"},
		{59, "zh"},
	}
	for _, tt := range tests {
		entry, ok := cat.Lookup(tt.id)
		if !ok {
			t.Fatalf("id %d missing from catalog", tt.id)
		}
		if entry.Code != tt.code {
			t.Errorf("Lookup(%d).Code = %q, want %q", tt.id, entry.Code, tt.code)
		}
	}
	if _, ok := cat.Lookup(60); ok {
		t.Fatal("did not expect id 60 in the M60 catalog")
	}
}

func TestFind(t *testing.T) {
	cat := Default()
	tests := []struct {
		input string
		id    int
		ok    bool
	}{
		{"en", 11, true},
		{"EN", 11, true},
		{" es ", 12, true},
		{"eng", 11, true},
		{"deu", 9, true},
		{"ger", 9, true},
		{"fre", 17, true},
		{"english", 11, true},
		{"German", 9, true},
		{"59", 59, true},
		{"60", 0, false},
		{"xx", 0, false},
		{"klingon", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			entry, ok := cat.Find(tt.input)
			if ok != tt.ok {
				t.Fatalf("Find(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && entry.ID != tt.id {
				t.Errorf("Find(%q) = %d, want %d", tt.input, entry.ID, tt.id)
			}
		})
	}
}

func TestParseSubset(t *testing.T) {
	cat := Default()
	subset, err := cat.ParseSubset([]string{"en,es", "de", "en", " "})
	if err != nil {
		t.Fatalf("ParseSubset returned error: %v", err)
	}
	if diff := cmp.Diff([]int{9, 11, 12}, subset.IDs()); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}

	_, err = cat.ParseSubset([]string{"en", "xx", "yy"})
	if !errors.Is(err, ErrUnknownLanguage) {
		t.Fatalf("expected ErrUnknownLanguage, got %v", err)
	}
	if err.Error() != "unknown language: xx, yy" {
		t.Fatalf("unexpected error message: %q", err.Error())
	}

	empty, err := cat.ParseSubset(nil)
	if err != nil {
		t.Fatalf("ParseSubset(nil) returned error: %v", err)
	}
	if !empty.Empty() {
		t.Fatalf("expected empty subset, got %v", empty.IDs())
	}
}

func TestResolveMarshalsLanguagesObject(t *testing.T) {
	cat := Default()
	records := cat.Resolve(ngrams.NewSubset(12, 11, 200))
	data, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("marshal records: %v", err)
	}
	if got, want := string(data), `{"11":"en","12":"es"}`; got != want {
		t.Fatalf("unexpected languages JSON: got %s want %s", got, want)
	}
	if diff := cmp.Diff([]string{"en", "es"}, cat.Codes(ngrams.NewSubset(11, 12))); diff != "" {
		t.Fatalf("unexpected codes (-want +got):\n%s", diff)
	}
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	if _, err := NewCatalog(map[int]string{0: "en", 1: "EN"}); err == nil {
		t.Fatal("expected duplicate code error")
	}
	if _, err := NewCatalog(map[int]string{0: ""}); err == nil {
		t.Fatal("expected empty code error")
	}
}

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"EN", "en"},
		{"eng", "en"},
		{"spa", "es"},
		{"fra", "fr"},
		{"fre", "fr"},
		{"deu", "de"},
		{"ger", "de"},
		{"chi", "zh"},
		{"", ""},
		{"not a code", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := ToISO2(tt.input); result != tt.expected {
				t.Errorf("ToISO2(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"eng", "English"},
		{"es", "Spanish"},
		{"fr", "French"},
		{"ger", "German"},
		{"ja", "Japanese"},
		{"zh", "Chinese"},
		{"", "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := DisplayName(tt.input); result != tt.expected {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
