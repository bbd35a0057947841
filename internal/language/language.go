package language

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"ngramsubset/internal/ngrams"
)

// ErrUnknownLanguage is returned when a requested language is not part of the
// catalog.
var ErrUnknownLanguage = errors.New("unknown language")

// Entry describes one catalog language.
type Entry struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// eldM60 lists the ELD M60 languages; the slice index is the language id.
var eldM60 = []string{
	"am", "ar", "az", "be", "bg", "bn", "ca", "cs", "da", "de",
	"el", "en", "es", "et", "eu", "fa", "fi", "fr", "gu", "he",
	"hi", "hr", "hu", "hy", "is", "it", "ja", "ka", "kn", "ko",
	"ku", "lo", "lt", "lv", "ml", "mr", "ms", "nl", "no", "or",
	"pa", "pl", "pt", "ro", "ru", "sk", "sl", "sq", "sr", "sv",
	"ta", "te", "th", "tl", "tr", "uk", "ur", "vi", "yo", "zh",
}

// ISO 639-2/B codes that x/text does not fold onto their 639-1 form.
var bibliographic = map[string]string{
	"alb": "sq",
	"arm": "hy",
	"baq": "eu",
	"chi": "zh",
	"cze": "cs",
	"dut": "nl",
	"fre": "fr",
	"geo": "ka",
	"ger": "de",
	"gre": "el",
	"ice": "is",
	"per": "fa",
	"rum": "ro",
	"slo": "sk",
}

// Catalog is an immutable id → language table.
type Catalog struct {
	entries []Entry
	byID    map[int]int
	byCode  map[string]int
	byName  map[string]int
}

// Default returns the ELD M60 catalog.
func Default() *Catalog {
	codes := make(map[int]string, len(eldM60))
	for id, code := range eldM60 {
		codes[id] = code
	}
	cat, err := NewCatalog(codes)
	if err != nil {
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return cat
}

// NewCatalog builds a catalog from an id → ISO code mapping. Codes are
// lowercased; duplicate codes are rejected.
func NewCatalog(codes map[int]string) (*Catalog, error) {
	cat := &Catalog{
		entries: make([]Entry, 0, len(codes)),
		byID:    make(map[int]int, len(codes)),
		byCode:  make(map[string]int, len(codes)),
		byName:  make(map[string]int, len(codes)),
	}
	ids := make([]int, 0, len(codes))
	for id := range codes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if id < 0 {
			return nil, fmt.Errorf("language id %d must not be negative", id)
		}
		code := strings.ToLower(strings.TrimSpace(codes[id]))
		if code == "" {
			return nil, fmt.Errorf("language id %d has an empty code", id)
		}
		if other, dup := cat.byCode[code]; dup {
			return nil, fmt.Errorf("language code %q used by ids %d and %d", code, cat.entries[other].ID, id)
		}
		entry := Entry{ID: id, Code: code, Name: DisplayName(code)}
		idx := len(cat.entries)
		cat.entries = append(cat.entries, entry)
		cat.byID[id] = idx
		cat.byCode[code] = idx
		cat.byName[strings.ToLower(entry.Name)] = idx
	}
	return cat, nil
}

// Len returns the number of languages.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns the catalog ordered by id.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup returns the entry for id.
func (c *Catalog) Lookup(id int) (Entry, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[idx], true
}

// Find resolves a code, English name, or numeric id to a catalog entry.
func (c *Catalog) Find(value string) (Entry, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return Entry{}, false
	}
	if id, err := strconv.Atoi(value); err == nil {
		return c.Lookup(id)
	}
	if idx, ok := c.byCode[value]; ok {
		return c.entries[idx], true
	}
	if iso2 := ToISO2(value); iso2 != "" {
		if idx, ok := c.byCode[iso2]; ok {
			return c.entries[idx], true
		}
	}
	if idx, ok := c.byName[value]; ok {
		return c.entries[idx], true
	}
	return Entry{}, false
}

// ParseSubset validates the requested languages against the catalog and
// returns their ids. Values may be comma separated. Every unknown value is
// reported in the returned error, which wraps ErrUnknownLanguage.
func (c *Catalog) ParseSubset(values []string) (ngrams.Subset, error) {
	var (
		ids     []int
		unknown []string
	)
	for _, raw := range values {
		for _, value := range strings.Split(raw, ",") {
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			entry, ok := c.Find(value)
			if !ok {
				unknown = append(unknown, value)
				continue
			}
			ids = append(ids, entry.ID)
		}
	}
	if len(unknown) > 0 {
		return ngrams.Subset{}, fmt.Errorf("%w: %s", ErrUnknownLanguage, strings.Join(unknown, ", "))
	}
	return ngrams.NewSubset(ids...), nil
}

// Codes returns the ISO codes of the subset members known to the catalog.
func (c *Catalog) Codes(subset ngrams.Subset) []string {
	records := c.Resolve(subset)
	codes := make([]string, len(records))
	for i, r := range records {
		codes[i] = r.Code
	}
	return codes
}

// Resolve returns the catalog entries for the subset in ascending id order.
// Ids the catalog does not know are skipped.
func (c *Catalog) Resolve(subset ngrams.Subset) Records {
	records := make(Records, 0, subset.Len())
	for _, id := range subset.IDs() {
		if entry, ok := c.Lookup(id); ok {
			records = append(records, entry)
		}
	}
	return records
}

// CodeMap returns the id → code mapping of the whole catalog.
func (c *Catalog) CodeMap() map[int]string {
	out := make(map[int]string, len(c.entries))
	for _, e := range c.entries {
		out[e.ID] = e.Code
	}
	return out
}

// Records is the language metadata embedded in a data module.
type Records []Entry

// MarshalJSON renders the records as the data module's languages object,
// {"<id>":"<code>",...}, keeping the slice order.
func (r Records) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, entry := range r {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(strconv.Itoa(entry.ID)))
		b.WriteByte(':')
		code, err := json.Marshal(entry.Code)
		if err != nil {
			return nil, err
		}
		b.Write(code)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// ToISO2 converts an ISO 639-1 or 639-2 code to its 639-1 form. Unknown
// input yields the empty string.
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if mapped, ok := bibliographic[code]; ok {
		return mapped
	}
	base, err := xlanguage.ParseBase(code)
	if err != nil {
		return ""
	}
	return base.String()
}

// DisplayName returns the English name for a code. Unrecognized codes are
// returned uppercased; empty input yields "Unknown".
func DisplayName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "Unknown"
	}
	iso2 := ToISO2(code)
	if iso2 == "" {
		return strings.ToUpper(code)
	}
	tag, err := xlanguage.Parse(iso2)
	if err != nil {
		return strings.ToUpper(code)
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return strings.ToUpper(code)
}
