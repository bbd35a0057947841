package artifact

import (
	"errors"
	"time"

	"github.com/jonboulle/clockwork"

	"ngramsubset/internal/language"
	"ngramsubset/internal/literal"
	"ngramsubset/internal/ngrams"
)

// ErrEmptySubset reports a build request without languages. It is an
// informational outcome rather than a failure.
var ErrEmptySubset = errors.New("no languages found")

// LanguageLookup resolves subset ids to the metadata embedded in the module.
type LanguageLookup interface {
	Resolve(subset ngrams.Subset) language.Records
}

// Artifact is a composed data module ready for delivery.
type Artifact struct {
	Content   string
	Filename  string
	MIMEType  string
	FormatTag string
	Subset    ngrams.Subset
	Languages language.Records
	Stats     ngrams.Stats
	CreatedAt time.Time
}

// Bytes returns the content as bytes.
func (a Artifact) Bytes() []byte {
	return []byte(a.Content)
}

// Size returns the content length in bytes.
func (a Artifact) Size() int {
	return len(a.Content)
}

// Option configures a Builder.
type Option func(*Builder)

// WithClock overrides the clock used for filename timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(b *Builder) {
		if clock != nil {
			b.clock = clock
		}
	}
}

// Builder turns a full table into a subset data module. It holds no state
// between calls and is safe for concurrent use.
type Builder struct {
	clock clockwork.Clock
}

// NewBuilder constructs a Builder using the real clock unless overridden.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{clock: clockwork.NewRealClock()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build filters table to subset, serializes it and wraps it in the module
// envelope. An empty subset returns ErrEmptySubset before any work is done.
// The table is never modified.
func (b *Builder) Build(subset ngrams.Subset, table ngrams.Table, lookup LanguageLookup, formatTag string) (Artifact, error) {
	if subset.Empty() {
		return Artifact{}, ErrEmptySubset
	}

	filtered := ngrams.Filter(table, subset)
	body := literal.Encode(filtered)

	var languages language.Records
	if lookup != nil {
		languages = lookup.Resolve(subset)
	}
	if languages == nil {
		languages = language.Records{}
	}

	content, err := Compose(formatTag, languages, body)
	if err != nil {
		return Artifact{}, err
	}

	now := b.clock.Now()
	return Artifact{
		Content:   content,
		Filename:  Filename(formatTag, subset.Len(), now),
		MIMEType:  MIMEType,
		FormatTag: formatTag,
		Subset:    subset,
		Languages: languages,
		Stats:     filtered.Stats(),
		CreatedAt: now,
	}, nil
}
