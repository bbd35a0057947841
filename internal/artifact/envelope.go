package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ngramsubset/internal/language"
	"ngramsubset/internal/textutil"
)

const (
	// Attribution is the license line every data module starts with.
	Attribution = "// Copyright 2023 Nito T.M. [ Apache 2.0 Licence https://www.apache.org/licenses/LICENSE-2.0 ]"
	// SymbolName is the exported binding consumers import.
	SymbolName = "ngramsData"
	// MIMEType is the content type handed to sinks.
	MIMEType = "text/javascript"
	// Extension is the filename suffix of data modules.
	Extension = ".js"
)

// Compose renders the data-module envelope around an already serialized
// n-gram body. Fields are emitted in the fixed order type, languages,
// isSubset, ngrams.
func Compose(formatTag string, languages language.Records, body string) (string, error) {
	tag, err := marshalRaw(formatTag)
	if err != nil {
		return "", fmt.Errorf("encode format tag: %w", err)
	}
	langs, err := marshalRaw(languages)
	if err != nil {
		return "", fmt.Errorf("encode languages: %w", err)
	}

	var b strings.Builder
	b.Grow(len(Attribution) + len(langs) + len(body) + 96)
	b.WriteString(Attribution)
	b.WriteString("\nexport const ")
	b.WriteString(SymbolName)
	b.WriteString(" = {\n")
	b.WriteString("   type: ")
	b.Write(tag)
	b.WriteString(",\n   languages: ")
	b.Write(langs)
	b.WriteString(",\n   isSubset: true,\n   ngrams: ")
	b.WriteString(body)
	b.WriteString("\n}")
	return b.String(), nil
}

// marshalRaw is json.Marshal without HTML escaping, so <, > and & in a tag
// reach the module unchanged.
func marshalRaw(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Filename returns ngrams<tag>-<size>_<unixMillis>.js. Characters that are
// unsafe in filenames are stripped from the tag.
func Filename(formatTag string, subsetSize int, at time.Time) string {
	return "ngrams" + textutil.SanitizeFileName(formatTag) +
		"-" + strconv.Itoa(subsetSize) +
		"_" + strconv.FormatInt(at.UnixMilli(), 10) +
		Extension
}
