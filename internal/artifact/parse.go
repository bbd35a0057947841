package artifact

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ngramsubset/internal/literal"
	"ngramsubset/internal/ngrams"
)

// ErrNotDataModule reports content that does not carry an ngrams data object.
var ErrNotDataModule = errors.New("not an ngrams data module")

// Envelope is the decoded form of a data module.
type Envelope struct {
	Type      string
	Languages map[int]string
	IsSubset  bool
	Ngrams    ngrams.Table
}

// Parse decodes a data module produced by Builder or shipped with ELD. The
// object bound to ngramsData is used when present, otherwise the first
// object literal in the file. Languages may be an id-keyed object or an
// array indexed by id.
func Parse(content string) (Envelope, error) {
	start, err := objectStart(content)
	if err != nil {
		return Envelope{}, err
	}
	value, _, err := literal.ParsePrefix(content[start:])
	if err != nil {
		return Envelope{}, fmt.Errorf("parse data object: %w", err)
	}
	obj, ok := value.(*literal.Object)
	if !ok {
		return Envelope{}, fmt.Errorf("%w: %s is %T, not an object", ErrNotDataModule, SymbolName, value)
	}

	var env Envelope
	if v, ok := obj.Get("type"); ok {
		s, ok := v.(string)
		if !ok {
			return Envelope{}, fmt.Errorf("%w: type must be a string", ErrNotDataModule)
		}
		env.Type = s
	}
	if v, ok := obj.Get("isSubset"); ok {
		b, ok := v.(bool)
		if !ok {
			return Envelope{}, fmt.Errorf("%w: isSubset must be a boolean", ErrNotDataModule)
		}
		env.IsSubset = b
	}
	if v, ok := obj.Get("languages"); ok {
		env.Languages, err = languagesFromValue(v)
		if err != nil {
			return Envelope{}, err
		}
	}
	raw, ok := obj.Get("ngrams")
	if !ok {
		return Envelope{}, fmt.Errorf("%w: missing ngrams field", ErrNotDataModule)
	}
	env.Ngrams, err = literal.TableFromValue(raw)
	if err != nil {
		return Envelope{}, fmt.Errorf("decode ngrams: %w", err)
	}
	return env, nil
}

func objectStart(content string) (int, error) {
	if idx := strings.Index(content, SymbolName); idx >= 0 {
		eq := strings.IndexByte(content[idx:], '=')
		if eq < 0 {
			return 0, fmt.Errorf("%w: %s is not assigned", ErrNotDataModule, SymbolName)
		}
		return idx + eq + 1, nil
	}
	if idx := strings.IndexByte(content, '{'); idx >= 0 {
		return idx, nil
	}
	return 0, ErrNotDataModule
}

func languagesFromValue(v any) (map[int]string, error) {
	out := make(map[int]string)
	switch langs := v.(type) {
	case *literal.Object:
		for _, key := range langs.Keys {
			id, err := strconv.Atoi(key)
			if err != nil || id < 0 {
				return nil, fmt.Errorf("%w: language id %q is not an integer", ErrNotDataModule, key)
			}
			code, ok := langs.Values[key].(string)
			if !ok {
				return nil, fmt.Errorf("%w: language %d code must be a string", ErrNotDataModule, id)
			}
			out[id] = code
		}
	case []any:
		for id, item := range langs {
			code, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: language %d code must be a string", ErrNotDataModule, id)
			}
			out[id] = code
		}
	default:
		return nil, fmt.Errorf("%w: languages must be an object or array", ErrNotDataModule)
	}
	return out, nil
}
