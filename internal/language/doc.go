// Package language maps ELD language ids to ISO 639-1 codes and display
// names.
//
// A Catalog is the "default languages" reference of an n-gram data module:
// the position-stable list of languages its frequency rows refer to by id.
// Default returns the 60-language catalog shipped with the ELD M60 data set;
// catalogs read from a data module replace it. Lookups accept ISO 639-1 and
// 639-2 codes, English language names, or the numeric id itself.
package language
