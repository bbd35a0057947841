// Package literal renders n-gram tables in the compact object-literal grammar
// embedded in ELD data modules, and reads that grammar back.
//
// The grammar is not JSON: n-gram keys are single-quoted, language ids are
// bare integers and nothing is padded with whitespace. A table renders as
//
//	{'xy':{1:5,2:3},'a\'b':{0:1}}
//
// Encode sorts n-grams and ids so the same table always yields the same
// bytes. Readers of the format must not depend on that order.
package literal
