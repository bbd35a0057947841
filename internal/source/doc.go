// Package source loads the full n-gram frequency table a subset is cut from.
//
// Three encodings are understood: an ELD data module (the .js file ELD ships,
// read with the literal parser, which also yields the module's language list
// and type tag), a JSON object of the same shape, and a SQLite database with an
// ngrams(ngram, language_id, frequency) table and an optional languages(id,
// code) table. Any of them may be compressed with gzip, zstd or lz4; the
// compression is recognised from the file extension. Reads are bounded by a
// configurable maximum size.
package source
