// Package ngrams models the n-gram frequency table used by the language
// identifier and the language subsets that are cut from it.
//
// A Table maps each n-gram to a Row of language id → frequency. Tables
// supplied by callers are treated as read-only: Filter and Clone always
// allocate fresh maps at both levels, so a derived table never shares a Row
// with its source.
package ngrams
