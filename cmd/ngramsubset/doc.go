// Command ngramsubset cuts language subsets out of an ELD n-gram frequency
// database and saves them as standalone data modules.
//
// Typical use:
//
//	ngramsubset build --source ngramsM60.js --languages en,es,de
//	ngramsubset build -l fr --sink stdout > ngrams-fr.js
//	ngramsubset inspect ngramsM60-3_1693526400123.js
//	ngramsubset languages
//	ngramsubset history
//
// Settings come from ~/.config/ngramsubset/config.toml (or ./ngramsubset.toml,
// or --config), overridden by NGRAMSUBSET_* environment variables and flags.
package main
