// Package artifact composes ELD n-gram subset data modules.
//
// Builder filters a full frequency table down to the requested languages,
// renders it with the literal grammar and wraps it in the data-module
// envelope:
//
//	// Copyright 2023 Nito T.M. [ Apache 2.0 Licence https://www.apache.org/licenses/LICENSE-2.0 ]
//	export const ngramsData = {
//	   type: "M60",
//	   languages: {"11":"en","12":"es"},
//	   isSubset: true,
//	   ngrams: {...}
//	}
//
// The builder only produces bytes and a filename; delivery belongs to the
// sink package. Parse reads such a module, or a full ELD data module, back
// into its parts.
package artifact
