package literal_test

import (
	"bytes"
	"math"
	"testing"

	"ngramsubset/internal/literal"
	"ngramsubset/internal/ngrams"
)

func TestEncodeConcreteExample(t *testing.T) {
	table := ngrams.Table{"xy": {1: 5, 2: 3}}
	if got, want := literal.Encode(table), "{'xy':{1:5,2:3}}"; got != want {
		t.Fatalf("unexpected encoding: got %q want %q", got, want)
	}
}

func TestEncodeEmptyTable(t *testing.T) {
	for _, table := range []ngrams.Table{nil, {}} {
		if got := literal.Encode(table); got != "{}" {
			t.Fatalf("unexpected encoding of empty table: got %q want %q", got, "{}")
		}
	}
}

func TestEncodeEscapesQuotes(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"a'b", `{'a\'b':{0:1}}`},
		{"''", `{'\'\'':{0:1}}`},
		{`a\b`, `{'a\\b':{0:1}}`},
		{" ñ ", `{' ñ ':{0:1}}`},
		{"a\nb", `{'a\nb':{0:1}}`},
		{"\r\n", `{'\r\n':{0:1}}`},
		{"x\u2028y\u2029", `{'x\u2028y\u2029':{0:1}}`},
	}
	for _, tc := range cases {
		got := literal.Encode(ngrams.Table{tc.key: {0: 1}})
		if got != tc.want {
			t.Fatalf("key %q: got %q want %q", tc.key, got, tc.want)
		}
	}
}

func TestEncodeIsStableAndMinified(t *testing.T) {
	table := ngrams.Table{
		"b":  {3: 1, 0: 2},
		"a":  {10: 4, 2: 0.25},
		" c": {1: 7},
	}
	want := "{' c':{1:7},'a':{2:0.25,10:4},'b':{0:2,3:1}}"
	for i := 0; i < 5; i++ {
		if got := literal.Encode(table); got != want {
			t.Fatalf("run %d: got %q want %q", i, got, want)
		}
	}
}

func TestWriteMatchesEncode(t *testing.T) {
	table := ngrams.Table{"ab": {1: 2}, "c'd": {0: 1.5}}
	var buf bytes.Buffer
	if err := literal.Write(&buf, table); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if buf.String() != literal.Encode(table) {
		t.Fatalf("Write output %q differs from Encode %q", buf.String(), literal.Encode(table))
	}
}

func TestFormatNumber(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{5, "5"},
		{-12, "-12"},
		{0.5, "0.5"},
		{0.1, "0.1"},
		{1234567, "1234567"},
		{0.000001, "0.000001"},
		{0.0000001, "1e-7"},
		{1.5e-10, "1.5e-10"},
		{1e21, "1e+21"},
		{123456789012345680000, "123456789012345680000"},
		{math.Inf(1), "Infinity"},
		{math.NaN(), "NaN"},
	}
	for _, tc := range cases {
		if got := literal.FormatNumber(tc.in); got != tc.want {
			t.Fatalf("FormatNumber(%v): got %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestQuoteKey(t *testing.T) {
	if got, want := literal.QuoteKey("a'b"), `'a\'b'`; got != want {
		t.Fatalf("QuoteKey: got %q want %q", got, want)
	}
}
