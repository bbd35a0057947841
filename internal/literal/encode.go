package literal

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"ngramsubset/internal/ngrams"
)

// keyEscaper keeps keys inside a single-quoted JavaScript string. Line
// terminators would end the literal, so they are escaped along with quotes
// and backslashes.
var keyEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

type stringWriter interface {
	io.Writer
	io.StringWriter
	io.ByteWriter
}

// Encode renders t in the data-module literal grammar. An empty or nil
// table renders as "{}". Keys are single-quoted; besides \' the output also
// escapes backslashes as \\ and line terminators (\n, \r, \u2028, \u2029)
// so every key reads back unchanged as JavaScript.
func Encode(t ngrams.Table) string {
	var b strings.Builder
	b.Grow(estimateSize(t))
	writeTable(&b, t)
	return b.String()
}

// Write streams the literal rendering of t to w.
func Write(w io.Writer, t ngrams.Table) error {
	bw := bufio.NewWriter(w)
	writeTable(bw, t)
	return bw.Flush()
}

// QuoteKey returns key wrapped in single quotes, escaped as in Encode.
func QuoteKey(key string) string {
	return "'" + keyEscaper.Replace(key) + "'"
}

func writeTable(w stringWriter, t ngrams.Table) {
	_ = w.WriteByte('{')
	for i, key := range t.Keys() {
		if i > 0 {
			_ = w.WriteByte(',')
		}
		_ = w.WriteByte('\'')
		_, _ = keyEscaper.WriteString(w, key)
		_, _ = w.WriteString("':")
		writeRow(w, t[key])
	}
	_ = w.WriteByte('}')
}

func writeRow(w stringWriter, row ngrams.Row) {
	_ = w.WriteByte('{')
	for i, id := range row.IDs() {
		if i > 0 {
			_ = w.WriteByte(',')
		}
		_, _ = w.WriteString(strconv.Itoa(id))
		_ = w.WriteByte(':')
		_, _ = w.WriteString(FormatNumber(row[id]))
	}
	_ = w.WriteByte('}')
}

// FormatNumber renders f the way a JavaScript engine prints a Number:
// integers carry no decimal point, fractions use the shortest round-trip
// digits, and exponent notation only appears below 1e-6 or from 1e21 up.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func estimateSize(t ngrams.Table) int {
	size := 2
	for key, row := range t {
		size += len(key) + 6 + len(row)*6
	}
	return size
}
