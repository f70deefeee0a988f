package kernels

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// zeroSumTolerance decides when a custom matrix counts as deliberately
// signed (sum zero) and is left unnormalized. Plain float64 summation
// of a hand-written zero-sum matrix like 0.1,0.2,0.3|0,0,0|-0.1,-0.2,-0.3
// lands within a few ulps of zero, not on it.
const zeroSumTolerance = 1e-12

// ParseError reports a lexical failure in a custom matrix string. Offset
// is the byte offset of the offending character within Input; Offset ==
// len(Input) means the string ended where more input was required.
type ParseError struct {
	Input  string
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("custom matrix specification error at offset %d: %s", e.Offset, e.Reason)
}

// Diagnostic renders the matrix text with a caret line pointing at the
// failing byte, suitable for printing under the error message.
func (e *ParseError) Diagnostic() string {
	return "\t" + e.Input + "\n\t" + strings.Repeat(" ", e.Offset) + "^"
}

// RowCount derives the matrix side length from the text before parsing:
// the number of '|' separators, plus one unless the text ends with a
// trailing '|' (which closes the last row rather than opening an empty
// one). Callers reject even or non-positive counts before ParseCustom.
func RowCount(text string) int {
	n := strings.Count(text, "|")
	if !strings.HasSuffix(text, "|") {
		n++
	}
	return n
}

// ParseCustom parses a size x size matrix from the grammar: rows
// separated by '|', cells within a row separated by ',', each cell a
// signed decimal number. After each cell the scanner requires ','
// mid-row, '|' at the end of a non-final row, and end-of-input (or one
// trailing '|') after the final cell; anything else fails with a
// *ParseError carrying the offending byte offset.
//
// The parsed matrix is divided by the sum of its cells unless that sum
// is zero (a deliberately signed kernel, e.g. an edge detector), in
// which case it is returned as written.
func ParseCustom(text string, size int) (*mat.Dense, error) {
	out := mat.NewDense(size, size, nil)
	pos := 0
	sum := 0.0
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			n := floatPrefixLen(text[pos:])
			if n == 0 {
				return nil, &ParseError{Input: text, Offset: pos, Reason: "expected a number"}
			}
			v, err := strconv.ParseFloat(text[pos:pos+n], 64)
			if err != nil {
				return nil, &ParseError{Input: text, Offset: pos, Reason: "malformed number"}
			}
			out.Set(i, j, v)
			sum += v
			pos += n

			last := i == size-1 && j == size-1
			switch {
			case j < size-1:
				if pos >= len(text) || text[pos] != ',' {
					return nil, &ParseError{Input: text, Offset: pos, Reason: "expected ','"}
				}
			case !last:
				if pos >= len(text) || text[pos] != '|' {
					return nil, &ParseError{Input: text, Offset: pos, Reason: "expected '|'"}
				}
			default:
				if pos < len(text) && text[pos] != '|' {
					return nil, &ParseError{Input: text, Offset: pos, Reason: "extra characters"}
				}
			}
			if !last {
				pos++
			}
		}
	}
	// Only a single closing '|' may remain.
	if rest := text[pos:]; rest != "" && rest != "|" {
		return nil, &ParseError{Input: text, Offset: pos + 1, Reason: "extra characters"}
	}

	if math.Abs(sum) >= zeroSumTolerance {
		out.Scale(1/sum, out)
	}
	return out, nil
}

// floatPrefixLen returns the length of the longest prefix of s that is
// a valid signed decimal number (optionally with a fraction and
// exponent), or 0 when s does not start with one.
func floatPrefixLen(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			expDigits++
		}
		if expDigits > 0 {
			i = j
		}
	}
	return i
}
