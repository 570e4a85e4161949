package sortfilter

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// naturalCompare compares two strings with embedded integer runs compared
// numerically rather than digit-by-digit, so "file2" sorts before "file10".
// When caseFold is true, comparison is performed on Unicode case-folded
// (lowercased) runes first, implementing ByIRelativePath's case-insensitive
// natural order.
func naturalCompare(a, b string, caseFold bool) int {
	if caseFold {
		a = foldCase(a)
		b = foldCase(b)
	}

	ar, br := []rune(a), []rune(b)
	i, j := 0, 0
	for i < len(ar) && j < len(br) {
		ca, cb := ar[i], br[j]

		if isDigit(ca) && isDigit(cb) {
			ni, na := scanNumber(ar, i)
			nj, nb := scanNumber(br, j)
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
			i, j = ni, nj
			continue
		}

		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}

	switch {
	case len(ar)-i < len(br)-j:
		return -1
	case len(ar)-i > len(br)-j:
		return 1
	default:
		return 0
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// scanNumber reads a maximal run of digits starting at index i, returning the
// index just past the run and its numeric value. Values large enough to
// overflow are capped rather than wrapped, which only affects comparisons
// between two such improbably large runs.
func scanNumber(runes []rune, i int) (int, uint64) {
	var value uint64
	for i < len(runes) && isDigit(runes[i]) {
		d := uint64(runes[i] - '0')
		if value > (1<<63)/10 {
			value = 1 << 63
		} else {
			value = value*10 + d
		}
		i++
	}
	return i, value
}

// foldCase applies Unicode case folding via simple lowercasing after NFC
// normalization, which is sufficient for the natural-order comparisons used
// by ByIRelativePath and friends.
func foldCase(s string) string {
	normalized := norm.NFC.String(s)
	runes := []rune(normalized)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return string(runes)
}
