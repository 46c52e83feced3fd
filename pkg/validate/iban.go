package validate

import (
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// ibanShape is the IBAN grammar: a two-letter country code, two check
// digits and an 11 to 30 character BBAN.
var ibanShape = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)

var mod97Divisor = big.NewInt(97)

// SanitizeIBAN strips separators and uppercases, the shape account
// fields arrive in after manual entry ("gb90 midl 4005-1522..." and
// the like).
func SanitizeIBAN(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteByte(c - 'a' + 'A')
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		}
	}
	return b.String()
}

// IsIBANShaped reports whether s, once sanitized, matches the IBAN
// grammar. Values that do not are domestic account schemes, not
// malformed IBANs.
func IsIBANShaped(s string) bool {
	return ibanShape.MatchString(SanitizeIBAN(s))
}

// ValidIBAN reports whether s carries a correct Modulo-97 checksum.
// Separators and case are tolerated; a value that does not match the
// IBAN grammar at all is invalid.
func ValidIBAN(s string) bool {
	iban := SanitizeIBAN(s)
	if !ibanShape.MatchString(iban) {
		return false
	}
	return mod97(iban[4:]+iban[:4]) == 1
}

// ComputeIBANCheckDigits derives the two check digits that make
// country+digits+bban pass the Modulo-97 check.
func ComputeIBANCheckDigits(country, bban string) string {
	remainder := mod97(bban + country + "00")
	return fmt.Sprintf("%02d", 98-remainder)
}

// mod97 transliterates letters to numerals (A=10 ... Z=35) and
// reduces the full numeral modulo 97. Inputs outside [A-Z0-9] yield
// -1, which no caller treats as a passing remainder.
func mod97(s string) int {
	var numeric strings.Builder
	numeric.Grow(len(s) * 2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			numeric.WriteString(strconv.Itoa(int(c-'A') + 10))
		case c >= '0' && c <= '9':
			numeric.WriteByte(c)
		default:
			return -1
		}
	}
	n, ok := new(big.Int).SetString(numeric.String(), 10)
	if !ok {
		return -1
	}
	return int(new(big.Int).Mod(n, mod97Divisor).Int64())
}
