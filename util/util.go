package util

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var errEmptyNumber = errors.New("empty number")

// ParseBigInt parses a decimal integer, or a 0x/0o/0b prefixed one.
// Underscores and surrounding spaces are accepted.
func ParseBigInt(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errEmptyNumber
	}
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	return n, nil
}

// Abbrev shortens the decimal form of n to its first and last keep digits.
func Abbrev(n *big.Int, keep int) string {
	return AbbrevDigits(n.String(), keep)
}

// AbbrevDigits is Abbrev for an already formatted decimal string.
func AbbrevDigits(s string, keep int) string {
	digits := strings.TrimPrefix(s, "-")
	if keep <= 0 || len(digits) <= 2*keep+3 {
		return s
	}
	sign := s[:len(s)-len(digits)]
	return fmt.Sprintf("%s%s…%s (%d digits)", sign, digits[:keep], digits[len(digits)-keep:], len(digits))
}
