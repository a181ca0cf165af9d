package util

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────── ParseBigInt ────────

func TestParseBigInt_Decimal(t *testing.T) {
	n, err := ParseBigInt(" 8051 ")
	require.NoError(t, err)
	assert.Equal(t, int64(8051), n.Int64())
}

func TestParseBigInt_Prefixes(t *testing.T) {
	n, err := ParseBigInt("0x1f73")
	require.NoError(t, err)
	assert.Equal(t, int64(8051), n.Int64())

	n, err = ParseBigInt("1_000_003")
	require.NoError(t, err)
	assert.Equal(t, int64(1000003), n.Int64())
}

func TestParseBigInt_Large(t *testing.T) {
	s := "1000000000000000000000000000000000000000007"
	n, err := ParseBigInt(s)
	require.NoError(t, err)
	assert.Equal(t, s, n.String())
}

func TestParseBigInt_Invalid(t *testing.T) {
	for _, s := range []string{"", "   ", "12a", "1e9", "--3"} {
		_, err := ParseBigInt(s)
		assert.Error(t, err, "%q", s)
	}
}

// ──────── Abbrev ────────

func TestAbbrev_Short(t *testing.T) {
	assert.Equal(t, "8051", Abbrev(big.NewInt(8051), 4))
	assert.Equal(t, "-130", Abbrev(big.NewInt(-130), 1))
}

func TestAbbrev_Long(t *testing.T) {
	n, _ := new(big.Int).SetString("1"+strings.Repeat("0", 39)+"7", 10)
	assert.Equal(t, "1000…0007 (41 digits)", Abbrev(n, 4))
	assert.Equal(t, "-1000…0007 (41 digits)", Abbrev(new(big.Int).Neg(n), 4))
}

func TestAbbrevDigits(t *testing.T) {
	assert.Equal(t, "12345678901", AbbrevDigits("12345678901", 4))
	assert.Equal(t, "1234…9012 (12 digits)", AbbrevDigits("123456789012", 4))
}
