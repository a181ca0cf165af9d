package printer

import (
	"bytes"
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxtrace/qsieve/qs"
)

func factor8051(t *testing.T) *qs.Factorization {
	t.Helper()
	f, err := qs.Factor(context.Background(), big.NewInt(8051), qs.Config{Mode: qs.ModeTrial, Bound: 30, SearchLimit: 50})
	require.NoError(t, err)
	return f
}

func TestRelationFactors(t *testing.T) {
	base := []int64{-1, 2, 5, 7, 13, 23}
	rel := qs.Relation{X: big.NewInt(76), Y: big.NewInt(-2275), Exponents: []int{1, 0, 2, 1, 1, 0}}
	assert.Equal(t, "-1 · 5^2 · 7 · 13", RelationFactors(base, rel))
	assert.Equal(t, "100110", ParityString(base, rel))

	// a relation from before the base grew has fewer columns
	short := qs.Relation{X: big.NewInt(90), Y: big.NewInt(49), Exponents: []int{0, 0, 0, 2}}
	assert.Equal(t, "7^2", RelationFactors(base, short))
	assert.Equal(t, "000000", ParityString(base, short))

	// y is refactored, so a cofactor outside the base shows up
	stray := qs.Relation{X: big.NewInt(92), Y: big.NewInt(413), Exponents: []int{0, 0, 0, 1}}
	assert.Equal(t, "7 · 59", RelationFactors(base, stray))
}

func TestRelationRows(t *testing.T) {
	f := factor8051(t)
	require.Len(t, f.Splits, 1)
	rows := RelationRows(f.Splits[0])
	require.Len(t, rows, 7)

	assert.Equal(t, RelationRow{Index: "0", X: "89", Y: "-130", Factors: "-1 · 2 · 5 · 13", Parity: "111010"}, rows[0])
	assert.Equal(t, "1*", rows[1].Index)
	assert.Equal(t, "7^2", rows[1].Factors)
}

func TestSplitRows(t *testing.T) {
	f := factor8051(t)
	rows := SplitRows(f)
	require.Len(t, rows, 1)
	assert.Equal(t, SplitRow{N: "8051", P: "83", Q: "97", Method: "sieve", Rounds: "1", Base: "6 (≤23)", Relations: "7"}, rows[0])
}

func TestTablePrinters(t *testing.T) {
	color.NoColor = true
	f := factor8051(t)

	var buf bytes.Buffer
	FactorTablePrinter(&buf, f)
	out := buf.String()
	assert.Contains(t, out, "method")
	assert.Contains(t, out, "8051")
	assert.Equal(t, 2, strings.Count(out, "\n"))

	buf.Reset()
	RelationTablePrinter(&buf, f)
	out = buf.String()
	assert.Contains(t, out, "relations for 8051 over {-1, 2, 5, 7, 13, 23}")
	assert.Contains(t, out, "-1 · 2 · 5 · 13")
}

func TestEventDetail(t *testing.T) {
	ev := qs.Event{Kind: qs.EventSplit, N: "8051", Factor: "83", Cofactor: "97", Method: "sieve"}
	assert.Equal(t, "8051 = 83 × 97 (sieve)", EventDetail(ev))

	ev = qs.Event{Kind: qs.EventRelations, N: strings.Repeat("9", 30), Relations: 3, Wanted: 7, Scanned: 40}
	assert.Equal(t, "n=9999999999…9999999999 (30 digits) relations=3/7 scanned=40", EventDetail(ev))
}
