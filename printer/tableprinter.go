package printer

import (
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/rodaine/table"

	"github.com/nxtrace/qsieve/numtheory"
	"github.com/nxtrace/qsieve/qs"
	"github.com/nxtrace/qsieve/util"
)

// RelationRow is one line of the relation table.
type RelationRow struct {
	Index   string
	X       string
	Y       string
	Factors string
	Parity  string
}

// SplitRow is one line of the split table.
type SplitRow struct {
	N         string
	P         string
	Q         string
	Method    string
	Rounds    string
	Base      string
	Relations string
}

// New returns a table with the house header style. Widths are measured with
// runewidth so the · and … in cells do not skew the columns.
func New(w io.Writer, headers ...any) table.Table {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New(headers...)
	tbl.WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)
	tbl.WithWidthFunc(runewidth.StringWidth)
	if w != nil {
		tbl.WithWriter(w)
	}
	return tbl
}

// RelationFactors writes y = x^2 - n as a product of primes. y is factored
// afresh by trial division up to the largest base prime, so the column shows
// what y really is even if the exponent vector disagrees; a part left over
// is printed as a last factor.
func RelationFactors(base []int64, rel qs.Relation) string {
	f, rest := numtheory.NaiveFactor(rel.Y, base[len(base)-1])
	var parts []string
	for _, p := range f.Primes() {
		s := strconv.FormatInt(p, 10)
		if e := f[p]; e > 1 && p != numtheory.SignKey {
			s += "^" + strconv.Itoa(e)
		}
		parts = append(parts, s)
	}
	if rest.Cmp(big.NewInt(1)) != 0 {
		parts = append(parts, rest.String())
	}
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, " · ")
}

// ParityString renders the exponent vector mod 2, one digit per base column.
func ParityString(base []int64, rel qs.Relation) string {
	var b strings.Builder
	for j := range base {
		b.WriteByte('0' + byte(rel.Exponent(j)%2))
	}
	return b.String()
}

// RelationRows lays out the relations held by a sieve split. Rows in the
// winning dependency are marked with *.
func RelationRows(res *qs.SplitResult) []RelationRow {
	inDep := make(map[int]bool, len(res.Dependency))
	for _, i := range res.Dependency {
		inDep[i] = true
	}
	rows := make([]RelationRow, 0, len(res.Relations))
	for i, rel := range res.Relations {
		idx := strconv.Itoa(i)
		if inDep[i] {
			idx += "*"
		}
		rows = append(rows, RelationRow{
			Index:   idx,
			X:       util.Abbrev(rel.X, 12),
			Y:       util.Abbrev(rel.Y, 12),
			Factors: RelationFactors(res.Base, rel),
			Parity:  ParityString(res.Base, rel),
		})
	}
	return rows
}

// SplitRows lays out every split of a factorization in processing order.
func SplitRows(f *qs.Factorization) []SplitRow {
	rows := make([]SplitRow, 0, len(f.Splits))
	for _, s := range f.Splits {
		rows = append(rows, SplitRow{
			N:         util.Abbrev(s.N, 12),
			P:         util.Abbrev(s.P, 12),
			Q:         util.Abbrev(s.Q, 12),
			Method:    s.Method,
			Rounds:    strconv.Itoa(s.Rounds),
			Base:      fmt.Sprintf("%d (≤%d)", s.BaseSize, s.MaxPrime),
			Relations: strconv.Itoa(s.RelationCount),
		})
	}
	return rows
}

// RelationTablePrinter prints the relations behind every sieve split of f.
func RelationTablePrinter(w io.Writer, f *qs.Factorization) {
	for _, s := range f.Splits {
		if s.Method != qs.MethodSieve {
			continue
		}
		fmt.Fprintf(w, "\nrelations for %s over {%s}\n", util.Abbrev(s.N, 12), joinInts(s.Base))
		tbl := New(w, "#", "x", "x²-n", "factors", "parity")
		for _, r := range RelationRows(s) {
			tbl.AddRow(r.Index, r.X, r.Y, r.Factors, r.Parity)
		}
		tbl.Print()
	}
}

// FactorTablePrinter prints one row per split of f.
func FactorTablePrinter(w io.Writer, f *qs.Factorization) {
	tbl := New(w, "n", "p", "q", "method", "rounds", "base", "relations")
	for _, r := range SplitRows(f) {
		tbl.AddRow(r.N, r.P, r.Q, r.Method, r.Rounds, r.Base, r.Relations)
	}
	tbl.Print()
}

func joinInts(xs []int64) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.FormatInt(x, 10)
	}
	return strings.Join(parts, ", ")
}
