package printer

import (
	"fmt"
	"math/big"
	"time"

	"github.com/fatih/color"

	"github.com/nxtrace/qsieve/qs"
)

// FactorPrinter prints the final factorization line.
func FactorPrinter(f *qs.Factorization, elapsed time.Duration) {
	fmt.Fprintf(color.Output, "%s = %s  %s\n",
		color.New(color.FgHiWhite, color.Bold).Sprintf("%s", f.N),
		color.New(color.FgHiGreen, color.Bold).Sprintf("%s", f.String()),
		color.New(color.FgHiBlack).Sprintf("(%d splits, %s)", len(f.Splits), elapsed.Round(time.Microsecond)),
	)
}

// BaselinePrinter compares the sieve result against Pollard rho.
func BaselinePrinter(f *qs.Factorization, rho []*big.Int, elapsed time.Duration) {
	agree := len(rho) == len(f.Factors)
	for i := 0; agree && i < len(rho); i++ {
		agree = rho[i].Cmp(f.Factors[i]) == 0
	}
	verdict := color.New(color.FgHiGreen, color.Bold).Sprint("agrees")
	if !agree {
		verdict = color.New(color.FgHiRed, color.Bold).Sprint("DISAGREES")
	}
	fmt.Fprintf(color.Output, "pollard rho %s %s\n",
		verdict,
		color.New(color.FgHiBlack).Sprintf("(%s)", elapsed.Round(time.Microsecond)),
	)
}
