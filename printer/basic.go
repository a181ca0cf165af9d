package printer

import (
	"fmt"
	"math/big"

	"github.com/fatih/color"

	"github.com/nxtrace/qsieve/config"
	"github.com/nxtrace/qsieve/qs"
	"github.com/nxtrace/qsieve/util"
)

var version = config.Version
var buildDate = config.BuildDate
var commitID = config.CommitID

func Version() {
	fmt.Fprintf(color.Output, "%s %s %s %s\n",
		color.New(color.FgWhite, color.Bold).Sprintf("%s", "QSieve"),
		color.New(color.FgHiBlack, color.Bold).Sprintf("%s", version),
		color.New(color.FgHiBlack, color.Bold).Sprintf("%s", buildDate),
		color.New(color.FgHiBlack, color.Bold).Sprintf("%s", commitID),
	)
}

// PrintFactorNav prints the target and the effective tuning before a run.
func PrintFactorNav(n *big.Int, cfg qs.Config) {
	cfg = cfg.WithDefaults(n)
	base := fmt.Sprintf("bound %d", cfg.Bound)
	if cfg.BaseSize > 0 {
		base = fmt.Sprintf("%d primes", cfg.BaseSize)
	}
	search := fmt.Sprintf("%d-wide interval", cfg.Interval)
	if cfg.Mode == qs.ModeTrial {
		search = fmt.Sprintf("%d candidates/round", cfg.SearchLimit)
	}
	fmt.Fprintf(color.Output, "factoring %s (%d bits), %s mode, factor base %s, %s, %d workers\n",
		color.New(color.FgHiWhite, color.Bold).Sprintf("%s", util.Abbrev(n, 12)),
		n.BitLen(), cfg.Mode, base, search, cfg.Workers,
	)
}
