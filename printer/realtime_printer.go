package printer

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/nxtrace/qsieve/qs"
	"github.com/nxtrace/qsieve/util"
)

var kindColor = map[qs.EventKind]*color.Color{
	qs.EventFactorBase:   color.New(color.FgHiCyan, color.Bold),
	qs.EventRelations:    color.New(color.FgHiYellow, color.Bold),
	qs.EventGrowBase:     color.New(color.FgHiMagenta, color.Bold),
	qs.EventDependencies: color.New(color.FgHiBlue, color.Bold),
	qs.EventTrivial:      color.New(color.FgHiBlack, color.Bold),
	qs.EventExpand:       color.New(color.FgHiMagenta, color.Bold),
	qs.EventSplit:        color.New(color.FgHiGreen, color.Bold),
	qs.EventFailed:       color.New(color.FgHiRed, color.Bold),
}

// RealtimePrinter prints one line per progress event. It is meant as a
// qs.Config.Observer.
func RealtimePrinter(ev qs.Event) {
	c, ok := kindColor[ev.Kind]
	if !ok {
		c = color.New(color.FgWhite)
	}
	fmt.Fprintf(color.Output, "%s %s  %s\n",
		color.New(color.FgHiBlack).Sprintf("%-4s", roundLabel(ev.Round)),
		c.Sprintf("%-16s", ev.Kind),
		EventDetail(ev),
	)
}

func roundLabel(r int) string {
	if r == 0 {
		return "--"
	}
	return fmt.Sprintf("#%d", r)
}

// EventDetail renders the fields of ev that matter for its kind.
func EventDetail(ev qs.Event) string {
	n := util.AbbrevDigits(ev.N, 10)
	switch ev.Kind {
	case qs.EventFactorBase:
		return fmt.Sprintf("n=%s base=%d max=%d want=%d", n, ev.BaseSize, ev.MaxPrime, ev.Wanted)
	case qs.EventRelations:
		return fmt.Sprintf("n=%s relations=%d/%d scanned=%d", n, ev.Relations, ev.Wanted, ev.Scanned)
	case qs.EventGrowBase:
		return fmt.Sprintf("n=%s base=%d max=%d want=%d", n, ev.BaseSize, ev.MaxPrime, ev.Wanted)
	case qs.EventDependencies:
		return fmt.Sprintf("n=%s dependencies=%d over %d relations", n, ev.Dependencies, ev.Relations)
	case qs.EventTrivial:
		return fmt.Sprintf("n=%s all %d congruences trivial", n, ev.Tried)
	case qs.EventExpand:
		return fmt.Sprintf("n=%s want=%d relations", n, ev.Wanted)
	case qs.EventSplit:
		return fmt.Sprintf("%s = %s × %s (%s)", n, ev.Factor, ev.Cofactor, ev.Method)
	case qs.EventFailed:
		return fmt.Sprintf("n=%s %s", n, ev.Error)
	}
	return "n=" + n
}
