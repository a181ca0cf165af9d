package reporter

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/nxtrace/qsieve/numtheory"
	"github.com/nxtrace/qsieve/qs"
	"github.com/nxtrace/qsieve/util"
)

type Reporter interface {
	Print()
	Render() string
}

func New(f *qs.Factorization) Reporter {
	return &reporter{result: f, out: os.Stdout}
}

type reporter struct {
	result *qs.Factorization
	out    io.Writer
}

type reportNode struct {
	n *big.Int
	// lead is written before the node, pad before its children
	lead string
	pad  string
}

// splitIndex queues the splits of each composite in processing order. The
// same composite can be split more than once, e.g. both halves of p^2.
func (r *reporter) splitIndex() map[string][]*qs.SplitResult {
	idx := map[string][]*qs.SplitResult{}
	for _, s := range r.result.Splits {
		k := s.N.String()
		idx[k] = append(idx[k], s)
	}
	return idx
}

// Render draws the split tree, one node per line:
//
//	15 = 3 × 5  base-divisor
//	 ├ 3  prime
//	 ╰ 5  prime
func (r *reporter) Render() string {
	var b strings.Builder
	idx := r.splitIndex()
	stack := []reportNode{{n: r.result.N, pad: " "}}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		k := node.n.String()
		queue := idx[k]
		if len(queue) == 0 {
			label := "prime"
			if !numtheory.IsProbablePrime(node.n) {
				label = "unsplit"
			}
			fmt.Fprintf(&b, "%s%s  %s\n", node.lead, util.Abbrev(node.n, 12), label)
			continue
		}
		s := queue[0]
		idx[k] = queue[1:]
		fmt.Fprintf(&b, "%s%s = %s × %s  %s", node.lead, util.Abbrev(s.N, 12), util.Abbrev(s.P, 12), util.Abbrev(s.Q, 12), s.Method)
		if s.Method == qs.MethodSieve {
			fmt.Fprintf(&b, " (%d rounds, base %d, %d relations)", s.Rounds, s.BaseSize, s.RelationCount)
		}
		b.WriteByte('\n')
		// Q is pushed first so P is drawn first
		stack = append(stack,
			reportNode{n: s.Q, lead: node.pad + "╰ ", pad: node.pad + "   "},
			reportNode{n: s.P, lead: node.pad + "├ ", pad: node.pad + "│  "},
		)
	}
	return b.String()
}

func (r *reporter) Print() {
	fmt.Fprint(r.out, r.Render())
}
