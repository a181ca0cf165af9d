package reporter

import (
	"bytes"
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxtrace/qsieve/qs"
)

func TestRender(t *testing.T) {
	f, err := qs.Factor(context.Background(), big.NewInt(90), qs.Config{})
	require.NoError(t, err)

	want := "" +
		"90 = 2 × 45  even\n" +
		" ├ 2  prime\n" +
		" ╰ 45 = 3 × 15  base-divisor\n" +
		"    ├ 3  prime\n" +
		"    ╰ 15 = 3 × 5  base-divisor\n" +
		"       ├ 3  prime\n" +
		"       ╰ 5  prime\n"
	assert.Equal(t, want, New(f).Render())
}

func TestRenderSieveAndRepeatedComposite(t *testing.T) {
	f, err := qs.Factor(context.Background(), big.NewInt(8051*8051), qs.Config{Mode: qs.ModeTrial, Bound: 30, SearchLimit: 50})
	require.NoError(t, err)

	want := "" +
		"64818601 = 8051 × 8051  perfect-power\n" +
		" ├ 8051 = 83 × 97  sieve (1 rounds, base 6, 7 relations)\n" +
		" │  ├ 83  prime\n" +
		" │  ╰ 97  prime\n" +
		" ╰ 8051 = 83 × 97  sieve (1 rounds, base 6, 7 relations)\n" +
		"    ├ 83  prime\n" +
		"    ╰ 97  prime\n"
	assert.Equal(t, want, New(f).Render())
}

func TestPrint(t *testing.T) {
	f, err := qs.Factor(context.Background(), big.NewInt(15), qs.Config{})
	require.NoError(t, err)
	var buf bytes.Buffer
	r := &reporter{result: f, out: &buf}
	r.Print()
	assert.Equal(t, "15 = 3 × 5  base-divisor\n ├ 3  prime\n ╰ 5  prime\n", buf.String())
}
