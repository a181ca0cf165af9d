package sievelog

import (
	"bytes"
	"context"
	"math/big"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxtrace/qsieve/qs"
)

func TestLine(t *testing.T) {
	ev := qs.Event{Kind: qs.EventRelations, N: "8051", Round: 2, BaseSize: 6, MaxPrime: 23, Relations: 4, Wanted: 7, Scanned: 60}
	assert.Equal(t, "relations        n=8051 round=2 base=6 max_prime=23 relations=4 wanted=7 scanned=60", Line(ev))

	ev = qs.Event{Kind: qs.EventFailed, N: "15", Error: "search budget exhausted"}
	assert.Equal(t, `failed           n=15 error="search budget exhausted"`, Line(ev))
}

func TestObserveRun(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf)
	_, err := qs.Factor(context.Background(), big.NewInt(8051), qs.Config{Mode: qs.ModeTrial, Bound: 30, SearchLimit: 50, Observer: lg.Observe})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "[qs] "), l)
	}
	assert.Contains(t, lines[3], "split")
	assert.Contains(t, lines[3], "factor=83 cofactor=97 method=sieve")
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qs.log")
	lg, closer, err := Open(path)
	require.NoError(t, err)
	lg.Observe(qs.Event{Kind: qs.EventSplit, N: "15", Factor: "3", Cofactor: "5", Method: qs.MethodBaseDivisor})
	require.NoError(t, closer.Close())

	_, _, err = Open(filepath.Join(t.TempDir(), "missing", "qs.log"))
	assert.Error(t, err)
}
