package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nxtrace/qsieve/qs"
)

func TestTuningFlagsApply(t *testing.T) {
	base := qs.Config{Mode: qs.ModeSieve, BaseSize: 40, Workers: 2}

	cfg, err := tuningFlags{}.apply(base)
	require.NoError(t, err)
	assert.Equal(t, base, cfg)

	cfg, err = tuningFlags{mode: "trial", bound: 300, searchLimit: 900, timeoutMs: 1500}.apply(base)
	require.NoError(t, err)
	assert.Equal(t, qs.ModeTrial, cfg.Mode)
	assert.Equal(t, int64(300), cfg.Bound)
	assert.Zero(t, cfg.BaseSize)
	assert.Equal(t, 900, cfg.SearchLimit)
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout)
	assert.Equal(t, 2, cfg.Workers)

	cfg, err = tuningFlags{bound: 300, baseSize: 25, workers: 8}.apply(base)
	require.NoError(t, err)
	assert.Zero(t, cfg.Bound)
	assert.Equal(t, 25, cfg.BaseSize)
	assert.Equal(t, 8, cfg.Workers)
}

func TestTuningFlagsApply_Rejects(t *testing.T) {
	_, err := tuningFlags{mode: "ecm"}.apply(qs.Config{})
	assert.Error(t, err)

	_, err = tuningFlags{interval: -1}.apply(qs.Config{})
	assert.ErrorContains(t, err, "--interval")
}

func TestFanOut(t *testing.T) {
	assert.Nil(t, fanOut(nil, nil))

	var a, b []qs.EventKind
	obs := fanOut(func(ev qs.Event) { a = append(a, ev.Kind) }, nil, func(ev qs.Event) { b = append(b, ev.Kind) })
	require.NotNil(t, obs)
	obs(qs.Event{Kind: qs.EventFactorBase})
	obs(qs.Event{Kind: qs.EventSplit})
	assert.Equal(t, []qs.EventKind{qs.EventFactorBase, qs.EventSplit}, a)
	assert.Equal(t, a, b)
}

func TestRunExitCodes(t *testing.T) {
	assert.Zero(t, run([]string{"qsieve", "-j", "-q", "8051"}))
	assert.Equal(t, 2, run([]string{"qsieve", "-j", "-q", "80x1"}))
}

func TestRunFailureKeepsLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "qs.log")
	code := run([]string{"qsieve", "-j", "-m", "trial", "--limit", "1", "--max-rounds", "1", "--log", logPath, "999985999949"})
	assert.Equal(t, 1, code)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "failed")
}
