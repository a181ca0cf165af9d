package sievelog

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/nxtrace/qsieve/qs"
)

// Logger writes one plain log line per progress event. Unlike the
// coloured realtime printer its output is meant for files and pipes.
type Logger struct {
	l *log.Logger
}

func New(w io.Writer) *Logger {
	return &Logger{l: log.New(w, "[qs] ", log.LstdFlags|log.Lmicroseconds)}
}

// Open appends to the log file at path and mirrors every line to stderr.
func Open(path string) (*Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return New(io.MultiWriter(os.Stderr, f)), f, nil
}

// Observe is a qs.Config.Observer. log.Logger serialises concurrent writes.
func (lg *Logger) Observe(ev qs.Event) {
	lg.l.Print(Line(ev))
}

// Line renders ev as space separated key=value pairs, zero fields omitted.
func Line(ev qs.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-16s n=%s", ev.Kind, ev.N)
	kv := func(k string, v any, skip bool) {
		if !skip {
			fmt.Fprintf(&b, " %s=%v", k, v)
		}
	}
	kv("round", ev.Round, ev.Round == 0)
	kv("base", ev.BaseSize, ev.BaseSize == 0)
	kv("max_prime", ev.MaxPrime, ev.MaxPrime == 0)
	kv("relations", ev.Relations, ev.Relations == 0)
	kv("wanted", ev.Wanted, ev.Wanted == 0)
	kv("scanned", ev.Scanned, ev.Scanned == 0)
	kv("deps", ev.Dependencies, ev.Dependencies == 0)
	kv("tried", ev.Tried, ev.Tried == 0)
	kv("factor", ev.Factor, ev.Factor == "")
	kv("cofactor", ev.Cofactor, ev.Cofactor == "")
	kv("method", ev.Method, ev.Method == "")
	kv("error", fmt.Sprintf("%q", ev.Error), ev.Error == "")
	return b.String()
}
