package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/big"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/akamensky/argparse"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/nxtrace/qsieve/config"
	"github.com/nxtrace/qsieve/numtheory"
	"github.com/nxtrace/qsieve/printer"
	"github.com/nxtrace/qsieve/qs"
	"github.com/nxtrace/qsieve/reporter"
	"github.com/nxtrace/qsieve/server"
	"github.com/nxtrace/qsieve/sievelog"
	"github.com/nxtrace/qsieve/util"
)

// tuningFlags holds the command line overrides. Zero means "keep the value
// from the config file".
type tuningFlags struct {
	mode        string
	bound       int
	baseSize    int
	growBy      int
	maxBase     int
	searchLimit int
	interval    int
	maxRounds   int
	timeoutMs   int
	workers     int
}

func (f tuningFlags) apply(cfg qs.Config) (qs.Config, error) {
	if f.mode != "" {
		mode, ok := qs.ParseMode(f.mode)
		if !ok {
			return cfg, fmt.Errorf("unsupported mode %q", f.mode)
		}
		cfg.Mode = mode
	}
	for name, v := range map[string]int{
		"bound": f.bound, "base-size": f.baseSize, "grow": f.growBy, "max-base": f.maxBase,
		"limit": f.searchLimit, "interval": f.interval, "max-rounds": f.maxRounds,
		"timeout": f.timeoutMs, "workers": f.workers,
	} {
		if v < 0 {
			return cfg, fmt.Errorf("--%s must not be negative", name)
		}
	}
	// a bound on the command line wins over a base size from the config file
	if f.bound > 0 {
		cfg.Bound = int64(f.bound)
		cfg.BaseSize = 0
	}
	if f.baseSize > 0 {
		cfg.BaseSize = f.baseSize
		cfg.Bound = 0
	}
	if f.growBy > 0 {
		cfg.GrowBy = f.growBy
	}
	if f.maxBase > 0 {
		cfg.MaxBaseSize = f.maxBase
	}
	if f.searchLimit > 0 {
		cfg.SearchLimit = f.searchLimit
	}
	if f.interval > 0 {
		cfg.Interval = f.interval
	}
	if f.maxRounds > 0 {
		cfg.MaxRounds = f.maxRounds
	}
	if f.timeoutMs > 0 {
		cfg.Timeout = time.Duration(f.timeoutMs) * time.Millisecond
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
	return cfg, nil
}

// fanOut merges observers into one. Splits run concurrently, so calls are
// serialised to keep terminal lines whole.
func fanOut(observers ...func(qs.Event)) func(qs.Event) {
	var live []func(qs.Event)
	for _, o := range observers {
		if o != nil {
			live = append(live, o)
		}
	}
	if len(live) == 0 {
		return nil
	}
	var mu sync.Mutex
	return func(ev qs.Event) {
		mu.Lock()
		defer mu.Unlock()
		for _, o := range live {
			o(ev)
		}
	}
}

func Excute() {
	if code := run(os.Args); code != 0 {
		os.Exit(code)
	}
}

// run is the whole CLI. It returns the process exit code instead of exiting
// so deferred cleanup always runs.
func run(args []string) int {
	parser := argparse.NewParser("qsieve", "Factor integers with the quadratic sieve")
	mode := parser.Selector("m", "mode", []string{"sieve", "trial"}, &argparse.Options{Help: "Relation search: interval sieve or trial division [sieve, trial]"})
	bound := parser.Int("b", "bound", &argparse.Options{Help: "Build the factor base from every admissible prime up to this bound"})
	baseSize := parser.Int("l", "base-size", &argparse.Options{Help: "Build the factor base from this many primes (overrides --bound)"})
	growBy := parser.Int("g", "grow", &argparse.Options{Help: "Primes to add each time the factor base is grown"})
	maxBase := parser.Int("", "max-base", &argparse.Options{Help: "Give up once the factor base reaches this many primes"})
	searchLimit := parser.Int("", "limit", &argparse.Options{Help: "Candidates trial divided per round in trial mode"})
	interval := parser.Int("i", "interval", &argparse.Options{Help: "Values of x sieved per round in sieve mode"})
	maxRounds := parser.Int("", "max-rounds", &argparse.Options{Help: "Give up after this many collection rounds per split"})
	timeout := parser.Int("", "timeout", &argparse.Options{Help: "Overall time limit in [milliseconds]"})
	workers := parser.Int("w", "workers", &argparse.Options{Help: "Parallel sieve segments and concurrent splits"})
	tablePrint := parser.Flag("t", "table", &argparse.Options{Help: "Print the splits and relations as tables"})
	treePrint := parser.Flag("r", "report", &argparse.Options{Help: "Print the split tree"})
	jsonPrint := parser.Flag("j", "json", &argparse.Options{Help: "Output the factorization as JSON"})
	verbose := parser.Flag("V", "verbose", &argparse.Options{Help: "Log every progress event to stderr"})
	quiet := parser.Flag("q", "quiet", &argparse.Options{Help: "Do not print the coloured progress lines"})
	logFile := parser.String("", "log", &argparse.Options{Help: "Append progress events to this file (implies --verbose)"})
	baseline := parser.Flag("", "baseline", &argparse.Options{Help: "Cross check the result with Pollard rho"})
	noColor := parser.Flag("", "no-color", &argparse.Options{Help: "Disable colored output"})
	deploy := parser.Flag("", "deploy", &argparse.Options{Help: "Start the HTTP/WebSocket factoring API"})
	listen := parser.String("", "listen", &argparse.Options{Help: "Listen address for --deploy, a bare port binds all interfaces"})
	ver := parser.Flag("v", "version", &argparse.Options{Help: "Print version info and exit"})
	str := parser.StringPositional(&argparse.Options{Help: "Integer to factor (decimal, or 0x/0o/0b prefixed)"})

	err := parser.Parse(args)
	if err != nil {
		// In case of error print error and print usage
		// This can also be done by passing -h or --help flags
		fmt.Print(parser.Usage(err))
		return 0
	}

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if *noColor || !isTTY {
		color.NoColor = true
	}
	if !*jsonPrint {
		printer.Version()
	}
	if *ver {
		return 0
	}

	config.InitConfig()
	conf := config.Tunables()
	if util.EnvWorkers > 0 {
		conf.Workers = util.EnvWorkers
	}
	conf, err = tuningFlags{
		mode: *mode, bound: *bound, baseSize: *baseSize, growBy: *growBy, maxBase: *maxBase,
		searchLimit: *searchLimit, interval: *interval, maxRounds: *maxRounds,
		timeoutMs: *timeout, workers: *workers,
	}.apply(conf)
	if err != nil {
		fmt.Print(parser.Usage(err))
		return 2
	}

	if *deploy {
		return runDeploy(*listen, conf)
	}

	if *str == "" {
		fmt.Print(parser.Usage(err))
		return 0
	}
	n, err := util.ParseBigInt(*str)
	if err != nil {
		fmt.Print(parser.Usage(err))
		return 2
	}

	var progress, fileLog func(qs.Event)
	if !*jsonPrint && !*quiet && isTTY {
		progress = printer.RealtimePrinter
	}
	if *logFile != "" {
		lg, closer, err := sievelog.Open(*logFile)
		if err != nil {
			log.Println(err)
			return 1
		}
		defer closer.Close()
		fileLog = lg.Observe
	} else if *verbose || util.EnvDebug {
		fileLog = sievelog.New(os.Stderr).Observe
	}
	conf.Observer = fanOut(progress, fileLog)

	if !*jsonPrint {
		printer.PrintFactorNav(n, conf)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	res, err := qs.Factor(ctx, n, conf)
	elapsed := time.Since(start)
	if err != nil {
		if *jsonPrint {
			out, _ := json.Marshal(map[string]string{"n": n.String(), "error": err.Error()})
			fmt.Println(string(out))
		} else {
			log.Println(err)
		}
		return 1
	}

	if *jsonPrint {
		r, err := json.Marshal(res)
		if err != nil {
			fmt.Println(err)
			return 1
		}
		fmt.Println(string(r))
		return 0
	}

	printer.FactorPrinter(res, elapsed)
	if *tablePrint {
		printer.FactorTablePrinter(os.Stdout, res)
		printer.RelationTablePrinter(os.Stdout, res)
	}
	if *treePrint {
		reporter.New(res).Print()
	}
	if *baseline {
		printBaseline(n, res)
	}
	return 0
}

func printBaseline(n *big.Int, res *qs.Factorization) {
	start := time.Now()
	rho := numtheory.FactorRho(n)
	printer.BaselinePrinter(res, rho, time.Since(start))
}

func runDeploy(listen string, conf qs.Config) int {
	addr := listen
	if addr == "" {
		addr = util.EnvDeployAddr
	}
	if addr == "" {
		addr = config.ListenAddr()
	}
	addr = normalizeListenAddr(addr)

	info := buildListenInfo(addr)
	fmt.Fprintf(color.Output, "%s %s\n", color.New(color.FgHiGreen, color.Bold).Sprint("Listening on"), info.Binding)
	if info.Access != "" && info.Access != info.Binding {
		fmt.Fprintf(color.Output, "%s %s\n", color.New(color.FgHiBlack).Sprint("Reachable at"), info.Access)
	}
	if err := server.Run(addr, conf, util.EnvMaxJobs); err != nil {
		log.Println(err)
		return 1
	}
	return 0
}
