// Command fuzzfind fuzzy-matches a query against the files of a
// directory tree and prints the best-ranked paths with the matched
// characters highlighted.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"go.uber.org/zap"

	"github.com/dshills/fuzzfind/internal/config"
	"github.com/dshills/fuzzfind/internal/fuzzy"
	"github.com/dshills/fuzzfind/internal/scan"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath    string
		limit         int
		workers       int
		caseSensitive bool
		pathMode      bool
		includeDirs   bool
		scanSeconds   float64
		jsonLog       bool
		showVersion   bool
	)

	flag.StringVar(&configPath, "config", "", "path to a fuzzfind.toml config file")
	flag.IntVar(&limit, "limit", 0, "maximum number of results")
	flag.IntVar(&workers, "workers", 0, "parallel matching workers (0 = all CPUs)")
	flag.BoolVar(&caseSensitive, "case-sensitive", false, "match case-sensitively")
	flag.BoolVar(&pathMode, "path-mode", true, "boost matches at path segment starts")
	flag.BoolVar(&includeDirs, "dirs", false, "include directories in the candidate set")
	flag.Float64Var(&scanSeconds, "scan-budget", 0, "directory scan budget in seconds (0 = unlimited)")
	flag.BoolVar(&jsonLog, "json-log", false, "emit JSON logs")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("fuzzfind %s (%s)\n", version, commit)
		return 0
	}

	if flag.NArg() < 1 || flag.NArg() > 2 {
		usage()
		return 2
	}
	query := flag.Arg(0)
	rootDir := "."
	if flag.NArg() == 2 {
		rootDir = flag.Arg(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fuzzfind: %v\n", err)
		return 1
	}

	// Explicit flags override the config file.
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["limit"] {
		cfg.Limit = limit
	}
	if set["workers"] {
		cfg.Workers = workers
	}
	if set["case-sensitive"] {
		cfg.CaseSensitive = caseSensitive
	}
	if set["path-mode"] {
		cfg.PathMode = pathMode
	}
	if set["dirs"] {
		cfg.IncludeDirs = includeDirs
	}
	if set["scan-budget"] {
		cfg.MaxScanSeconds = scanSeconds
	}
	if set["json-log"] {
		cfg.JSONLog = jsonLog
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "fuzzfind: %v\n", err)
		return 1
	}

	logger, err := newLogger(cfg.JSONLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fuzzfind: logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	start := time.Now()
	paths, err := scan.Scan(rootDir, scan.Options{
		IncludeDirs: cfg.IncludeDirs,
		MaxDuration: time.Duration(cfg.MaxScanSeconds * float64(time.Second)),
		Logger:      logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "fuzzfind: %v\n", err)
		return 1
	}
	logger.Debug("scan complete",
		zap.Int("paths", len(paths)),
		zap.Duration("elapsed", time.Since(start)))

	matcher := fuzzy.NewMatcher(fuzzy.Options{
		CaseSensitive: cfg.CaseSensitive,
		PathMode:      cfg.PathMode,
		Workers:       cfg.Workers,
	})
	index := fuzzy.NewIndex(matcher)
	index.Update(paths)

	results := index.Search(query, cfg.Limit)
	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "fuzzfind: no matches")
		return 1
	}

	for _, r := range results {
		fmt.Println(highlightPositions(paths[r.Index], r.Positions))
	}
	return 0
}

// newLogger builds a production JSON logger or a console logger for
// human consumption. Logs go to stderr so stdout stays pipeable.
func newLogger(jsonOut bool) (*zap.Logger, error) {
	if jsonOut {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stderr"}
		return cfg.Build()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// highlightPositions renders a candidate with the matched runes styled.
// Positions are rune indices in ascending order.
func highlightPositions(candidate string, positions []int) string {
	if len(positions) == 0 {
		return candidate
	}

	style := pterm.NewStyle(pterm.FgCyan, pterm.Bold)
	marked := make(map[int]bool, len(positions))
	for _, p := range positions {
		marked[p] = true
	}

	var out string
	for i, r := range []rune(candidate) {
		if marked[i] {
			out += style.Sprint(string(r))
		} else {
			out += string(r)
		}
	}
	return out
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: fuzzfind [flags] <query> [root]

Fuzzy-match <query> against the files under root (default ".") and
print the top matches, best first.

Flags:
`)
	flag.PrintDefaults()
}
