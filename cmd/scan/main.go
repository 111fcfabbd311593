// cmd/scan/main.go
// Evaluates today's sportsbook board from the command line and prints the
// recommended lines.
//
// Usage:
//
//	go run ./cmd/scan -board pitchers
//	go run ./cmd/scan -board batters -events savant -all
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/somup27/mlbPropModel/board"
	"github.com/somup27/mlbPropModel/config"
	bundb "github.com/somup27/mlbPropModel/db"
	"github.com/somup27/mlbPropModel/draftkings"
	"github.com/somup27/mlbPropModel/evaluate"
	"github.com/somup27/mlbPropModel/httpx"
	applog "github.com/somup27/mlbPropModel/logger"
	"github.com/somup27/mlbPropModel/mlbstats"
	"github.com/somup27/mlbPropModel/savant"
	"github.com/somup27/mlbPropModel/statcast"
)

func main() {
	cfg := config.LoadCLI()

	boardFlag := flag.String("board", "pitchers", "pitchers or batters")
	profileFlag := flag.String("profile", cfg.ThresholdProfile, "threshold profile: "+strings.Join(evaluate.ProfileNames(), ", "))
	events := flag.String("events", "db", "event source: db or savant")
	minRules := flag.Int("min-rules", 0, "only print rows passing at least this many rules")
	all := flag.Bool("all", false, "print Pass rows as well as Target rows")
	asJSON := flag.Bool("json", false, "print the full report as JSON")
	timeout := flag.Duration("timeout", 30*time.Minute, "give up after this long")
	flag.Parse()

	b, err := draftkings.ParseBoard(*boardFlag)
	if err != nil {
		log.Fatal(err)
	}
	profile, err := evaluate.ProfileByName(*profileFlag)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := applog.NewCLI(cfg.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	dk := draftkings.NewClient(httpx.New(httpx.Options{
		Name:              "draftkings",
		Timeout:           cfg.HTTPTimeout,
		RequestsPerSecond: cfg.DKRequestsPerSecond,
		Header:            draftkings.BrowserHeaders(),
		Logger:            logger,
	}), "", logger)
	lines := draftkings.NewCache(dk, nil, cfg.LinesCacheTTL, logger)

	directory := mlbstats.NewClient(httpx.New(httpx.Options{
		Name:    "mlbstats",
		Timeout: cfg.HTTPTimeout,
		Logger:  logger,
	}), "")

	var (
		source board.EventSource
		cache  mlbstats.PlayerCache
	)
	switch *events {
	case "db":
		pgDB := bundb.Setup(cfg)
		defer pgDB.Close()
		source = statcast.NewStore(pgDB)
		cache = mlbstats.NewDBCache(pgDB)
	case "savant":
		source = savant.NewClient(httpx.New(httpx.Options{
			Name:              "savant",
			Timeout:           5 * time.Minute,
			RequestsPerSecond: 0.2,
			MaxElapsed:        10 * time.Minute,
			Logger:            logger,
		}), "", logger)
	default:
		log.Fatalf("unknown -events %q", *events)
	}

	svc := board.New(lines, mlbstats.NewResolver(directory, cache, logger), source,
		evaluate.NewEngine(profile), board.Window{From: cfg.SeasonStart, To: cfg.SeasonEnd}, logger)

	report, err := svc.Run(ctx, b)
	if err != nil {
		logger.Fatal("scan failed", zap.Error(err))
	}

	rec := evaluate.Target
	if *all {
		rec = ""
	}
	rows := report.Filter(*minRules, rec)

	if *asJSON {
		out := *report
		out.Rows = rows
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := printRows(os.Stdout, rows); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\n%d of %d lines shown, %d skipped (%s profile, events %s..%s)\n",
		len(rows), len(report.Rows), report.Skipped, report.Profile, report.From, report.To)
}

func printRows(w io.Writer, rows []board.Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tTEAM\tOPP\tPROP\tLINE\tODDS\tRULES\tREC\tSTATS")
	for _, r := range rows {
		st := make([]string, len(r.Stats))
		for i, s := range r.Stats {
			st[i] = s.Name + "=" + strconv.FormatFloat(s.Value, 'f', 2, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s %s\t%.1f\t%s\t%d/5\t%s\t%s\n",
			r.Player, r.Team, r.Opponent, r.Prop, r.Direction, r.Line, r.Odds,
			r.RulePassCount, r.Recommendation, strings.Join(st, " "))
	}
	return tw.Flush()
}
