// cmd/import/main.go
// Loads Statcast pitches for a date range into the local PostgreSQL database,
// either from the Baseball Savant export or from a MySQL Statcast mirror.
//
// Usage:
//
//	go run ./cmd/import -from 2025-03-27 -to 2025-06-30
//	MYSQL_DSN="user:pass@tcp(host:3306)/statcast?parseTime=true" \
//	go run ./cmd/import -source mysql -from 2025-03-27
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/somup27/mlbPropModel/config"
	bundb "github.com/somup27/mlbPropModel/db"
	"github.com/somup27/mlbPropModel/httpx"
	applog "github.com/somup27/mlbPropModel/logger"
	"github.com/somup27/mlbPropModel/savant"
	"github.com/somup27/mlbPropModel/statcast"
)

const batchSize = 500

func main() {
	cfg := config.LoadCLI()

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(config.DateLayout)
	source := flag.String("source", "savant", "savant or mysql")
	fromFlag := flag.String("from", cfg.SeasonStart.Format(config.DateLayout), "first game date (YYYY-MM-DD)")
	toFlag := flag.String("to", yesterday, "last game date (YYYY-MM-DD)")
	flag.Parse()

	from, err := time.Parse(config.DateLayout, *fromFlag)
	if err != nil {
		log.Fatalf("-from: %v", err)
	}
	to, err := time.Parse(config.DateLayout, *toFlag)
	if err != nil {
		log.Fatalf("-to: %v", err)
	}
	if to.Before(from) {
		log.Fatalf("-to %s is before -from %s", *toFlag, *fromFlag)
	}

	logger, err := applog.NewCLI(cfg.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// --- PostgreSQL ---
	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	logger.Info("connected to PostgreSQL")

	// Create tables (idempotent)
	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		logger.Fatal("create tables", zap.Error(err))
	}
	store := statcast.NewStore(pgDB)

	var n int
	switch *source {
	case "savant":
		n, err = fromSavant(ctx, logger, store, from, to)
	case "mysql":
		n, err = fromMySQL(ctx, cfg, logger, store, from, to)
	default:
		err = fmt.Errorf("unknown -source %q", *source)
	}
	if err != nil {
		logger.Fatal("import failed", zap.Int("inserted", n), zap.Error(err))
	}
	logger.Info("import complete", zap.String("source", *source), zap.Int("inserted", n))
}

// saveBatches inserts events batchSize rows at a time and returns the number
// of new rows.
func saveBatches(ctx context.Context, store *statcast.Store, events []statcast.Event) (int, error) {
	total := 0
	for start := 0; start < len(events); start += batchSize {
		end := min(start+batchSize, len(events))
		n, err := store.Save(ctx, events[start:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// fromSavant downloads one export chunk at a time so an interrupted run keeps
// what it already stored.
func fromSavant(ctx context.Context, logger *zap.Logger, store *statcast.Store, from, to time.Time) (int, error) {
	client := savant.NewClient(httpx.New(httpx.Options{
		Name:              "savant",
		Timeout:           5 * time.Minute,
		RequestsPerSecond: 0.2,
		MaxElapsed:        10 * time.Minute,
		Logger:            logger,
	}), "", logger)

	total := 0
	for _, ch := range savant.Chunks(from, to, savant.ChunkDays) {
		events, err := client.Range(ctx, ch.From, ch.To)
		if err != nil {
			return total, err
		}
		n, err := saveBatches(ctx, store, events)
		total += n
		if err != nil {
			return total, err
		}
		logger.Info("chunk stored",
			zap.String("from", statcast.DateKey(ch.From)),
			zap.String("to", statcast.DateKey(ch.To)),
			zap.Int("inserted", n),
		)
	}
	return total, nil
}

const mysqlQuery = `SELECT game_pk, at_bat_number, pitch_number, game_date, pitcher, batter,
        events, p_throws, stand, home_team, away_team, inning_topbot,
        bb_type, estimated_slg_using_speedangle, estimated_ba_using_speedangle
 FROM statcast
 WHERE game_date BETWEEN ? AND ? AND game_type = 'R'
 ORDER BY game_date, game_pk, at_bat_number, pitch_number`

func nullStr(n sql.NullString) *string {
	if !n.Valid || n.String == "" {
		return nil
	}
	return &n.String
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return &n.Float64
}

func fromMySQL(ctx context.Context, cfg *config.Config, logger *zap.Logger, store *statcast.Store, from, to time.Time) (int, error) {
	if cfg.MySQLDSN == "" {
		return 0, fmt.Errorf("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/statcast?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		return 0, fmt.Errorf("open mysql: %w", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		return 0, fmt.Errorf("ping mysql: %w", err)
	}
	logger.Info("connected to MySQL")

	rows, err := myDB.QueryContext(ctx, mysqlQuery, statcast.DateKey(from), statcast.DateKey(to))
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	batch := make([]statcast.Event, 0, batchSize)
	total := 0
	flush := func() error {
		n, err := store.Save(ctx, batch)
		total += n
		batch = batch[:0]
		return err
	}
	for rows.Next() {
		var (
			e       statcast.Event
			code    sql.NullString
			pThrows string
			stand   string
			half    string
			bbType  sql.NullString
			xSLG    sql.NullFloat64
			xBA     sql.NullFloat64
		)
		if err := rows.Scan(&e.GameID, &e.AtBatNumber, &e.PitchNumber, &e.GameDate, &e.PitcherID, &e.BatterID,
			&code, &pThrows, &stand, &e.HomeTeam, &e.AwayTeam, &half,
			&bbType, &xSLG, &xBA); err != nil {
			return total, err
		}
		y, m, d := e.GameDate.Date()
		e.GameDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		if code.Valid {
			e.Code = statcast.Code(code.String)
		}
		e.PThrows = statcast.Hand(pThrows)
		e.Stand = statcast.Hand(stand)
		e.Half = statcast.ParseHalf(half)
		e.BBType = nullStr(bbType)
		e.EstimatedSLG = nullFloat(xSLG)
		e.EstimatedBA = nullFloat(xBA)

		batch = append(batch, e)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := rows.Err(); err != nil {
		return total, err
	}
	return total, flush()
}
