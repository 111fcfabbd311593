package savant

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/somup27/mlbPropModel/statcast"
)

// ErrNotCSV means the export answered with something other than a Statcast table.
var ErrNotCSV = errors.New("response is not a statcast csv export")

var required = []string{
	"game_pk", "game_date", "pitcher", "batter", "at_bat_number", "pitch_number",
	"events", "p_throws", "stand", "home_team", "away_team", "inning_topbot",
}

// Parse reads a Savant export. Rows that cannot be read are an error; empty
// optional columns become nil.
func Parse(body []byte) (statcast.Log, error) {
	body = bytes.TrimPrefix(body, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	r := csv.NewReader(bytes.NewReader(body))
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotCSV, err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.Trim(strings.TrimSpace(h), `"`)] = i
	}
	for _, name := range required {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrNotCSV, name)
		}
	}

	var out statcast.Log
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		ev, err := parseRow(rec, col)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, ev)
	}
	return out, nil
}

func parseRow(rec []string, col map[string]int) (statcast.Event, error) {
	get := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var ev statcast.Event
	var err error
	if ev.GameID, err = strconv.ParseInt(get("game_pk"), 10, 64); err != nil {
		return ev, fmt.Errorf("game_pk: %w", err)
	}
	if ev.PitcherID, err = strconv.ParseInt(get("pitcher"), 10, 64); err != nil {
		return ev, fmt.Errorf("pitcher: %w", err)
	}
	if ev.BatterID, err = strconv.ParseInt(get("batter"), 10, 64); err != nil {
		return ev, fmt.Errorf("batter: %w", err)
	}
	if ev.AtBatNumber, err = strconv.Atoi(get("at_bat_number")); err != nil {
		return ev, fmt.Errorf("at_bat_number: %w", err)
	}
	if ev.PitchNumber, err = strconv.Atoi(get("pitch_number")); err != nil {
		return ev, fmt.Errorf("pitch_number: %w", err)
	}
	if ev.GameDate, err = time.Parse("2006-01-02", get("game_date")); err != nil {
		return ev, fmt.Errorf("game_date: %w", err)
	}

	ev.Code = statcast.Code(get("events"))
	ev.PThrows = statcast.Hand(get("p_throws"))
	ev.Stand = statcast.Hand(get("stand"))
	ev.HomeTeam = get("home_team")
	ev.AwayTeam = get("away_team")
	ev.Half = statcast.ParseHalf(get("inning_topbot"))

	if s := get("bb_type"); s != "" {
		ev.BBType = &s
	}
	if ev.EstimatedSLG, err = optionalFloat(get("estimated_slg_using_speedangle")); err != nil {
		return ev, fmt.Errorf("estimated_slg_using_speedangle: %w", err)
	}
	if ev.EstimatedBA, err = optionalFloat(get("estimated_ba_using_speedangle")); err != nil {
		return ev, fmt.Errorf("estimated_ba_using_speedangle: %w", err)
	}
	return ev, nil
}

func optionalFloat(s string) (*float64, error) {
	if s == "" || s == "null" || s == "NA" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
