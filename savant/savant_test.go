package savant

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somup27/mlbPropModel/httpx"
	"github.com/somup27/mlbPropModel/statcast"
)

const sample = "\xef\xbb\xbf" + `pitch_type,game_date,pitcher,batter,events,stand,p_throws,home_team,away_team,bb_type,inning_topbot,estimated_ba_using_speedangle,estimated_slg_using_speedangle,game_pk,at_bat_number,pitch_number
FF,2025-04-02,543037,592450,strikeout,R,R,NYY,BOS,,Top,,,778123,12,5
SL,2025-04-02,543037,592450,,R,R,NYY,BOS,,Top,,,778123,12,4
FF,2025-04-02,605483,665742,double,L,L,NYY,BOS,line_drive,Bot,.612,1.254,778123,40,2
`

func TestParse(t *testing.T) {
	log, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, log, 3)

	k := log[0]
	assert.Equal(t, int64(778123), k.GameID)
	assert.Equal(t, int64(543037), k.PitcherID)
	assert.Equal(t, statcast.Strikeout, k.Code)
	assert.Equal(t, statcast.Right, k.PThrows)
	assert.Equal(t, statcast.Top, k.Half)
	assert.Equal(t, "BOS", k.BattingTeam())
	assert.Equal(t, time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), k.GameDate)
	assert.Nil(t, k.BBType)
	assert.Nil(t, k.EstimatedSLG)

	assert.Equal(t, statcast.Code(""), log[1].Code)

	d := log[2]
	assert.Equal(t, statcast.Bottom, d.Half)
	assert.Equal(t, "NYY", d.BattingTeam())
	require.NotNil(t, d.EstimatedSLG)
	assert.InDelta(t, 1.254, *d.EstimatedSLG, 1e-9)
	assert.InDelta(t, 0.612, *d.EstimatedBA, 1e-9)
	assert.True(t, d.IsBattedBall())
}

func TestParseRejectsNonCSV(t *testing.T) {
	_, err := Parse([]byte("<html><body>Too many requests</body></html>"))
	assert.ErrorIs(t, err, ErrNotCSV)

	log, err := Parse([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestParseBadRow(t *testing.T) {
	bad := strings.Replace(sample, "778123,12,5", "x,12,5", 1)
	_, err := Parse([]byte(bad))
	assert.ErrorContains(t, err, "game_pk")
}

func TestChunks(t *testing.T) {
	from := time.Date(2025, 3, 27, 0, 0, 0, 0, time.UTC)
	got := Chunks(from, from.AddDate(0, 0, 11), ChunkDays)
	require.Len(t, got, 3)
	assert.Equal(t, from, got[0].From)
	assert.Equal(t, from.AddDate(0, 0, 4), got[0].To)
	assert.Equal(t, from.AddDate(0, 0, 10), got[2].From)
	assert.Equal(t, from.AddDate(0, 0, 11), got[2].To)

	assert.Len(t, Chunks(from, from, ChunkDays), 1)
	assert.Empty(t, Chunks(from, from.AddDate(0, 0, -1), ChunkDays))
}

func TestRangeRequestsEachChunk(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "details", r.URL.Query().Get("type"))
		assert.NotEmpty(t, r.URL.Query().Get("game_date_gt"))
		w.Write([]byte(sample))
	}))
	defer srv.Close()

	hc := httpx.New(httpx.Options{Name: "savant", RequestsPerSecond: 1000})
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	log, err := NewClient(hc, srv.URL, nil).Range(context.Background(), from, from.AddDate(0, 0, 9))
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
	assert.Len(t, log, 6)
}
