package draftkings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somup27/mlbPropModel/evaluate"
)

type fakeGetter struct {
	bodies map[string][]byte
	calls  []string
}

func (f *fakeGetter) Get(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	b, ok := f.bodies[url]
	if !ok {
		return nil, errors.New("503 Service Unavailable")
	}
	return b, nil
}

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return b
}

const base = "http://dk.test"

func TestFetchPitchers(t *testing.T) {
	g := &fakeGetter{bodies: map[string][]byte{
		base + "/categories/1031/subcategories/15221": fixture(t, "strikeouts.json"),
		base + "/categories/1031/subcategories/9886":  []byte(`{"selections":[{"label":"Over","points":4.5,"participants":[{"name":"JP Sears"}],"displayOdds":{"american":"-110"}}]}`),
	}}

	lines, err := NewClient(g, base, nil).Fetch(context.Background(), Pitchers)
	require.NoError(t, err)
	assert.Len(t, g.calls, 4)

	assert.Equal(t, map[string]string{
		"JP Sears":       "HOU",
		"Framber Valdez": "ATH",
		"MacKenzie Gore": "AZ",
	}, lines.Opponents)

	require.Len(t, lines.Selections, 4)
	assert.Equal(t, Selection{Player: "Framber Valdez", Category: evaluate.Strikeouts, Label: "Over", Points: 5.5, Odds: "−125"}, lines.Selections[0])
	assert.Equal(t, evaluate.HitsAllowed, lines.Selections[3].Category)
	assert.Equal(t, Pitchers, lines.Board)
}

func TestFetchFailsWithoutPrimaryMarket(t *testing.T) {
	g := &fakeGetter{bodies: map[string][]byte{}}
	_, err := NewClient(g, base, nil).Fetch(context.Background(), Pitchers)
	assert.Error(t, err)
	assert.Len(t, g.calls, 1)
}

func TestFetchBatters(t *testing.T) {
	g := &fakeGetter{bodies: map[string][]byte{
		base + "/categories/743/subcategories/6607": fixture(t, "total_bases.json"),
	}}

	lines, err := NewClient(g, base, nil).Fetch(context.Background(), Batters)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"BOS": "Gerrit Cole", "NYY": "Brayan Bello"}, lines.OpposingStarters)

	var players []string
	for _, s := range lines.Selections {
		players = append(players, s.Player)
		assert.Equal(t, evaluate.TotalBases, s.Category)
	}
	assert.Equal(t, []string{"Aaron Judge", "Jarren Duran"}, players)
}

func TestNormalizeTeam(t *testing.T) {
	assert.Equal(t, "ATH", NormalizeTeam("A's"))
	assert.Equal(t, "AZ", NormalizeTeam("ARI"))
	assert.Equal(t, "WSH", NormalizeTeam("WAS"))
	assert.Equal(t, "NYY", NormalizeTeam("NYY"))
}

func TestParseBoard(t *testing.T) {
	b, err := ParseBoard("batters")
	require.NoError(t, err)
	assert.Equal(t, Batters, b)
	_, err = ParseBoard("relievers")
	assert.Error(t, err)
}
