package mlbstats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somup27/mlbPropModel/models"
)

type fakeDirectory struct {
	people  map[string]Person
	info    map[int64]Person
	lookups int
}

func (d *fakeDirectory) LookupPlayer(_ context.Context, name string) (Person, error) {
	d.lookups++
	p, ok := d.people[name]
	if !ok {
		return Person{}, ErrPlayerNotFound
	}
	return p, nil
}

func (d *fakeDirectory) PlayerInfo(_ context.Context, id int64) (Person, error) {
	p, ok := d.info[id]
	if !ok {
		return Person{}, ErrPlayerNotFound
	}
	return p, nil
}

type mapCache map[string]models.Player

func (m mapCache) Lookup(_ context.Context, name string) (*models.Player, error) {
	p, ok := m[name]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m mapCache) Store(_ context.Context, p *models.Player) error {
	m[p.Name] = *p
	return nil
}

func judge() Person {
	var p Person
	p.ID = 592450
	p.FullName = "Aaron Judge"
	p.CurrentTeam.Name = "New York Yankees"
	return p
}

func TestResolverCachesLookups(t *testing.T) {
	dir := &fakeDirectory{people: map[string]Person{"Aaron Judge": judge()}}
	cache := mapCache{}
	r := NewResolver(dir, cache, nil)

	p, err := r.Resolve(context.Background(), "Aaron Judge")
	require.NoError(t, err)
	assert.Equal(t, int64(592450), p.MLBAMID)
	assert.Equal(t, "NYY", p.Team)

	id, err := r.ResolveID(context.Background(), " Aaron Judge ")
	require.NoError(t, err)
	assert.Equal(t, int64(592450), id)
	assert.Equal(t, 1, dir.lookups)
	assert.Contains(t, cache, "Aaron Judge")

	// A second process starts with an empty memory but a warm table.
	r2 := NewResolver(dir, cache, nil)
	_, err = r2.Resolve(context.Background(), "Aaron Judge")
	require.NoError(t, err)
	assert.Equal(t, 1, dir.lookups)
}

func TestResolverRefreshesStaleEntries(t *testing.T) {
	dir := &fakeDirectory{people: map[string]Person{"Aaron Judge": judge()}}
	cache := mapCache{"Aaron Judge": {Name: "Aaron Judge", MLBAMID: 592450, Team: "SD", ResolvedAt: time.Now().Add(-30 * 24 * time.Hour)}}

	p, err := NewResolver(dir, cache, nil).Resolve(context.Background(), "Aaron Judge")
	require.NoError(t, err)
	assert.Equal(t, "NYY", p.Team)
	assert.Equal(t, 1, dir.lookups)
}

func TestResolverFillsTeamFromPlayerInfo(t *testing.T) {
	bare := judge()
	bare.CurrentTeam.Name = ""
	dir := &fakeDirectory{
		people: map[string]Person{"Aaron Judge": bare},
		info:   map[int64]Person{592450: judge()},
	}
	p, err := NewResolver(dir, nil, nil).Resolve(context.Background(), "Aaron Judge")
	require.NoError(t, err)
	assert.Equal(t, "NYY", p.Team)
}

func TestResolverNotFound(t *testing.T) {
	_, err := NewResolver(&fakeDirectory{}, nil, nil).ResolveID(context.Background(), "Nobody")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}
