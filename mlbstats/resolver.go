package mlbstats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/somup27/mlbPropModel/models"
)

// Directory is the subset of Client the resolver needs.
type Directory interface {
	LookupPlayer(ctx context.Context, name string) (Person, error)
	PlayerInfo(ctx context.Context, id int64) (Person, error)
}

// PlayerCache persists resolved names. Lookup returns nil on a miss.
type PlayerCache interface {
	Lookup(ctx context.Context, name string) (*models.Player, error)
	Store(ctx context.Context, p *models.Player) error
}

// DBCache is the players table.
type DBCache struct {
	db *bun.DB
}

func NewDBCache(db *bun.DB) *DBCache {
	return &DBCache{db: db}
}

func (c *DBCache) Lookup(ctx context.Context, name string) (*models.Player, error) {
	p := new(models.Player)
	err := c.db.NewSelect().Model(p).Where("name = ?", name).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (c *DBCache) Store(ctx context.Context, p *models.Player) error {
	_, err := c.db.NewInsert().Model(p).
		On("CONFLICT (name) DO UPDATE").
		Set("mlbam_id = EXCLUDED.mlbam_id").
		Set("full_name = EXCLUDED.full_name").
		Set("team = EXCLUDED.team").
		Set("position = EXCLUDED.position").
		Set("resolved_at = EXCLUDED.resolved_at").
		Exec(ctx)
	return err
}

// Resolver maps sportsbook names to players, caching in memory and in a
// PlayerCache. Entries older than MaxAge are resolved again so trades show up.
type Resolver struct {
	dir    Directory
	cache  PlayerCache
	log    *zap.Logger
	MaxAge time.Duration

	mu  sync.Mutex
	mem map[string]models.Player
	now func() time.Time
}

// NewResolver builds a resolver. cache may be nil.
func NewResolver(dir Directory, cache PlayerCache, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		dir:    dir,
		cache:  cache,
		log:    log.With(zap.String("component", "resolver")),
		MaxAge: 7 * 24 * time.Hour,
		mem:    map[string]models.Player{},
		now:    time.Now,
	}
}

func (r *Resolver) fresh(p models.Player) bool {
	return r.now().Sub(p.ResolvedAt) < r.MaxAge
}

// Resolve returns the player for name, or ErrPlayerNotFound.
func (r *Resolver) Resolve(ctx context.Context, name string) (models.Player, error) {
	key := strings.TrimSpace(name)

	r.mu.Lock()
	p, ok := r.mem[key]
	r.mu.Unlock()
	if ok && r.fresh(p) {
		return p, nil
	}

	if r.cache != nil {
		cached, err := r.cache.Lookup(ctx, key)
		if err != nil {
			r.log.Warn("player cache lookup failed", zap.String("name", key), zap.Error(err))
		}
		if cached != nil && r.fresh(*cached) {
			r.remember(*cached)
			return *cached, nil
		}
	}

	person, err := r.dir.LookupPlayer(ctx, key)
	if err != nil {
		return models.Player{}, err
	}
	if person.CurrentTeam.Name == "" {
		if info, err := r.dir.PlayerInfo(ctx, person.ID); err == nil {
			person = info
		} else {
			r.log.Debug("player info unavailable", zap.Int64("mlbam_id", person.ID), zap.Error(err))
		}
	}

	p = models.Player{
		Name:       key,
		MLBAMID:    person.ID,
		FullName:   person.FullName,
		Team:       person.TeamCode(),
		Position:   person.PrimaryPosition.Name,
		ResolvedAt: r.now().UTC(),
	}
	if r.cache != nil {
		if err := r.cache.Store(ctx, &p); err != nil {
			r.log.Warn("player cache store failed", zap.String("name", key), zap.Error(err))
		}
	}
	r.remember(p)
	r.log.Debug("player resolved", zap.String("name", key), zap.Int64("mlbam_id", p.MLBAMID), zap.String("team", p.Team))
	return p, nil
}

// ResolveID is Resolve returning only the MLBAM id.
func (r *Resolver) ResolveID(ctx context.Context, name string) (int64, error) {
	p, err := r.Resolve(ctx, name)
	if err != nil {
		return 0, err
	}
	if p.MLBAMID == 0 {
		return 0, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
	}
	return p.MLBAMID, nil
}

func (r *Resolver) remember(p models.Player) {
	r.mu.Lock()
	r.mem[p.Name] = p
	r.mu.Unlock()
}
