// Package cache memoises engine results for repeated CLI invocations within
// one process, keyed on a structural hash of the inputs.
package cache

import (
	"fmt"
	"time"

	"github.com/fireplan/fire-calculator/internal/calculation"
	"github.com/fireplan/fire-calculator/internal/domain"
	"github.com/mitchellh/hashstructure/v2"
	gocache "github.com/patrickmn/go-cache"
)

const (
	DefaultExpiration = 10 * time.Minute
	CleanupInterval   = 20 * time.Minute
)

const (
	ckSimulate = "simulate:%s:%016x"
	ckSolve    = "solve:%016x"
	ckCompare  = "compare:%016x"
)

// ResultCache stores run, solve and comparison results. Cached values are
// shared; callers must not modify them.
type ResultCache struct {
	store  *gocache.Cache
	ttl    time.Duration
	hits   int
	misses int
}

// New creates a cache whose entries live for ttl (DefaultExpiration when
// ttl <= 0).
func New(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultExpiration
	}
	return &ResultCache{store: gocache.New(ttl, 2*ttl), ttl: ttl}
}

// fingerprintInput is hashed field by field. Decimals hash through their
// string form.
type fingerprintInput struct {
	Profile *domain.HouseholdProfile
	Config  domain.DrawdownConfig
	Extra   interface{}
}

// Fingerprint hashes a profile, its run config and any extra inputs.
func Fingerprint(profile *domain.HouseholdProfile, cfg domain.DrawdownConfig, extra interface{}) (uint64, error) {
	h, err := hashstructure.Hash(fingerprintInput{Profile: profile, Config: cfg, Extra: extra}, hashstructure.FormatV2, &hashstructure.HashOptions{
		UseStringer: true,
	})
	if err != nil {
		return 0, fmt.Errorf("fingerprint: %w", err)
	}
	return h, nil
}

func (rc *ResultCache) get(key string) (interface{}, bool) {
	v, ok := rc.store.Get(key)
	if ok {
		rc.hits++
	} else {
		rc.misses++
	}
	return v, ok
}

// Stats returns hit and miss counts.
func (rc *ResultCache) Stats() (hits, misses int) {
	return rc.hits, rc.misses
}

// Len is the number of live entries.
func (rc *ResultCache) Len() int {
	return rc.store.ItemCount()
}

// Flush drops every entry.
func (rc *ResultCache) Flush() {
	rc.store.Flush()
}

// Engine wraps a calculation engine with the cache.
type Engine struct {
	*calculation.CalculationEngine
	cache *ResultCache
}

// Wrap returns a caching view of engine. A nil cache disables caching.
func Wrap(engine *calculation.CalculationEngine, rc *ResultCache) *Engine {
	return &Engine{CalculationEngine: engine, cache: rc}
}

// Simulate runs or recalls a drawdown.
func (e *Engine) Simulate(profile *domain.HouseholdProfile, cfg domain.DrawdownConfig) (*domain.RunResult, error) {
	if e.cache == nil || profile == nil {
		return e.CalculationEngine.Simulate(profile, cfg)
	}
	fp, err := Fingerprint(profile, cfg, nil)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf(ckSimulate, cfg.Mode(), fp)
	if v, ok := e.cache.get(key); ok {
		return v.(*domain.RunResult), nil
	}
	res, err := e.CalculationEngine.Simulate(profile, cfg)
	if err != nil {
		return nil, err
	}
	e.cache.store.Set(key, res, e.cache.ttl)
	return res, nil
}

// SolveDetailed runs or recalls a die-with-zero search.
func (e *Engine) SolveDetailed(profile *domain.HouseholdProfile, cfg domain.DrawdownConfig, opts calculation.SolverOptions) (*domain.SolveResult, error) {
	if e.cache == nil || profile == nil {
		return e.CalculationEngine.SolveDetailed(profile, cfg, opts)
	}
	fp, err := Fingerprint(profile, cfg, opts)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf(ckSolve, fp)
	if v, ok := e.cache.get(key); ok {
		return v.(*domain.SolveResult), nil
	}
	res, err := e.CalculationEngine.SolveDetailed(profile, cfg, opts)
	if err != nil {
		return nil, err
	}
	e.cache.store.Set(key, res, e.cache.ttl)
	return res, nil
}

type comparison struct {
	outcomes []domain.StrategyOutcome
	best     domain.StrategyMode
}

// CompareStrategies runs or recalls a four-strategy comparison.
func (e *Engine) CompareStrategies(profile *domain.HouseholdProfile, cfg domain.DrawdownConfig) ([]domain.StrategyOutcome, domain.StrategyMode, error) {
	if e.cache == nil || profile == nil {
		return e.CalculationEngine.CompareStrategies(profile, cfg)
	}
	// The strategy field does not influence a comparison.
	cfg = cfg.WithStrategy("")
	fp, err := Fingerprint(profile, cfg, nil)
	if err != nil {
		return nil, "", err
	}
	key := fmt.Sprintf(ckCompare, fp)
	if v, ok := e.cache.get(key); ok {
		c := v.(comparison)
		return c.outcomes, c.best, nil
	}
	outcomes, best, err := e.CalculationEngine.CompareStrategies(profile, cfg)
	if err != nil {
		return nil, "", err
	}
	e.cache.store.Set(key, comparison{outcomes: outcomes, best: best}, e.cache.ttl)
	return outcomes, best, nil
}
