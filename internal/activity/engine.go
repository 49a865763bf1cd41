package activity

import (
	"fmt"
	"sort"
)

const (
	// DefaultLimit is how many ranked results Recommend keeps.
	DefaultLimit = 10

	minScore      = 0
	maxScore      = 100
	defaultReason = "suitable for current conditions"
)

// ScoreResult is the scored, justified outcome for one activity.
type ScoreResult struct {
	Name        string   `json:"name"`
	Score       int      `json:"score"`
	Description string   `json:"description"`
	Reasons     []string `json:"reasons"`
}

// Engine scores a fixed catalog against contexts. It holds no mutable state
// after construction and is safe for concurrent use.
type Engine struct {
	catalog Catalog
	rules   []RuleSet
	limit   int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRules replaces the default rule tables.
func WithRules(rules ...RuleSet) Option {
	return func(e *Engine) {
		e.rules = rules
	}
}

// WithLimit sets how many results Recommend keeps. n <= 0 keeps all of them.
func WithLimit(n int) Option {
	return func(e *Engine) {
		e.limit = n
	}
}

// NewEngine validates the catalog and builds an Engine over a private copy of it.
func NewEngine(catalog Catalog, opts ...Option) (*Engine, error) {
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	e := &Engine{
		catalog: append(Catalog(nil), catalog...),
		rules:   DefaultRules(),
		limit:   DefaultLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Catalog returns a copy of the engine's catalog.
func (e *Engine) Catalog() Catalog {
	return append(Catalog(nil), e.catalog...)
}

// Score computes the adjusted score and reasons for one activity.
func (e *Engine) Score(a Activity, c Context) (ScoreResult, error) {
	if err := c.Validate(); err != nil {
		return ScoreResult{}, err
	}
	if err := a.Validate(); err != nil {
		return ScoreResult{}, err
	}
	return e.score(a, c), nil
}

func (e *Engine) score(a Activity, c Context) ScoreResult {
	total := a.BaseScore
	reasons := make([]string, 0, len(e.rules))

	for _, rs := range e.rules {
		delta, reason, fired := rs.Apply(a, c)
		if !fired {
			continue
		}
		total += delta
		reasons = append(reasons, reason)
	}

	if len(reasons) == 0 {
		reasons = []string{defaultReason}
	}

	return ScoreResult{
		Name:        a.Name,
		Score:       clamp(total, minScore, maxScore),
		Description: a.Description,
		Reasons:     reasons,
	}
}

// Recommend scores every catalog activity once and returns them ranked by
// score, highest first. Equal scores keep catalog order.
func (e *Engine) Recommend(c Context) ([]ScoreResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	results := make([]ScoreResult, 0, len(e.catalog))
	for _, a := range e.catalog {
		results = append(results, e.score(a, c))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if e.limit > 0 && len(results) > e.limit {
		results = results[:e.limit]
	}
	return results, nil
}

// Score scores one activity with the default rules.
func Score(a Activity, c Context) (ScoreResult, error) {
	e := &Engine{rules: DefaultRules(), limit: DefaultLimit}
	return e.Score(a, c)
}

// Recommend ranks catalog against c with the default rules and limit.
func Recommend(c Context, catalog Catalog) ([]ScoreResult, error) {
	e, err := NewEngine(catalog)
	if err != nil {
		return nil, err
	}
	return e.Recommend(c)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
