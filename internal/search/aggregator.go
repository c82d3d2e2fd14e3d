package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/DjordjeVuckovic/portfolio/internal/domain"
)

const DefaultMaxResults = 20

// Source yields the candidates of one collection.
type Source interface {
	Type() domain.ContentType
	Candidates(ctx context.Context) ([]Candidate, error)
}

type Result struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Type        domain.ContentType `json:"type"`
	Category    string             `json:"category"`
	Description string             `json:"description,omitempty"`
	URL         string             `json:"url"`
	Date        string             `json:"date,omitempty"`
}

type scored struct {
	result Result
	score  int
}

type Aggregator struct {
	sources    []Source
	scorer     *Scorer
	maxResults int
}

type Option func(*Aggregator)

func WithMaxResults(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.maxResults = n
		}
	}
}

func WithScorer(s *Scorer) Option {
	return func(a *Aggregator) {
		if s != nil {
			a.scorer = s
		}
	}
}

// NewAggregator searches sources in the given order.
func NewAggregator(sources []Source, opts ...Option) *Aggregator {
	a := &Aggregator{
		sources:    sources,
		scorer:     NewScorer(DefaultWeights()),
		maxResults: DefaultMaxResults,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Search scores every candidate against query and returns the best matches,
// highest score first. Ties keep source order. A source that fails to load
// contributes nothing.
func (a *Aggregator) Search(ctx context.Context, query string) []Result {
	q := strings.TrimSpace(query)
	if q == "" {
		return []Result{}
	}

	var hits []scored
	for _, src := range a.sources {
		candidates, err := src.Candidates(ctx)
		if err != nil {
			slog.Warn("search source unavailable", "type", src.Type(), "error", err)
			continue
		}

		for _, c := range candidates {
			score := a.scorer.Score(c, q)
			if score <= 0 {
				continue
			}
			hits = append(hits, scored{result: toResult(c), score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score > hits[j].score
	})
	if len(hits) > a.maxResults {
		hits = hits[:a.maxResults]
	}

	results := make([]Result, 0, len(hits))
	for _, h := range hits {
		results = append(results, h.result)
	}
	return results
}

func toResult(c Candidate) Result {
	desc := c.Description
	if c.Snippet != "" {
		desc = c.Snippet
	}
	return Result{
		ID:          c.ID,
		Title:       c.Title,
		Type:        c.Type,
		Category:    c.Category,
		Description: desc,
		URL:         c.URL,
		Date:        c.Date,
	}
}
