package search

import (
	"fmt"
	"strconv"
)

type Config struct {
	WeightsFile string
	MaxResults  int
}

// LoadConfig reads SEARCH_WEIGHTS_FILE and SEARCH_MAX_RESULTS through lookup.
func LoadConfig(lookup func(string) string) (*Config, error) {
	cfg := &Config{
		WeightsFile: lookup("SEARCH_WEIGHTS_FILE"),
		MaxResults:  DefaultMaxResults,
	}

	if v := lookup("SEARCH_MAX_RESULTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid SEARCH_MAX_RESULTS %q: must be a positive number", v)
		}
		cfg.MaxResults = n
	}
	return cfg, nil
}

// NewFromConfig builds an aggregator over sources with the configured
// weights and result cap.
func NewFromConfig(cfg *Config, sources ...Source) (*Aggregator, error) {
	weights, err := LoadWeightsFile(cfg.WeightsFile)
	if err != nil {
		return nil, err
	}
	return NewAggregator(sources, WithScorer(NewScorer(weights)), WithMaxResults(cfg.MaxResults)), nil
}
