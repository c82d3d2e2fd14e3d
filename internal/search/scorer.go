package search

import (
	"strings"

	"github.com/DjordjeVuckovic/portfolio/internal/domain"
)

// Candidate is the searchable projection of a stored record.
type Candidate struct {
	ID          string
	Type        domain.ContentType
	Title       string
	Category    string
	Tags        []string
	Description string
	Content     string
	// Snippet is shown in results in place of Description when set.
	Snippet string
	URL     string
	Date    string
}

type Scorer struct {
	weights Weights
}

func NewScorer(w Weights) *Scorer {
	return &Scorer{weights: w}
}

// Score sums the weights of every field containing the query, compared
// case-insensitively. An exact title adds its bonus on top of the title
// weight. Tags count as category: the category weight is added at most once.
func (s *Scorer) Score(c Candidate, query string) int {
	q := strings.ToLower(query)
	if q == "" {
		return 0
	}

	score := 0
	title := strings.ToLower(c.Title)
	if strings.Contains(title, q) {
		score += s.weights.Title
		if title == q {
			score += s.weights.ExactTitle
		}
	}

	if matchesCategory(c, q) {
		score += s.weights.Category
	}
	if strings.Contains(strings.ToLower(c.Description), q) {
		score += s.weights.Description
	}
	if strings.Contains(strings.ToLower(c.Content), q) {
		score += s.weights.Content
	}
	return score
}

func matchesCategory(c Candidate, q string) bool {
	if strings.Contains(strings.ToLower(c.Category), q) {
		return true
	}
	for _, tag := range c.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
