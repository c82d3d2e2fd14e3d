package search

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DjordjeVuckovic/portfolio/internal/apperr"
)

// Weights are the points a query match is worth per field.
type Weights struct {
	Title       int `yaml:"title"`
	ExactTitle  int `yaml:"exactTitle"`
	Category    int `yaml:"category"`
	Description int `yaml:"description"`
	Content     int `yaml:"content"`
}

func DefaultWeights() Weights {
	return Weights{
		Title:       10,
		ExactTitle:  20,
		Category:    5,
		Description: 3,
		Content:     2,
	}
}

func (w Weights) Validate() error {
	if w.Title < 0 || w.ExactTitle < 0 || w.Category < 0 || w.Description < 0 || w.Content < 0 {
		return apperr.NewValidation("search weights must not be negative")
	}
	return nil
}

type WeightsLoader struct {
	reader io.Reader
}

func NewWeightsLoader(reader io.Reader) *WeightsLoader {
	return &WeightsLoader{
		reader: reader,
	}
}

// Load decodes weights over the defaults, so a partial file only overrides
// the fields it names. An empty document yields the defaults.
func (wl *WeightsLoader) Load() (Weights, error) {
	w := DefaultWeights()
	decoder := yaml.NewDecoder(wl.reader)
	if err := decoder.Decode(&w); err != nil && !errors.Is(err, io.EOF) {
		return Weights{}, fmt.Errorf("failed to decode search weights: %w", err)
	}
	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}

// LoadWeightsFile reads weights from path. An empty path means defaults.
func LoadWeightsFile(path string) (Weights, error) {
	if path == "" {
		return DefaultWeights(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Weights{}, fmt.Errorf("failed to open search weights %s: %w", path, err)
	}
	defer f.Close()

	return NewWeightsLoader(f).Load()
}
