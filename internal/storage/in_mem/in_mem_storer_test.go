package in_mem

import (
	"testing"

	"github.com/DjordjeVuckovic/portfolio/internal/storage"
	"github.com/DjordjeVuckovic/portfolio/internal/storage/storagetest"
)

func TestInMemStorer(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		return NewInMemStorer()
	})
}
