package pg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/portfolio/internal/storage"
	"github.com/DjordjeVuckovic/portfolio/internal/storage/storagetest"
	pkgtesting "github.com/DjordjeVuckovic/portfolio/pkg/testing"
)

func TestStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()

	container := pkgtesting.NewPGContainerWithCleanup(ctx, t)

	pool, err := NewConnectionPool(ctx, PoolConfig{ConnStr: container.ConnString})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	store := NewStore(pool)
	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, pool.Ping(ctx))

	storagetest.Run(t, func(t *testing.T) storage.Store {
		_, err := pool.GetConn().Exec(ctx, "TRUNCATE TABLE content_records")
		require.NoError(t, err)
		return store
	})
}
