package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"nounsIndexer/internal/model"
)

func TestNewStoreRequiresDSN(t *testing.T) {
	_, err := NewStore(context.Background(), "")
	require.Error(t, err)
}

func TestMirrorEmptyBatch(t *testing.T) {
	var s Store
	require.NoError(t, s.MirrorEvents(context.Background(), "VoteCast", nil))
}

// Runs against a real database when INDEXER_TEST_PG_DSN is set.
func TestMirrorRoundTrip(t *testing.T) {
	dsn := os.Getenv("INDEXER_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("INDEXER_TEST_PG_DSN not set")
	}
	ctx := context.Background()

	store, err := NewStore(ctx, dsn)
	require.NoError(t, err)
	defer store.Close()
	require.NoError(t, store.EnsureSchema(ctx))

	name := "TestMirrorRoundTrip"
	_, err = store.pool.Exec(ctx, `DELETE FROM indexed_events WHERE event_name=$1`, name)
	require.NoError(t, err)
	_, err = store.pool.Exec(ctx, `DELETE FROM indexer_state WHERE name=$1`, name)
	require.NoError(t, err)

	records := []model.Record{
		model.Transfer{TokenID: 1, Base: model.Base{Provenance: model.Provenance{BlockNumber: 10, LogIndex: 0}}},
		model.Transfer{TokenID: 2, Base: model.Base{Provenance: model.Provenance{BlockNumber: 12, LogIndex: 1}}},
	}
	require.NoError(t, store.MirrorEvents(ctx, name, records))
	require.NoError(t, store.MirrorEvents(ctx, name, records[:1]))

	block, ok, err := store.LoadState(ctx, name)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(12), block)

	var n int
	require.NoError(t, store.pool.QueryRow(ctx, `SELECT count(*) FROM indexed_events WHERE event_name=$1`, name).Scan(&n))
	require.Equal(t, 2, n)
}
