package movies

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustinTDCT/CineCurator/internal/db"
)

// Runs against a real Postgres when CINECURATOR_TEST_DATABASE_URL is set.
func testRepository(t *testing.T) *Repository {
	t.Helper()
	url := os.Getenv("CINECURATOR_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("CINECURATOR_TEST_DATABASE_URL not set, skipping integration test")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, db.Options{URL: url})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, database.Migrate(ctx))
	_, err = database.ExecContext(ctx, "TRUNCATE movies RESTART IDENTITY")
	require.NoError(t, err)
	return NewRepository(database.DB)
}

func TestRepository_RoundTrip(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	profile := "/keanu.jpg"
	asset := "asset-1"
	m := &Movie{
		Title:       "The Matrix",
		Slug:        "the-matrix",
		ExternalID:  603,
		Rating:      8.2,
		AssetID:     &asset,
		Cast:        []CastMember{{Name: "Keanu Reeves", Character: "Neo", ProfilePath: &profile}},
		Director:    "Lana Wachowski",
		Category:    CategoryPopular,
		CustomTags:  []string{"Action", "Sci-Fi"},
		ReleaseDate: "1999-03-30",
	}
	require.NoError(t, repo.Create(ctx, m))
	require.NotZero(t, m.ID)

	got, err := repo.Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Cast, got.Cast)
	assert.Equal(t, m.CustomTags, got.CustomTags)
	require.NotNil(t, got.AssetID)
	assert.Equal(t, asset, *got.AssetID)

	got.Category = CategoryTrending
	got.AssetID = nil
	require.NoError(t, repo.Update(ctx, got))

	items, total, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, CategoryTrending, items[0].Category)
	assert.Nil(t, items[0].AssetID)

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{m.ID}, ids)

	require.NoError(t, repo.Delete(ctx, m.ID))
	assert.ErrorIs(t, repo.Delete(ctx, m.ID), ErrNotFound)
	_, err = repo.Get(ctx, m.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	m.ID = 999
	assert.ErrorIs(t, repo.Update(ctx, m), ErrNotFound)
}
