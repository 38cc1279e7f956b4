package vecadmin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/knnq/engine"
	"github.com/viant/knnq/index/bruteforce"
	"github.com/viant/knnq/index/cover"
	"github.com/viant/knnq/vector"
)

func TestReindexAndLoad(t *testing.T) {
	ctx := context.Background()
	db, err := engine.Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	store, err := vector.NewSQLiteStore(db)
	require.NoError(t, err)
	_, err = store.AddDocuments(ctx, []vector.Document{
		{ID: "a", Embedding: []float32{1, 0}},
		{ID: "b", Embedding: []float32{0, 1}},
		{ID: "empty"},
		{ID: "c", Embedding: []float32{0.9, 0.1}},
	})
	require.NoError(t, err)

	n, err := Reindex(ctx, db, "docs_brute", &bruteforce.Index{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	restored := cover.New(cover.WithDistance(cover.DistanceEuclidean))
	require.NoError(t, Load(ctx, db, "docs_brute", restored))
	assert.Equal(t, 3, restored.Len())

	ids, _, err := restored.Query([]float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, ids)

	err = Load(ctx, db, "missing", &bruteforce.Index{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Reindex(ctx, nil, "x", &bruteforce.Index{})
	assert.Error(t, err)
}
