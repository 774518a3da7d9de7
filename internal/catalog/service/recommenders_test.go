package service

import (
	"context"
	"testing"

	"github.com/aklatan/buklat/internal/catalog/domain"
	"github.com/aklatan/buklat/pkg/apierr"
	"github.com/stretchr/testify/require"
)

func TestRecommendersLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := &Recommenders{Store: newTestStore(t)}

	created, err := svc.Create(ctx, domain.RecommenderParams{Name: "Book Club"})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.ID)

	_, err = svc.Create(ctx, domain.RecommenderParams{Name: "Book Club"})
	requireAPIError(t, err, 409, apierr.NameEntityAlreadyExists, "Recommender already exists.")

	updated, err := svc.Update(ctx, created.ID, domain.RecommenderUpdate{Name: strPtr("Office Book Club")})
	require.NoError(t, err)
	require.Equal(t, "Office Book Club", updated.Name)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	snapshot, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, updated, snapshot)

	_, err = svc.Get(ctx, created.ID)
	requireAPIError(t, err, 404, apierr.NameEntityDoesNotExist, "Recommender with id 1 does not exist.")
}

func TestRecommendersUpdateConflicts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := &Recommenders{Store: newTestStore(t)}

	_, err := svc.Create(ctx, domain.RecommenderParams{Name: "Book Club"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, domain.RecommenderParams{Name: "A Friend"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, second.ID, domain.RecommenderUpdate{Name: strPtr("Book Club")})
	requireAPIError(t, err, 409, apierr.NameEntityAlreadyExists, "Recommender with this name already exists.")

	_, err = svc.Update(ctx, 42, domain.RecommenderUpdate{Name: strPtr("Nobody")})
	requireAPIError(t, err, 404, apierr.NameEntityDoesNotExist, "Recommender with id 42 does not exist.")
}
