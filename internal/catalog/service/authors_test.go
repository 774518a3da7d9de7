package service

import (
	"context"
	"testing"

	"github.com/aklatan/buklat/internal/catalog/domain"
	"github.com/aklatan/buklat/pkg/apierr"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestAuthorsCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("assigns sequential ids", func(t *testing.T) {
		svc := &Authors{Store: newTestStore(t)}

		first, err := svc.Create(ctx, domain.AuthorParams{Name: "Ursula K. Le Guin"})
		require.NoError(t, err)
		require.Equal(t, int64(1), first.ID)

		second, err := svc.Create(ctx, domain.AuthorParams{Name: "Italo Calvino"})
		require.NoError(t, err)
		require.Equal(t, int64(2), second.ID)
	})

	t.Run("rejects duplicate names", func(t *testing.T) {
		svc := &Authors{Store: newTestStore(t)}

		_, err := svc.Create(ctx, domain.AuthorParams{Name: "Ursula K. Le Guin"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, domain.AuthorParams{Name: "Ursula K. Le Guin"})
		requireAPIError(t, err, 409, apierr.NameEntityAlreadyExists, "Author already exists.")
	})
}

func TestAuthorsGetList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := &Authors{Store: newTestStore(t)}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)

	created, err := svc.Create(ctx, domain.AuthorParams{Name: "Ursula K. Le Guin"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)

	_, err = svc.Get(ctx, 99)
	requireAPIError(t, err, 404, apierr.NameEntityDoesNotExist, "Author with id 99 does not exist.")

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestAuthorsUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("renames in place", func(t *testing.T) {
		svc := &Authors{Store: newTestStore(t)}

		created, err := svc.Create(ctx, domain.AuthorParams{Name: "U. Le Guin"})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, created.ID, domain.AuthorUpdate{Name: strPtr("Ursula K. Le Guin")})
		require.NoError(t, err)
		require.Equal(t, created.ID, updated.ID)
		require.Equal(t, "Ursula K. Le Guin", updated.Name)

		got, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		require.Equal(t, "Ursula K. Le Guin", got.Name)
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		svc := &Authors{Store: newTestStore(t)}

		created, err := svc.Create(ctx, domain.AuthorParams{Name: "Italo Calvino"})
		require.NoError(t, err)

		updated, err := svc.Update(ctx, created.ID, domain.AuthorUpdate{})
		require.NoError(t, err)
		require.Equal(t, created, updated)
	})

	t.Run("rejects renaming onto a taken name", func(t *testing.T) {
		svc := &Authors{Store: newTestStore(t)}

		_, err := svc.Create(ctx, domain.AuthorParams{Name: "Ursula K. Le Guin"})
		require.NoError(t, err)
		second, err := svc.Create(ctx, domain.AuthorParams{Name: "Italo Calvino"})
		require.NoError(t, err)

		_, err = svc.Update(ctx, second.ID, domain.AuthorUpdate{Name: strPtr("Ursula K. Le Guin")})
		requireAPIError(t, err, 409, apierr.NameEntityAlreadyExists, "Author with this name already exists.")
	})

	t.Run("missing author", func(t *testing.T) {
		svc := &Authors{Store: newTestStore(t)}

		_, err := svc.Update(ctx, 7, domain.AuthorUpdate{Name: strPtr("Anyone")})
		requireAPIError(t, err, 404, apierr.NameEntityDoesNotExist, "Author with id 7 does not exist.")
	})
}

func TestAuthorsDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := &Authors{Store: newTestStore(t)}

	created, err := svc.Create(ctx, domain.AuthorParams{Name: "Ursula K. Le Guin"})
	require.NoError(t, err)

	snapshot, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created, snapshot)

	_, err = svc.Get(ctx, created.ID)
	requireAPIError(t, err, 404, apierr.NameEntityDoesNotExist, "Author with id 1 does not exist.")

	_, err = svc.Delete(ctx, created.ID)
	requireAPIError(t, err, 404, apierr.NameEntityDoesNotExist, "Author with id 1 does not exist.")
}
