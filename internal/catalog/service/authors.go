package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aklatan/buklat/internal/catalog/domain"
	"github.com/aklatan/buklat/internal/catalog/store"
	"github.com/aklatan/buklat/pkg/apierr"
)

// Authors manages the author dimension.
type Authors struct {
	Store store.Store
}

func (s *Authors) Create(ctx context.Context, params domain.AuthorParams) (domain.Author, error) {
	author, err := s.Store.Authors().CreateAuthor(ctx, params.Name)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Author{}, apierr.EntityAlreadyExists("Author")
		}
		return domain.Author{}, fmt.Errorf("create author: %w", err)
	}
	return author, nil
}

func (s *Authors) Get(ctx context.Context, id int64) (domain.Author, error) {
	author, err := s.Store.Authors().GetAuthor(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Author{}, apierr.EntityDoesNotExist("Author", id)
		}
		return domain.Author{}, fmt.Errorf("get author %d: %w", id, err)
	}
	return author, nil
}

func (s *Authors) List(ctx context.Context) ([]domain.Author, error) {
	authors, err := s.Store.Authors().ListAuthors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

// Update applies the fields present in upd to an existing author. The read
// and the write share one transaction so a concurrent rename cannot slip in
// between them.
func (s *Authors) Update(ctx context.Context, id int64, upd domain.AuthorUpdate) (domain.Author, error) {
	var author domain.Author
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Authors().GetAuthor(ctx, id)
		if err != nil {
			return err
		}
		if upd.Name != nil {
			current.Name = *upd.Name
		}
		if err := tx.Authors().UpdateAuthor(ctx, current); err != nil {
			return err
		}
		author = current
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domain.Author{}, apierr.EntityDoesNotExist("Author", id)
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.Author{}, apierr.EntityNameTaken("Author")
		}
		return domain.Author{}, fmt.Errorf("update author %d: %w", id, err)
	}
	return author, nil
}

// Delete removes an author and returns its pre-deletion snapshot.
func (s *Authors) Delete(ctx context.Context, id int64) (domain.Author, error) {
	var author domain.Author
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Authors().GetAuthor(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Authors().DeleteAuthor(ctx, id); err != nil {
			return err
		}
		author = current
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Author{}, apierr.EntityDoesNotExist("Author", id)
		}
		return domain.Author{}, fmt.Errorf("delete author %d: %w", id, err)
	}
	return author, nil
}
