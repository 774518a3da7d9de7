package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aklatan/buklat/internal/catalog/domain"
	"github.com/aklatan/buklat/internal/catalog/store"
	"github.com/aklatan/buklat/pkg/apierr"
)

// Books manages the book fact table. Every write that references the
// dimensions verifies the author first and the recommender second, so the
// reported missing entity is deterministic when both are absent.
type Books struct {
	Store store.Store
}

func (s *Books) Create(ctx context.Context, params domain.BookParams) (domain.Book, error) {
	book := domain.Book{
		AuthorID:      params.AuthorID,
		RecommenderID: params.RecommenderID,
		Title:         params.Title,
		YearPublished: params.YearPublished,
	}
	if params.IsPurchased != nil {
		book.IsPurchased = *params.IsPurchased
	}
	if params.IsRead != nil {
		book.IsRead = *params.IsRead
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := checkBookRefs(ctx, tx, book.AuthorID, book.RecommenderID); err != nil {
			return err
		}
		created, err := tx.Books().CreateBook(ctx, book)
		if err != nil {
			return err
		}
		book = created
		return nil
	})
	if err != nil {
		var apiErr *apierr.Error
		if errors.As(err, &apiErr) {
			return domain.Book{}, err
		}
		return domain.Book{}, fmt.Errorf("create book: %w", err)
	}
	return book, nil
}

func (s *Books) Get(ctx context.Context, id int64) (domain.Book, error) {
	book, err := s.Store.Books().GetBook(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Book{}, apierr.EntityDoesNotExist("Book", id)
		}
		return domain.Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	return book, nil
}

func (s *Books) List(ctx context.Context) ([]domain.Book, error) {
	books, err := s.Store.Books().ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Update applies the fields present in upd. Re-pointing the author or the
// recommender re-runs the existence checks for the new target inside the
// same transaction as the write.
func (s *Books) Update(ctx context.Context, id int64, upd domain.BookUpdate) (domain.Book, error) {
	var book domain.Book
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Books().GetBook(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apierr.EntityDoesNotExist("Book", id)
			}
			return err
		}
		if upd.AuthorID != nil {
			current.AuthorID = *upd.AuthorID
		}
		if upd.RecommenderID != nil {
			current.RecommenderID = *upd.RecommenderID
		}
		if upd.AuthorID != nil || upd.RecommenderID != nil {
			if err := checkBookRefs(ctx, tx, current.AuthorID, current.RecommenderID); err != nil {
				return err
			}
		}
		if upd.Title != nil {
			current.Title = *upd.Title
		}
		if upd.YearPublished != nil {
			current.YearPublished = *upd.YearPublished
		}
		if upd.IsPurchased != nil {
			current.IsPurchased = *upd.IsPurchased
		}
		if upd.IsRead != nil {
			current.IsRead = *upd.IsRead
		}
		if err := tx.Books().UpdateBook(ctx, current); err != nil {
			return err
		}
		book = current
		return nil
	})
	if err != nil {
		var apiErr *apierr.Error
		if errors.As(err, &apiErr) {
			return domain.Book{}, err
		}
		return domain.Book{}, fmt.Errorf("update book %d: %w", id, err)
	}
	return book, nil
}

func (s *Books) Delete(ctx context.Context, id int64) (domain.Book, error) {
	var book domain.Book
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Books().GetBook(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Books().DeleteBook(ctx, id); err != nil {
			return err
		}
		book = current
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Book{}, apierr.EntityDoesNotExist("Book", id)
		}
		return domain.Book{}, fmt.Errorf("delete book %d: %w", id, err)
	}
	return book, nil
}

// checkBookRefs confirms both referenced dimension rows exist, author first.
func checkBookRefs(ctx context.Context, tx store.Tx, authorID, recommenderID int64) error {
	if _, err := tx.Authors().GetAuthor(ctx, authorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apierr.EntityDoesNotExist("Author", authorID)
		}
		return err
	}
	if _, err := tx.Recommenders().GetRecommender(ctx, recommenderID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apierr.EntityDoesNotExist("Recommender", recommenderID)
		}
		return err
	}
	return nil
}
