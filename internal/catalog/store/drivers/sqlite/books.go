package sqlite

import (
	"context"

	"github.com/aklatan/buklat/internal/catalog/domain"
)

type booksRepo struct {
	q querier
}

const bookColumns = `id, author_id, recommender_id, title, year_published, is_purchased, is_read`

func (r *booksRepo) GetBook(ctx context.Context, id int64) (domain.Book, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM fct_books WHERE id = ?`, id)

	var b domain.Book
	err := row.Scan(
		&b.ID,
		&b.AuthorID,
		&b.RecommenderID,
		&b.Title,
		&b.YearPublished,
		&b.IsPurchased,
		&b.IsRead,
	)
	if err != nil {
		return domain.Book{}, mapNotFound(err)
	}
	return b, nil
}

func (r *booksRepo) ListBooks(ctx context.Context) ([]domain.Book, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM fct_books ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		var b domain.Book
		err := rows.Scan(
			&b.ID,
			&b.AuthorID,
			&b.RecommenderID,
			&b.Title,
			&b.YearPublished,
			&b.IsPurchased,
			&b.IsRead,
		)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *booksRepo) CreateBook(ctx context.Context, b domain.Book) (domain.Book, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO fct_books (author_id, recommender_id, title, year_published, is_purchased, is_read)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.AuthorID, b.RecommenderID, b.Title, b.YearPublished, b.IsPurchased, b.IsRead)
	if err != nil {
		return domain.Book{}, mapConstraint(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Book{}, err
	}
	b.ID = id
	return b, nil
}

func (r *booksRepo) UpdateBook(ctx context.Context, b domain.Book) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE fct_books
		 SET author_id = ?, recommender_id = ?, title = ?, year_published = ?, is_purchased = ?, is_read = ?
		 WHERE id = ?`,
		b.AuthorID, b.RecommenderID, b.Title, b.YearPublished, b.IsPurchased, b.IsRead, b.ID)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *booksRepo) DeleteBook(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM fct_books WHERE id = ?`, id)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}
