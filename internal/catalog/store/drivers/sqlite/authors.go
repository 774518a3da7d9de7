package sqlite

import (
	"context"

	"github.com/aklatan/buklat/internal/catalog/domain"
)

type authorsRepo struct {
	q querier
}

func (r *authorsRepo) GetAuthor(ctx context.Context, id int64) (domain.Author, error) {
	var a domain.Author
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name FROM dim_authors WHERE id = ?`, id).
		Scan(&a.ID, &a.Name)
	if err != nil {
		return domain.Author{}, mapNotFound(err)
	}
	return a, nil
}

func (r *authorsRepo) ListAuthors(ctx context.Context) ([]domain.Author, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name FROM dim_authors ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authors := []domain.Author{}
	for rows.Next() {
		var a domain.Author
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}

func (r *authorsRepo) CreateAuthor(ctx context.Context, name string) (domain.Author, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO dim_authors (name) VALUES (?)`, name)
	if err != nil {
		return domain.Author{}, mapConstraint(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Author{}, err
	}
	return domain.Author{ID: id, Name: name}, nil
}

func (r *authorsRepo) UpdateAuthor(ctx context.Context, a domain.Author) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE dim_authors SET name = ? WHERE id = ?`, a.Name, a.ID)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *authorsRepo) DeleteAuthor(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM dim_authors WHERE id = ?`, id)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}
