package sqlite

import (
	"context"

	"github.com/aklatan/buklat/internal/catalog/domain"
)

type recommendersRepo struct {
	q querier
}

func (r *recommendersRepo) GetRecommender(ctx context.Context, id int64) (domain.Recommender, error) {
	var rec domain.Recommender
	err := r.q.QueryRowContext(ctx,
		`SELECT id, name FROM dim_recommenders WHERE id = ?`, id).
		Scan(&rec.ID, &rec.Name)
	if err != nil {
		return domain.Recommender{}, mapNotFound(err)
	}
	return rec, nil
}

func (r *recommendersRepo) ListRecommenders(ctx context.Context) ([]domain.Recommender, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, name FROM dim_recommenders ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recommenders := []domain.Recommender{}
	for rows.Next() {
		var rec domain.Recommender
		if err := rows.Scan(&rec.ID, &rec.Name); err != nil {
			return nil, err
		}
		recommenders = append(recommenders, rec)
	}
	return recommenders, rows.Err()
}

func (r *recommendersRepo) CreateRecommender(ctx context.Context, name string) (domain.Recommender, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO dim_recommenders (name) VALUES (?)`, name)
	if err != nil {
		return domain.Recommender{}, mapConstraint(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Recommender{}, err
	}
	return domain.Recommender{ID: id, Name: name}, nil
}

func (r *recommendersRepo) UpdateRecommender(ctx context.Context, rec domain.Recommender) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE dim_recommenders SET name = ? WHERE id = ?`, rec.Name, rec.ID)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *recommendersRepo) DeleteRecommender(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM dim_recommenders WHERE id = ?`, id)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}
