package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aklatan/buklat/internal/catalog/domain"
	"github.com/aklatan/buklat/internal/catalog/store"
	"github.com/aklatan/buklat/pkg/apierr"
)

// Recommenders manages the recommender dimension. It mirrors Authors; the
// two dimensions stay separate services because their wire surfaces diverge
// independently.
type Recommenders struct {
	Store store.Store
}

func (s *Recommenders) Create(ctx context.Context, params domain.RecommenderParams) (domain.Recommender, error) {
	rec, err := s.Store.Recommenders().CreateRecommender(ctx, params.Name)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Recommender{}, apierr.EntityAlreadyExists("Recommender")
		}
		return domain.Recommender{}, fmt.Errorf("create recommender: %w", err)
	}
	return rec, nil
}

func (s *Recommenders) Get(ctx context.Context, id int64) (domain.Recommender, error) {
	rec, err := s.Store.Recommenders().GetRecommender(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Recommender{}, apierr.EntityDoesNotExist("Recommender", id)
		}
		return domain.Recommender{}, fmt.Errorf("get recommender %d: %w", id, err)
	}
	return rec, nil
}

func (s *Recommenders) List(ctx context.Context) ([]domain.Recommender, error) {
	recs, err := s.Store.Recommenders().ListRecommenders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recommenders: %w", err)
	}
	return recs, nil
}

func (s *Recommenders) Update(ctx context.Context, id int64, upd domain.RecommenderUpdate) (domain.Recommender, error) {
	var rec domain.Recommender
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Recommenders().GetRecommender(ctx, id)
		if err != nil {
			return err
		}
		if upd.Name != nil {
			current.Name = *upd.Name
		}
		if err := tx.Recommenders().UpdateRecommender(ctx, current); err != nil {
			return err
		}
		rec = current
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domain.Recommender{}, apierr.EntityDoesNotExist("Recommender", id)
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.Recommender{}, apierr.EntityNameTaken("Recommender")
		}
		return domain.Recommender{}, fmt.Errorf("update recommender %d: %w", id, err)
	}
	return rec, nil
}

func (s *Recommenders) Delete(ctx context.Context, id int64) (domain.Recommender, error) {
	var rec domain.Recommender
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Recommenders().GetRecommender(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Recommenders().DeleteRecommender(ctx, id); err != nil {
			return err
		}
		rec = current
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Recommender{}, apierr.EntityDoesNotExist("Recommender", id)
		}
		return domain.Recommender{}, fmt.Errorf("delete recommender %d: %w", id, err)
	}
	return rec, nil
}
