package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Gorm implementa Repository[T] sobre uma tabela gorm.
type Gorm[T any] struct {
	db *gorm.DB
}

func NewGorm[T any](db *gorm.DB) *Gorm[T] {
	return &Gorm[T]{db: db}
}

func (r *Gorm[T]) scoped(ctx context.Context, filters []Filter) (*gorm.DB, error) {
	q := r.db.WithContext(ctx).Model(new(T))
	for _, f := range filters {
		cl, err := f.clause()
		if err != nil {
			return nil, err
		}
		q = q.Where(cl, f.Value)
	}
	return q, nil
}

func (r *Gorm[T]) List(ctx context.Context, query Query) (Page[T], error) {
	query = query.normalized()

	q, err := r.scoped(ctx, query.Filters)
	if err != nil {
		return Page[T]{}, err
	}
	if query.Search != nil && strings.TrimSpace(query.Search.Term) != "" {
		cl, args, err := query.Search.clause()
		if err != nil {
			return Page[T]{}, err
		}
		q = q.Where(cl, args...)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Page[T]{}, err
	}

	for _, o := range query.OrderBy {
		cl, err := o.clause()
		if err != nil {
			return Page[T]{}, err
		}
		q = q.Order(cl)
	}
	for _, p := range query.Preload {
		q = q.Preload(p)
	}

	items := make([]T, 0)
	if err := q.
		Limit(query.Limit).
		Offset(query.offset()).
		Find(&items).Error; err != nil {
		return Page[T]{}, err
	}

	return Page[T]{
		Items:      items,
		Page:       query.Page,
		Limit:      query.Limit,
		Total:      total,
		TotalPages: totalPages(total, query.Limit),
	}, nil
}

func (r *Gorm[T]) Get(ctx context.Context, id any, scope ...Filter) (*T, error) {
	q, err := r.scoped(ctx, scope)
	if err != nil {
		return nil, err
	}

	var rec T
	if err := q.Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *Gorm[T]) Create(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *Gorm[T]) Update(ctx context.Context, rec *T) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *Gorm[T]) Delete(ctx context.Context, id any, scope ...Filter) error {
	q, err := r.scoped(ctx, scope)
	if err != nil {
		return err
	}

	res := q.Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repository[struct{}] = (*Gorm[struct{}])(nil)
