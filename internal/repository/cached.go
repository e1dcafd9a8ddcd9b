package repository

import (
	"context"

	"project-team-tracker/internal/cache"
)

// Cached is a read-through decorator over a Repository. FindByID and
// ExistsByID hits are answered from the cache; every write goes to the inner
// repository first and then refreshes or evicts the cached copy.
type Cached[T any] struct {
	inner Repository[T]
	cache cache.Cache[string, T]
	idOf  func(*T) string
}

// NewCached wraps inner. idOf extracts the primary key of an entity.
func NewCached[T any](inner Repository[T], c cache.Cache[string, T], idOf func(*T) string) *Cached[T] {
	return &Cached[T]{inner: inner, cache: c, idOf: idOf}
}

func (r *Cached[T]) Save(ctx context.Context, entity *T) error {
	if err := r.inner.Save(ctx, entity); err != nil {
		return err
	}
	r.cache.Set(r.idOf(entity), *entity, 0)
	return nil
}

func (r *Cached[T]) FindByID(ctx context.Context, id string) (*T, error) {
	if v, ok := r.cache.Get(id); ok {
		return &v, nil
	}
	entity, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Set(id, *entity, 0)
	return entity, nil
}

func (r *Cached[T]) Update(ctx context.Context, entity *T) error {
	id := r.idOf(entity)
	if err := r.inner.Update(ctx, entity); err != nil {
		r.cache.Delete(id)
		return err
	}
	r.cache.Set(id, *entity, 0)
	return nil
}

func (r *Cached[T]) DeleteByID(ctx context.Context, id string) error {
	r.cache.Delete(id)
	return r.inner.DeleteByID(ctx, id)
}

func (r *Cached[T]) FindAll(ctx context.Context) ([]T, error) {
	return r.inner.FindAll(ctx)
}

func (r *Cached[T]) ExistsByID(ctx context.Context, id string) (bool, error) {
	if r.cache.Has(id) {
		return true, nil
	}
	return r.inner.ExistsByID(ctx, id)
}

func (r *Cached[T]) Count(ctx context.Context) (int64, error) {
	return r.inner.Count(ctx)
}

var _ Repository[struct{}] = (*Cached[struct{}])(nil)
