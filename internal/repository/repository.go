package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned by FindByID when no row has the given id.
var ErrNotFound = errors.New("record not found")

// Repository is the entity store contract: a keyed CRUD-and-count store per
// entity kind.
type Repository[T any] interface {
	Save(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, entity *T) error
	DeleteByID(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]T, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// AssignmentRepository stores the task/member join relation.
type AssignmentRepository interface {
	Add(ctx context.Context, taskID, memberID string) error
	Remove(ctx context.Context, taskID, memberID string) error
	Exists(ctx context.Context, taskID, memberID string) (bool, error)
	TaskIDsOf(ctx context.Context, memberID string) ([]string, error)
	MemberIDsOf(ctx context.Context, taskID string) ([]string, error)
	DeleteByTask(ctx context.Context, taskID string) (int64, error)
	DeleteByMember(ctx context.Context, memberID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}
